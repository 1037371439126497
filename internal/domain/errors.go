package domain

import "errors"

var (
	// ErrInvalidChunkOptions signals bad chunking parameters.
	ErrInvalidChunkOptions = errors.New("invalid chunk options")
	// ErrInvalidScope signals a malformed search scope.
	ErrInvalidScope = errors.New("invalid search scope")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrSearchFailed signals a retrieval query failure (embedding or store).
	ErrSearchFailed = errors.New("search failed")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
