// Package document defines the canonical document model produced by ingestion.
package document

// Metadata describes an uploaded source file.
type Metadata struct {
	FileName       string
	FileType       string
	FileSize       int64
	CharCount      int
	TokenEstimate  int
	LineCount      int
	ParagraphCount int
	Custom         map[string]string
}

// CanonicalDocument is the normalized form of an uploaded source.
// Created once per upload and immutable afterwards.
type CanonicalDocument struct {
	ID         string
	Content    string
	RawContent string
	Metadata   Metadata
}
