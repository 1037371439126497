package chunker

import (
	"strings"

	"github.com/groundctx/ragcore/internal/domain/chunk"
)

// builder accumulates chunks across recursive separator descent.
type builder struct {
	opts   Options
	chunks []chunk.Chunk
}

// splitRecursive splits text on the first separator of seps, greedily packing
// consecutive pieces up to ChunkSize. On overflow the running buffer is
// emitted and the next buffer is seeded with its trailing ChunkOverlap
// characters, so context survives the boundary. Pieces are split with the
// separator kept attached, which makes every emitted chunk an exact substring
// of the document and keeps offsets exact.
//
// An oversized piece recurses with the remaining, narrower separator list;
// when no separators remain, fixed chunking bounds the piece. base is the
// document-relative offset of text.
func (b *builder) splitRecursive(text string, base int, seps []string) {
	if len(text) <= b.opts.ChunkSize {
		b.emit(text, base, false)
		return
	}
	if len(seps) == 0 {
		b.chunks = append(b.chunks, chunkFixed(text, base, b.opts)...)
		return
	}

	pieces := strings.SplitAfter(text, seps[0])
	if len(pieces) == 1 {
		// Separator absent: narrow the list and retry.
		b.splitRecursive(text, base, seps[1:])
		return
	}

	var (
		buf      string
		bufStart int
		seeded   bool // buffer begins with overlap carried from the previous chunk
		pos      = base
	)

	flush := func() {
		if buf != "" {
			b.emit(buf, bufStart, seeded)
			buf = ""
			seeded = false
		}
	}

	for _, piece := range pieces {
		switch {
		case len(piece) > b.opts.ChunkSize:
			flush()
			b.splitRecursive(piece, pos, seps[1:])
		case buf != "" && len(buf)+len(piece) > b.opts.ChunkSize:
			b.emit(buf, bufStart, seeded)
			tail := tailChars(buf, b.opts.ChunkOverlap)
			buf = tail + piece
			bufStart = pos - len(tail)
			seeded = len(tail) > 0
		default:
			if buf == "" {
				bufStart = pos
			}
			buf += piece
		}
		pos += len(piece)
	}
	flush()
}

func (b *builder) emit(text string, startPos int, hasOverlap bool) {
	if text == "" {
		return
	}
	b.chunks = append(b.chunks, newChunk(text, len(b.chunks), startPos, hasOverlap, 0))
}

// tailChars returns the trailing n characters of s.
func tailChars(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
