package chunker

import (
	"strings"

	"github.com/groundctx/ragcore/internal/domain/chunk"
)

// sentence is a detected sentence with its document-relative span.
type sentence struct {
	text  string
	start int
	end   int
}

// chunkSemantic splits content into sentences and greedily packs them up to
// ChunkSize, carrying forward the maximal trailing whole-sentence run whose
// combined length fits in ChunkOverlap. Chunk content is the sentences
// rejoined with single spaces, so CharCount is derived from the
// reconstructed text rather than the raw document span.
func chunkSemantic(content string, opts Options) []chunk.Chunk {
	sentences := splitSentences(content)
	if len(sentences) == 0 {
		// No sentence boundaries to pack; degrade to fixed windows.
		return chunkFixed(content, 0, opts)
	}

	var (
		chunks  []chunk.Chunk
		cur     []sentence
		carried int // sentences at the head of cur carried as overlap
	)

	emit := func() {
		if len(cur) == 0 {
			return
		}
		chunks = append(chunks, newSemanticChunk(cur, len(chunks), carried > 0))
		cur = nil
		carried = 0
	}

	for _, s := range sentences {
		// A single sentence beyond ChunkSize cannot be packed; bound it
		// with fixed chunking instead.
		if len(s.text) > opts.ChunkSize {
			emit()
			chunks = append(chunks, chunkFixed(s.text, s.start, opts)...)
			continue
		}

		if len(cur) > 0 && joinedLen(cur)+1+len(s.text) > opts.ChunkSize {
			overlap := trailingRun(cur, opts.ChunkOverlap)
			chunks = append(chunks, newSemanticChunk(cur, len(chunks), carried > 0))
			cur = append([]sentence{}, overlap...)
			carried = len(overlap)
		}
		cur = append(cur, s)
	}
	emit()

	return chunks
}

// newSemanticChunk joins sentences with spaces and records the document span
// the run covers. EndPos reflects the raw span; CharCount reflects the
// reconstructed text, which may differ by injected separators.
func newSemanticChunk(run []sentence, index int, hasOverlap bool) chunk.Chunk {
	texts := make([]string, len(run))
	for i, s := range run {
		texts[i] = s.text
	}
	content := strings.Join(texts, " ")

	return chunk.Chunk{
		Content: content,
		Index:   index,
		Metadata: chunk.Metadata{
			StartPos:      run[0].start,
			EndPos:        run[len(run)-1].end,
			TokenEstimate: chunk.EstimateTokens(content),
			CharCount:     len(content),
			HasOverlap:    hasOverlap,
			SentenceCount: len(run),
		},
	}
}

// joinedLen is the length of the run rejoined with single spaces.
func joinedLen(run []sentence) int {
	n := 0
	for _, s := range run {
		n += len(s.text)
	}
	if len(run) > 1 {
		n += len(run) - 1
	}
	return n
}

// trailingRun returns the maximal trailing whole-sentence run whose joined
// length is at most budget.
func trailingRun(run []sentence, budget int) []sentence {
	if budget <= 0 {
		return nil
	}
	start := len(run)
	for i := len(run) - 1; i >= 0; i-- {
		if joinedLen(run[i:]) > budget {
			break
		}
		start = i
	}
	return run[start:]
}

// splitSentences detects sentence boundaries: one or more of . ! ? followed
// by whitespace (or end of input). Text without any boundary comes back as a
// single sentence.
func splitSentences(content string) []sentence {
	var out []sentence
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		text := strings.TrimSpace(content[start:end])
		if text != "" {
			out = append(out, sentence{text: text, start: start, end: end})
		}
		start = -1
	}

	for i := 0; i < len(content); i++ {
		c := content[i]
		if start < 0 && !isSpace(c) {
			start = i
		}
		if c == '.' || c == '!' || c == '?' {
			// Consume a punctuation run, then require whitespace or EOF.
			j := i
			for j+1 < len(content) && isTerminator(content[j+1]) {
				j++
			}
			if j+1 >= len(content) || isSpace(content[j+1]) {
				flush(j + 1)
			}
			i = j
		}
	}
	flush(len(content))

	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
