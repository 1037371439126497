// Package preprocess normalizes raw extracted text into the canonical
// document form consumed by the chunking engine. Extraction front-ends for
// specific file formats live outside this module; this package only cleans
// their output and derives descriptive metadata.
package preprocess

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/groundctx/ragcore/internal/domain/chunk"
	"github.com/groundctx/ragcore/internal/domain/document"
)

// FileInfo describes the uploaded source being preprocessed.
type FileInfo struct {
	FileName string
	FileType string // "pdf", "csv", "tsv", "md", "txt", ...
	FileSize int64
}

// pdfPageChars approximates characters per rendered PDF page.
const pdfPageChars = 3000

var (
	multiBlank = regexp.MustCompile(`\n{3,}`)
	trailingWS = regexp.MustCompile(`[ \t]+\n`)
	mdHeading  = regexp.MustCompile(`(?m)^#{1,6} `)
)

// Prepare normalizes raw text and builds an immutable CanonicalDocument.
func Prepare(raw string, info FileInfo) document.CanonicalDocument {
	content := Normalize(raw)

	meta := document.Metadata{
		FileName:       info.FileName,
		FileType:       info.FileType,
		FileSize:       info.FileSize,
		CharCount:      len(content),
		TokenEstimate:  chunk.EstimateTokens(content),
		LineCount:      countLines(content),
		ParagraphCount: countParagraphs(content),
		Custom:         structureMetadata(content, info.FileType),
	}

	return document.CanonicalDocument{
		ID:         uuid.NewString(),
		Content:    content,
		RawContent: raw,
		Metadata:   meta,
	}
}

// Normalize canonicalizes line endings and whitespace: CRLF/CR become LF,
// NUL bytes are dropped, trailing whitespace is stripped per line, and runs
// of three or more newlines collapse to a single blank line.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\x00", "")
	s = trailingWS.ReplaceAllString(s, "\n")
	s = multiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

func countParagraphs(content string) int {
	if content == "" {
		return 0
	}
	n := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			n++
		}
	}
	return n
}

// structureMetadata derives file-type-specific structure hints.
func structureMetadata(content, fileType string) map[string]string {
	switch strings.ToLower(fileType) {
	case "pdf":
		pages := (len(content) + pdfPageChars - 1) / pdfPageChars
		if pages == 0 {
			pages = 1
		}
		return map[string]string{"pageEstimate": strconv.Itoa(pages)}
	case "csv", "tsv":
		sep := ","
		if strings.EqualFold(fileType, "tsv") {
			sep = "\t"
		}
		rows := countLines(content)
		cols := 0
		if content != "" {
			first, _, _ := strings.Cut(content, "\n")
			cols = strings.Count(first, sep) + 1
		}
		return map[string]string{
			"rowCount":    strconv.Itoa(rows),
			"columnCount": strconv.Itoa(cols),
		}
	case "md", "markdown":
		return map[string]string{
			"headingCount": strconv.Itoa(len(mdHeading.FindAllString(content, -1))),
		}
	default:
		return nil
	}
}
