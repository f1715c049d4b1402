// Package extract reduces supported document formats to plain text.
package extract

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrUnsupported marks a file extension outside the supported set.
// Multi-file callers skip such files instead of failing the batch.
var ErrUnsupported = errors.New("unsupported file type")

// Extractor extracts plain text from uploaded document bytes.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supported reports whether the extension (with leading dot) can be
// extracted.
func (e *Extractor) Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".txt", ".md", ".pdf", ".docx", ".pptx":
		return true
	}
	return false
}

// Extract converts content to plain text based on the file extension
// (with leading dot, e.g. ".pdf"). Returns ErrUnsupported for
// unrecognized extensions.
func (e *Extractor) Extract(content []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".txt", ".md":
		return extractPlain(content), nil
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractOOXML(content, wordTextTag)
	case ".pptx":
		return extractOOXML(content, drawingTextTag)
	default:
		return "", ErrUnsupported
	}
}

// extractPlain passes text through, replacing invalid UTF-8 sequences
// with the replacement rune.
func extractPlain(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), "�")
}
