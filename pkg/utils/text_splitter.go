package utils

import "strings"

// separatorPreference lists chunk boundary candidates from most to
// least preferred: paragraph break, line break, sentence end.
var separatorPreference = []string{"\n\n", "\n", ". ", "! ", "? "}

// SplitText splits a long string into chunks of at most chunkSize
// characters with 'overlap' characters carried over between adjacent
// chunks. Boundaries prefer paragraph and sentence separators; when
// none is found in the window a hard character cut is used.
func SplitText(text string, chunkSize int, overlap int) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}
	}

	if overlap >= chunkSize {
		overlap = 0 // fallback if overlap >= chunkSize
	}

	var chunks []string
	start := 0
	for start < totalLen {
		end := start + chunkSize
		if end >= totalLen {
			chunks = append(chunks, string(runes[start:totalLen]))
			break
		}

		cut := findCut(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))

		next := cut - overlap
		if next <= start {
			next = cut // ensure forward progress
		}
		start = next
	}

	return chunks
}

// findCut returns the boundary position in (start, end] closest to end
// that follows a preferred separator. Separators in the first half of
// the window are ignored to keep chunks reasonably full.
func findCut(runes []rune, start, end int) int {
	window := string(runes[start:end])
	minPos := (end - start) / 2

	for _, sep := range separatorPreference {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		// Position after the separator, in runes relative to start.
		pos := len([]rune(window[:idx])) + len([]rune(sep))
		if pos > minPos {
			return start + pos
		}
	}

	return end
}
