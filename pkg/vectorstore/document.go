package vectorstore

// Document is one similarity-search result. Immutable once returned.
type Document struct {
	Content  string
	Metadata map[string]string
	Score    float64
}

// FilterByScore returns the documents scoring strictly above threshold,
// preserving order. Documents at the threshold are excluded.
func FilterByScore(docs []Document, threshold float64) []Document {
	filtered := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Score > threshold {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}
