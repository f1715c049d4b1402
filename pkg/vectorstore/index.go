package vectorstore

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// indexFileName is the serialized index file inside a category directory.
const indexFileName = "index.gob"

// Entry is one embedded chunk inside an Index.
type Entry struct {
	Content  string
	Metadata map[string]string
	Vector   []float32
}

// Index is an exact-search vector index over unit-length embeddings.
// Cosine similarity therefore reduces to a dot product. An Index is
// immutable after construction; concurrent readers need no locking.
type Index struct {
	Dimension int
	Entries   []Entry
}

// NewIndex builds an index from embedded entries.
func NewIndex(entries []Entry) *Index {
	dim := 0
	if len(entries) > 0 {
		dim = len(entries[0].Vector)
	}
	return &Index{
		Dimension: dim,
		Entries:   entries,
	}
}

// Search returns up to k documents ordered by similarity, best first.
func (ix *Index) Search(query []float32, k int) []Document {
	if ix == nil || len(ix.Entries) == 0 || k <= 0 {
		return nil
	}

	results := make([]Document, 0, len(ix.Entries))
	for _, entry := range ix.Entries {
		results = append(results, Document{
			Content:  entry.Content,
			Metadata: entry.Metadata,
			Score:    dotProduct(query, entry.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

func dotProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Save serializes the index into dir (one directory per category).
// The file is written to a temp path and renamed so that readers see
// either the old or the new index, never a partial file.
func (ix *Index) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "index-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(ix); err != nil {
		tmp.Close()
		return fmt.Errorf("encode index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp index: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, indexFileName)); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

// LoadIndex reads a serialized index from dir. Returns (nil, nil) when
// no index has been persisted for the category.
func LoadIndex(dir string) (*Index, error) {
	f, err := os.Open(filepath.Join(dir, indexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	var ix Index
	if err := gob.NewDecoder(f).Decode(&ix); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return &ix, nil
}
