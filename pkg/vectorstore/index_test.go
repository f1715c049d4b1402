package vectorstore

import (
	"testing"
)

func TestIndexSearchOrdersBySimilarity(t *testing.T) {
	ix := NewIndex([]Entry{
		{Content: "orthogonal", Vector: []float32{0, 1, 0}},
		{Content: "exact", Vector: []float32{1, 0, 0}},
		{Content: "close", Vector: []float32{0.9, 0.43, 0}},
	})

	docs := ix.Search([]float32{1, 0, 0}, 2)

	if len(docs) != 2 {
		t.Fatalf("result count = %d, want 2", len(docs))
	}
	if docs[0].Content != "exact" {
		t.Errorf("best match = %s, want exact", docs[0].Content)
	}
	if docs[1].Content != "close" {
		t.Errorf("second match = %s, want close", docs[1].Content)
	}
	if docs[0].Score <= docs[1].Score {
		t.Errorf("scores not descending: %f then %f", docs[0].Score, docs[1].Score)
	}
}

func TestIndexSearchEmpty(t *testing.T) {
	ix := NewIndex(nil)
	if docs := ix.Search([]float32{1, 0}, 3); docs != nil {
		t.Errorf("Search on empty index = %v, want nil", docs)
	}
}

func TestIndexSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	ix := NewIndex([]Entry{
		{Content: "doc", Metadata: map[string]string{"source": "a.txt"}, Vector: []float32{0.6, 0.8}},
	})
	if err := ix.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadIndex(dir)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadIndex returned nil for a saved index")
	}
	if len(loaded.Entries) != 1 || loaded.Entries[0].Content != "doc" {
		t.Errorf("loaded entries = %+v, want the saved doc", loaded.Entries)
	}
	if loaded.Entries[0].Metadata["source"] != "a.txt" {
		t.Errorf("metadata lost in round trip: %+v", loaded.Entries[0].Metadata)
	}
}

func TestLoadIndexMissing(t *testing.T) {
	loaded, err := LoadIndex(t.TempDir())
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if loaded != nil {
		t.Errorf("LoadIndex on empty dir = %+v, want nil", loaded)
	}
}
