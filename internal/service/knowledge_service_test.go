package service

import (
	"context"
	"testing"

	"ai-editor-be/internal/entity"
	"ai-editor-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeCategoryDeletesRowsAndRebuilds(t *testing.T) {
	repo := &fakeKnowledgeRepo{docs: []*entity.KnowledgeDocument{
		{Category: "business", Content: "stale corpus chunk", Embedding: []float32{1, 0, 0}},
	}}
	uow := &fakeUnitOfWork{kbRepo: repo}
	store := vectorstore.NewKnowledgeStore(t.TempDir(), fakeEmbedder{})

	svc := NewKnowledgeService(
		&fakeUowFactory{uow: uow},
		store,
		nil, // queue unused by purge
		t.TempDir(),
		nopLogger{},
	)

	ctx := context.Background()
	require.NoError(t, svc.RebuildCategory(ctx, "business"))

	docs, err := store.Search(ctx, "business", "anything", 5)
	require.NoError(t, err)
	require.NotEmpty(t, docs, "index should serve corpus rows before the purge")

	res, err := svc.PurgeCategory(ctx, "business")
	require.NoError(t, err)

	assert.True(t, res.Purged)
	assert.Equal(t, "business", res.Category)
	assert.Equal(t, []string{"business"}, repo.deletedCategories)
	assert.True(t, uow.committed)

	docs, err = store.Search(ctx, "business", "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, docs, "index must stop serving deleted rows")
}
