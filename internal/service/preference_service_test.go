package service

import (
	"context"
	"errors"
	"testing"

	"ai-editor-be/internal/constant"
	"ai-editor-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreferenceFixture(model *stubLLM, classifierLabel string, repo *fakePreferenceRepo) IPreferenceService {
	return NewPreferenceService(
		&fakeUowFactory{uow: &fakeUnitOfWork{prefRepo: repo}},
		model,
		&fakeClassifier{label: classifierLabel},
		nil, // no redis in unit tests
		nil, // no event bus in unit tests
		nopLogger{},
	)
}

func TestRecordEditUnchangedTextIsIgnored(t *testing.T) {
	model := &stubLLM{response: "should never be called"}
	repo := &fakePreferenceRepo{}
	svc := newPreferenceFixture(model, "business", repo)

	res, err := svc.RecordEdit(context.Background(), "user-1", &dto.RecordEditRequest{
		OriginalText: "identical text",
		EditedText:   "identical text",
		TextType:     "business",
	})
	require.NoError(t, err)

	assert.False(t, res.Recorded)
	assert.Zero(t, model.generateHits, "no LLM call for a no-op edit")
	assert.Empty(t, repo.stored)
}

func TestRecordEditDuplicatesToGeneral(t *testing.T) {
	model := &stubLLM{response: "user prefers shorter sentences"}
	repo := &fakePreferenceRepo{}
	svc := newPreferenceFixture(model, "business", repo)

	res, err := svc.RecordEdit(context.Background(), "user-1", &dto.RecordEditRequest{
		OriginalText: "We would like to inform you that",
		EditedText:   "Please note:",
		TextType:     "business",
	})
	require.NoError(t, err)
	require.True(t, res.Recorded)
	assert.Equal(t, "business", res.TextType)

	require.Len(t, repo.stored, 2)
	types := []string{repo.stored[0].TextType, repo.stored[1].TextType}
	assert.Contains(t, types, "business")
	assert.Contains(t, types, constant.CategoryGeneral)
	for _, rec := range repo.stored {
		assert.Equal(t, "user-1", rec.UserId)
		assert.Equal(t, constant.PreferenceKeyLLMAnalysis, rec.PreferenceKey)
		assert.Equal(t, "user prefers shorter sentences", rec.PreferenceValue)
	}
}

func TestRecordEditGeneralIsNotDuplicated(t *testing.T) {
	repo := &fakePreferenceRepo{}
	svc := newPreferenceFixture(&stubLLM{response: "analysis"}, "general", repo)

	res, err := svc.RecordEdit(context.Background(), "user-1", &dto.RecordEditRequest{
		OriginalText: "a",
		EditedText:   "b",
		TextType:     "general",
	})
	require.NoError(t, err)
	require.True(t, res.Recorded)
	require.Len(t, repo.stored, 1)
	assert.Equal(t, constant.CategoryGeneral, repo.stored[0].TextType)
}

func TestRecordEditClassifiesWhenTypeOmitted(t *testing.T) {
	repo := &fakePreferenceRepo{}
	svc := newPreferenceFixture(&stubLLM{response: "analysis"}, "academic", repo)

	res, err := svc.RecordEdit(context.Background(), "user-1", &dto.RecordEditRequest{
		OriginalText: "draft",
		EditedText:   "revised draft",
	})
	require.NoError(t, err)
	assert.Equal(t, "academic", res.TextType)
}

func TestRecordEditPersistenceFailureIsSwallowed(t *testing.T) {
	repo := &fakePreferenceRepo{createErr: errors.New("db down")}
	svc := newPreferenceFixture(&stubLLM{response: "analysis"}, "business", repo)

	res, err := svc.RecordEdit(context.Background(), "user-1", &dto.RecordEditRequest{
		OriginalText: "a",
		EditedText:   "b",
		TextType:     "business",
	})
	require.NoError(t, err, "storage failures must not fail the edit flow")
	assert.False(t, res.Recorded)
}

func TestRecordEditLLMErrorPropagates(t *testing.T) {
	svc := newPreferenceFixture(&stubLLM{err: errors.New("quota")}, "business", &fakePreferenceRepo{})

	_, err := svc.RecordEdit(context.Background(), "user-1", &dto.RecordEditRequest{
		OriginalText: "a",
		EditedText:   "b",
		TextType:     "business",
	})
	require.Error(t, err)
}

func TestGetPreferencesReturnsStoredValues(t *testing.T) {
	repo := &fakePreferenceRepo{}
	svc := newPreferenceFixture(&stubLLM{response: "first learning"}, "business", repo)
	ctx := context.Background()

	_, err := svc.RecordEdit(ctx, "user-1", &dto.RecordEditRequest{
		OriginalText: "a", EditedText: "b", TextType: "business",
	})
	require.NoError(t, err)

	values, err := svc.GetPreferences(ctx, "user-1", "business")
	require.NoError(t, err)
	assert.Contains(t, values, "first learning")
}

func TestGetPreferencesDegradesToEmpty(t *testing.T) {
	repo := &fakePreferenceRepo{findErr: errors.New("db down")}
	svc := newPreferenceFixture(&stubLLM{}, "business", repo)

	values, err := svc.GetPreferences(context.Background(), "user-1", "business")
	require.NoError(t, err)
	assert.Empty(t, values)
}
