package classifier

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"ai-editor-be/internal/constant"
	"ai-editor-be/pkg/llm"

	gocache "github.com/patrickmn/go-cache"
)

// TextTypeClassifier labels free text with one category via a single
// LLM call. Out-of-set answers are coerced to the general category, so
// classification itself cannot fail; only the upstream call can.
type TextTypeClassifier struct {
	llmProvider llm.LLMProvider
	cache       *gocache.Cache
}

func NewTextTypeClassifier(llmProvider llm.LLMProvider) *TextTypeClassifier {
	return &TextTypeClassifier{
		llmProvider: llmProvider,
		// Identical queries within a session reuse the label.
		cache: gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// Classify returns the category label for text. The label is
// normalized (trim + lowercase); anything outside the classifiable set
// falls back to general.
func (c *TextTypeClassifier) Classify(ctx context.Context, text string) (string, error) {
	key := cacheKey(text)
	if cached, found := c.cache.Get(key); found {
		return cached.(string), nil
	}

	prompt := fmt.Sprintf(constant.ClassifyPromptV1, text)
	result, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("classify text: %w", err)
	}

	label := Normalize(result)
	c.cache.Set(key, label, gocache.DefaultExpiration)
	return label, nil
}

// Normalize lower-cases and trims a raw label and coerces unknown
// values to the general fallback.
func Normalize(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range constant.ClassifiableCategories {
		if label == known {
			return label
		}
	}
	return constant.CategoryGeneral
}

func cacheKey(text string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(text)))
}
