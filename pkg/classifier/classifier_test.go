package classifier

import (
	"context"
	"errors"
	"testing"

	"ai-editor-be/internal/constant"
	"ai-editor-be/pkg/llm"
)

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.Generate(ctx, "", options...)
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubLLM) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (<-chan llm.StreamChunk, error) {
	ch := make(chan llm.StreamChunk)
	close(ch)
	return ch, nil
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{name: "known label", response: "business", want: "business"},
		{name: "label with whitespace", response: "  Technical \n", want: "technical"},
		{name: "out of set label", response: "poetry", want: constant.CategoryGeneral},
		{name: "chatty answer", response: "The text type is: business writing", want: constant.CategoryGeneral},
		{name: "empty answer", response: "", want: constant.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewTextTypeClassifier(&stubLLM{response: tt.response})

			got, err := c.Classify(context.Background(), "some input text")
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyUpstreamError(t *testing.T) {
	c := NewTextTypeClassifier(&stubLLM{err: errors.New("model offline")})

	_, err := c.Classify(context.Background(), "text")
	if err == nil {
		t.Fatal("Classify should propagate upstream errors")
	}
}

func TestClassifyCachesByContent(t *testing.T) {
	stub := &stubLLM{response: "creative"}
	c := NewTextTypeClassifier(stub)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Classify(ctx, "the same story draft"); err != nil {
			t.Fatalf("Classify: %v", err)
		}
	}
	if stub.calls != 1 {
		t.Errorf("LLM calls = %d, want 1 (cached)", stub.calls)
	}

	if _, err := c.Classify(ctx, "a different text"); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("LLM calls = %d, want 2 after new content", stub.calls)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"academic", "academic"},
		{"BUSINESS", "business"},
		{" creative ", "creative"},
		{"general", constant.CategoryGeneral},
		{"unknown", constant.CategoryGeneral},
		{"", constant.CategoryGeneral},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
