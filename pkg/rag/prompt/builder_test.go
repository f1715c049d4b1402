package prompt

import (
	"strings"
	"testing"

	"ai-editor-be/pkg/vectorstore"
)

func TestBuildFullPrompt(t *testing.T) {
	docs := []vectorstore.Document{
		{Content: "style guide excerpt", Score: 0.9},
		{Content: "terminology list", Score: 0.8},
	}
	prefs := []string{"prefers short sentences", "avoids passive voice"}

	got := NewGenerationBuilder("Rewrite formally", "draft text here", docs, prefs).Build()

	for _, want := range []string{
		"Reference document 1:",
		"style guide excerpt",
		"Reference document 2:",
		"terminology list",
		"prefers short sentences",
		"avoids passive voice",
		"draft text here",
		"Rewrite formally",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Documents come before the user text, user text before the instruction.
	if strings.Index(got, "style guide excerpt") > strings.Index(got, "draft text here") {
		t.Error("reference documents should precede the user text")
	}
	if strings.Index(got, "draft text here") > strings.Index(got, "Rewrite formally") {
		t.Error("user text should precede the instruction")
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	got := NewGenerationBuilder("Write a haiku", "", nil, nil).Build()

	for _, absent := range []string{
		"<reference_documents>",
		"<user_preferences>",
		"<user_text>",
	} {
		if strings.Contains(got, absent) {
			t.Errorf("prompt should omit empty section %q", absent)
		}
	}
	if !strings.Contains(got, "Write a haiku") {
		t.Error("prompt missing the instruction")
	}
}
