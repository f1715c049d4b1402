// Package prompt assembles the final LLM prompt from the user request,
// retrieved documents, and learned preferences.
package prompt

import (
	"fmt"
	"strings"

	"ai-editor-be/pkg/vectorstore"
)

// GenerationBuilder builds the editing/generation prompt. Sections with
// no content are omitted entirely so the model never sees empty
// scaffolding.
type GenerationBuilder struct {
	instruction string
	userText    string
	documents   []vectorstore.Document
	preferences []string
}

func NewGenerationBuilder(instruction, userText string, documents []vectorstore.Document, preferences []string) *GenerationBuilder {
	return &GenerationBuilder{
		instruction: instruction,
		userText:    userText,
		documents:   documents,
		preferences: preferences,
	}
}

func (b *GenerationBuilder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeReferenceDocuments(&prompt)
	b.writePreferences(&prompt)
	b.writeUserText(&prompt)
	b.writeInstruction(&prompt)

	return prompt.String()
}

func (b *GenerationBuilder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("You are a professional writing assistant.\n")
	prompt.WriteString("Help the user write and edit text. Follow the instruction precisely and match the register of the user's text.\n\n")
}

func (b *GenerationBuilder) writeReferenceDocuments(prompt *strings.Builder) {
	if len(b.documents) == 0 {
		return
	}

	prompt.WriteString("<reference_documents>\n")
	for i, doc := range b.documents {
		prompt.WriteString(fmt.Sprintf("Reference document %d:\n", i+1))
		prompt.WriteString(doc.Content)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("</reference_documents>\n\n")
}

func (b *GenerationBuilder) writePreferences(prompt *strings.Builder) {
	if len(b.preferences) == 0 {
		return
	}

	prompt.WriteString("<user_preferences>\n")
	prompt.WriteString("The user has previously shown these writing preferences. Respect them unless the instruction says otherwise:\n")
	for _, pref := range b.preferences {
		prompt.WriteString("- ")
		prompt.WriteString(pref)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</user_preferences>\n\n")
}

func (b *GenerationBuilder) writeUserText(prompt *strings.Builder) {
	if strings.TrimSpace(b.userText) == "" {
		return
	}

	prompt.WriteString("<user_text>\n")
	prompt.WriteString(b.userText)
	prompt.WriteString("\n</user_text>\n\n")
}

func (b *GenerationBuilder) writeInstruction(prompt *strings.Builder) {
	prompt.WriteString("<instruction>\n")
	prompt.WriteString(b.instruction)
	prompt.WriteString("\n</instruction>\n\n")
	prompt.WriteString("Now produce the requested text. Output only the result, without commentary:")
}
