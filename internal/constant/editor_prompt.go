package constant

// ClassifyPromptV1 asks the LLM for exactly one category label.
// The response is normalized (trim + lowercase) before matching.
const ClassifyPromptV1 = `You are a text type classifier. Analyze the following text and determine which type it belongs to.
Possible types: academic (academic papers), technical (technical documentation), creative (creative writing), business (business documents).
Return exactly one type name, with no other explanation.

Text:
%s`

// SummarizeEditPromptV1 extracts a preference statement from a user edit.
const SummarizeEditPromptV1 = `Analyze the following user edit of AI generated content and summarize the user's preferences.

Original AI generated content:
%s

Content after the user's edit:
%s

Summarize the user's preferences (for example: style, formatting, content depth, use of terminology):`
