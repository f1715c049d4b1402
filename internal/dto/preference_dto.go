package dto

type RecordEditRequest struct {
	OriginalText string `json:"original_text" validate:"required"`
	EditedText   string `json:"edited_text" validate:"required"`
	TextType     string `json:"text_type"`
}

type RecordEditResponse struct {
	TextType string `json:"text_type"`
	Recorded bool   `json:"recorded"`
}

type ListPreferencesResponse struct {
	TextType    string   `json:"text_type"`
	Preferences []string `json:"preferences"`
}
