package dto

type GenerateRequest struct {
	UserText string `json:"user_text"`
	Prompt   string `json:"prompt" validate:"required"`
	TopK     int    `json:"top_k" validate:"omitempty,min=1,max=20"`
}

type GenerateResponse struct {
	TextType      string `json:"text_type"`
	GeneratedText string `json:"generated_text"`
}

// GenerateWithContextRequest is the non-file part of the multipart
// form. Files arrive separately as multipart attachments.
type GenerateWithContextRequest struct {
	UserText string   `json:"user_text" form:"user_text"`
	Prompt   string   `json:"prompt" form:"prompt" validate:"required"`
	Urls     []string `json:"urls" form:"urls" validate:"omitempty,dive,url"`
	TopK     int      `json:"top_k" form:"top_k" validate:"omitempty,min=1,max=20"`
}
