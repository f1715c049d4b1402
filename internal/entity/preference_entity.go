package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference is one learned writing preference for a user within a
// text category. Records are append-only; newer edits add rows rather
// than rewriting old ones.
type UserPreference struct {
	Id              uuid.UUID
	UserId          string
	TextType        string
	PreferenceKey   string
	PreferenceValue string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
