package model

import (
	"time"

	"github.com/google/uuid"
)

type UserPreference struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          string    `gorm:"type:varchar(64);not null;index:idx_user_prefs_user_type"`
	TextType        string    `gorm:"type:varchar(32);not null;index:idx_user_prefs_user_type"`
	PreferenceKey   string    `gorm:"type:varchar(64);not null"`
	PreferenceValue string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
