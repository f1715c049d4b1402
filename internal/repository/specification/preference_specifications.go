package specification

import "gorm.io/gorm"

// ByUserAndTextType selects the preference rows for one user within one
// text category.
type ByUserAndTextType struct {
	UserId   string
	TextType string
}

func (s ByUserAndTextType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? AND text_type = ?", s.UserId, s.TextType)
}

// ByCategory selects knowledge documents of one category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}
