package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is a message left by a visitor through the contact form
type Feedback struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;index:idx_feedback_created_at"`
}

// TableName keeps the singular table name used by the site since day one.
func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f Feedback) MissingField() string {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return "name"
	case strings.TrimSpace(f.Email) == "":
		return "email"
	case strings.TrimSpace(f.Message) == "":
		return "message"
	}
	return ""
}
