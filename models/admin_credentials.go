package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminCredentials is the single admin login. EmailPassword is the app password
// of the mailbox the verification codes are sent from.
type AdminCredentials struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email         string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_admin_credentials_email"`
	EmailPassword string    `json:"-" db:"email_password" gorm:"type:text;not null"`
	PasswordHash  string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (AdminCredentials) TableName() string {
	return "admin_credentials"
}

func (c *AdminCredentials) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
