package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminDetails is the public contact record. The table holds a single row.
type AdminDetails struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Address string    `json:"address" db:"address" gorm:"type:text;not null"`
	Email   string    `json:"email" db:"email" gorm:"type:text;not null"`
	Phone   string    `json:"phone" db:"phone" gorm:"type:text;not null"`
}

func (AdminDetails) TableName() string {
	return "admin_details"
}

func (d *AdminDetails) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (d AdminDetails) MissingField() string {
	switch {
	case strings.TrimSpace(d.Address) == "":
		return "address"
	case strings.TrimSpace(d.Email) == "":
		return "email"
	case strings.TrimSpace(d.Phone) == "":
		return "phone"
	}
	return ""
}
