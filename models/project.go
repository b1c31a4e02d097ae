package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a portfolio entry shown on the projects section
type Project struct {
	ID                   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title                string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description          string    `json:"description" db:"description" gorm:"type:text;not null"`
	DetailedDescription  string    `json:"detailedDescription" db:"detailed_description" gorm:"type:text;not null"`
	Image                string    `json:"image" db:"image" gorm:"type:text;not null"`
	Category             string    `json:"category" db:"category" gorm:"type:text;not null;index:idx_project_category"`
	ProgrammingLanguages string    `json:"programmingLanguages" db:"programming_languages" gorm:"type:text;not null"`
	Skills               string    `json:"skills" db:"skills" gorm:"type:text;not null"`
	ProjectLink          string    `json:"projectLink" db:"project_link" gorm:"type:text;not null"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MissingField returns the JSON name of the first blank content field, or "".
func (p Project) MissingField() string {
	fields := []struct {
		name  string
		value string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"detailedDescription", p.DetailedDescription},
		{"image", p.Image},
		{"category", p.Category},
		{"programmingLanguages", p.ProgrammingLanguages},
		{"skills", p.Skills},
		{"projectLink", p.ProjectLink},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}
