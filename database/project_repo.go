package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects from the database, oldest first
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	projects := []*models.Project{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Replace overwrites every content field of an existing project. It returns
// gorm.ErrRecordNotFound when no row has the project's ID.
func (r *ProjectRepo) Replace(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", project.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
