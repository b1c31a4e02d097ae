package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type FeedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) *FeedbackRepo {
	return &FeedbackRepo{db}
}

// FindAll returns every feedback message, newest first
func (r *FeedbackRepo) FindAll(ctx context.Context) ([]*models.Feedback, error) {
	feedback := []*models.Feedback{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&feedback).Error
	return feedback, err
}

func (r *FeedbackRepo) Add(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// Delete removes a feedback message by id, returning gorm.ErrRecordNotFound if there is none
func (r *FeedbackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Feedback{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
