package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type AdminDetailsRepo struct {
	db *gorm.DB
}

func NewAdminDetailsRepo(db *gorm.DB) *AdminDetailsRepo {
	return &AdminDetailsRepo{db}
}

// First returns the singleton contact record
func (r *AdminDetailsRepo) First(ctx context.Context) (*models.AdminDetails, error) {
	var details models.AdminDetails
	if err := r.db.WithContext(ctx).Take(&details).Error; err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *AdminDetailsRepo) Add(ctx context.Context, details *models.AdminDetails) error {
	return r.db.WithContext(ctx).Create(details).Error
}

// Upsert updates the singleton record in place, inserting it when the table is
// empty. The returned record carries the row's ID either way.
func (r *AdminDetailsRepo) Upsert(ctx context.Context, details models.AdminDetails) (*models.AdminDetails, bool, error) {
	existing, err := r.First(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		details.ID = uuid.Nil
		if err := r.Add(ctx, &details); err != nil {
			return nil, false, err
		}
		return &details, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	existing.Address = details.Address
	existing.Email = details.Email
	existing.Phone = details.Phone
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// UpdateEmail changes the public contact email. A missing record is not an error.
func (r *AdminDetailsRepo) UpdateEmail(ctx context.Context, email string) error {
	existing, err := r.First(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(existing).Update("email", email).Error
}
