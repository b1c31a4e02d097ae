package database

import (
	"context"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type AdminCredentialsRepo struct {
	db *gorm.DB
}

func NewAdminCredentialsRepo(db *gorm.DB) *AdminCredentialsRepo {
	return &AdminCredentialsRepo{db}
}

// First returns the configured admin credentials
func (r *AdminCredentialsRepo) First(ctx context.Context) (*models.AdminCredentials, error) {
	var creds models.AdminCredentials
	if err := r.db.WithContext(ctx).Order("updated_at").Take(&creds).Error; err != nil {
		return nil, err
	}
	return &creds, nil
}

// FindByEmail looks up credentials by login email only
func (r *AdminCredentialsRepo) FindByEmail(ctx context.Context, email string) (*models.AdminCredentials, error) {
	var creds models.AdminCredentials
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&creds).Error; err != nil {
		return nil, err
	}
	return &creds, nil
}

func (r *AdminCredentialsRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AdminCredentials{}).Count(&count).Error
	return count, err
}

func (r *AdminCredentialsRepo) Add(ctx context.Context, creds *models.AdminCredentials) error {
	return r.db.WithContext(ctx).Create(creds).Error
}

// Update writes the email, app password and password hash of an existing row
func (r *AdminCredentialsRepo) Update(ctx context.Context, creds *models.AdminCredentials) error {
	res := r.db.WithContext(ctx).
		Model(&models.AdminCredentials{}).
		Where("id = ?", creds.ID).
		Updates(map[string]any{
			"email":          creds.Email,
			"email_password": creds.EmailPassword,
			"password_hash":  creds.PasswordHash,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
