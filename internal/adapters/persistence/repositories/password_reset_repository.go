package repositories

import (
	"context"

	"h4g-voucherhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// passwordResetRepository implements PasswordResetRepository
type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create creates a password reset request
func (r *passwordResetRepository) Create(ctx context.Context, request *models.PasswordReset) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID gets a request by id
func (r *passwordResetRepository) GetByID(ctx context.Context, requestID string) (*models.PasswordReset, error) {
	var request models.PasswordReset
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPending lists open reset requests, oldest first
func (r *passwordResetRepository) ListPending(ctx context.Context) ([]models.PasswordReset, error) {
	var requests []models.PasswordReset
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ResetStatusPending).
		Order("created_at").
		Find(&requests).Error
	return requests, err
}

// UpdateStatus marks a request with a new status
func (r *passwordResetRepository) UpdateStatus(ctx context.Context, requestID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.PasswordReset{}).
		Where("request_id = ?", requestID).
		Update("status", status).Error
}
