package repositories

import (
	"context"

	"h4g-voucherhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new resident repository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{db: db}
}

// Create creates a new resident
func (r *residentRepository) Create(ctx context.Context, resident *models.Resident) error {
	return r.db.WithContext(ctx).Create(resident).Error
}

// GetByID gets a resident by userId
func (r *residentRepository) GetByID(ctx context.Context, userID string) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&resident).Error
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// List lists residents with pagination
func (r *residentRepository) List(ctx context.Context, offset, limit int) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Resident{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at").
		Offset(offset).
		Limit(limit).
		Find(&residents).Error
	if err != nil {
		return nil, 0, err
	}

	return residents, total, nil
}

// FindByName finds the first resident with an exact name match
func (r *residentRepository) FindByName(ctx context.Context, name string) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&resident).Error
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// Update saves a full resident record
func (r *residentRepository) Update(ctx context.Context, resident *models.Resident) error {
	return r.db.WithContext(ctx).Save(resident).Error
}

// UpdateFields applies a partial update
func (r *residentRepository) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Resident{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}

// Delete removes a resident
func (r *residentRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Resident{}).Error
}

// ExistsByID checks whether a resident exists
func (r *residentRepository) ExistsByID(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Resident{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
