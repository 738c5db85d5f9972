package repositories

import (
	"context"

	"h4g-voucherhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// voucherTaskRepository implements VoucherTaskRepository
type voucherTaskRepository struct {
	db *gorm.DB
}

// NewVoucherTaskRepository creates a new voucher task repository
func NewVoucherTaskRepository(db *gorm.DB) VoucherTaskRepository {
	return &voucherTaskRepository{db: db}
}

// Create creates a voucher task
func (r *voucherTaskRepository) Create(ctx context.Context, task *models.VoucherTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID gets a voucher task by id
func (r *voucherTaskRepository) GetByID(ctx context.Context, taskID string) (*models.VoucherTask, error) {
	var task models.VoucherTask
	err := r.db.WithContext(ctx).Where("voucher_task_id = ?", taskID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List lists all voucher tasks in creation order
func (r *voucherTaskRepository) List(ctx context.Context) ([]models.VoucherTask, error) {
	var tasks []models.VoucherTask
	err := r.db.WithContext(ctx).Order("created_at").Find(&tasks).Error
	return tasks, err
}

// ListByClaimStatus lists tasks filtered on claim_status
func (r *voucherTaskRepository) ListByClaimStatus(ctx context.Context, claimed bool) ([]models.VoucherTask, error) {
	var tasks []models.VoucherTask
	err := r.db.WithContext(ctx).
		Where("claim_status = ?", claimed).
		Order("created_at").
		Find(&tasks).Error
	return tasks, err
}

// ListByUser lists tasks claimed by a resident
func (r *voucherTaskRepository) ListByUser(ctx context.Context, userID string) ([]models.VoucherTask, error) {
	var tasks []models.VoucherTask
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&tasks).Error
	return tasks, err
}

// UpdateFields applies a partial update
func (r *voucherTaskRepository) UpdateFields(ctx context.Context, taskID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.VoucherTask{}).
		Where("voucher_task_id = ?", taskID).
		Updates(fields).Error
}

// Delete removes a voucher task
func (r *voucherTaskRepository) Delete(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).
		Where("voucher_task_id = ?", taskID).
		Delete(&models.VoucherTask{}).Error
}
