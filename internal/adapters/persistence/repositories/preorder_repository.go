package repositories

import (
	"context"

	"h4g-voucherhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// preOrderRepository implements PreOrderRepository
type preOrderRepository struct {
	db *gorm.DB
}

// NewPreOrderRepository creates a new pre-order repository
func NewPreOrderRepository(db *gorm.DB) PreOrderRepository {
	return &preOrderRepository{db: db}
}

// Create creates a pre-order record
func (r *preOrderRepository) Create(ctx context.Context, preOrder *models.PreOrder) error {
	return r.db.WithContext(ctx).Create(preOrder).Error
}

// GetByID gets a pre-order by id
func (r *preOrderRepository) GetByID(ctx context.Context, preOrderID string) (*models.PreOrder, error) {
	var preOrder models.PreOrder
	err := r.db.WithContext(ctx).Where("pre_order_id = ?", preOrderID).First(&preOrder).Error
	if err != nil {
		return nil, err
	}
	return &preOrder, nil
}

// List lists all pre-orders in creation order
func (r *preOrderRepository) List(ctx context.Context) ([]models.PreOrder, error) {
	var preOrders []models.PreOrder
	err := r.db.WithContext(ctx).Order("created_at").Find(&preOrders).Error
	return preOrders, err
}

// ListByUser lists a resident's pre-orders in creation order
func (r *preOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.PreOrder, error) {
	var preOrders []models.PreOrder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&preOrders).Error
	return preOrders, err
}

// ListByProductFIFO lists pre-orders for a product oldest first.
// The id tiebreak keeps the order stable when timestamps collide.
func (r *preOrderRepository) ListByProductFIFO(ctx context.Context, productID string) ([]models.PreOrder, error) {
	var preOrders []models.PreOrder
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at, pre_order_id").
		Find(&preOrders).Error
	return preOrders, err
}

// Delete removes a pre-order record
func (r *preOrderRepository) Delete(ctx context.Context, preOrderID string) error {
	return r.db.WithContext(ctx).
		Where("pre_order_id = ?", preOrderID).
		Delete(&models.PreOrder{}).Error
}
