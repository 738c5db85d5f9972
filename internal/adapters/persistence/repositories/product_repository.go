package repositories

import (
	"context"

	"h4g-voucherhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// productRepository implements ProductRepository
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID gets a product by its id
func (r *productRepository) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List lists all products
func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Order("created_at").Find(&products).Error
	return products, err
}

// Update saves a full product record
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// UpdateFields applies a partial update
func (r *productRepository) UpdateFields(ctx context.Context, productID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("product_id = ?", productID).
		Updates(fields).Error
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.Product{}).Error
}
