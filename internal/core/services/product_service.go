package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/adapters/persistence/repositories"
	"h4g-voucherhub/internal/adapters/storage"
	"h4g-voucherhub/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductService manages the product catalog and its stock levels.
// Restocking triggers pre-order fulfillment in the same database
// transaction as the stock write.
type ProductService struct {
	db          *gorm.DB
	productRepo repositories.ProductRepository
	store       storage.ObjectStore
}

// NewProductService creates a new product service
func NewProductService(db *gorm.DB, productRepo repositories.ProductRepository, store storage.ObjectStore) *ProductService {
	return &ProductService{
		db:          db,
		productRepo: productRepo,
		store:       store,
	}
}

// CreateProductInput represents a new catalog entry
type CreateProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input *CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price < 0 || input.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	product := &models.Product{
		ProductID:   uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product created: %s (%s)", product.ProductID, product.Name)
	return product, nil
}

// GetByID returns a product by id
func (s *ProductService) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// List returns the full catalog
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx)
}

// UpdateProductInput carries optional detail fields; absent fields are
// left untouched
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
}

// UpdateDetails changes a product's descriptive fields. Stock is managed
// separately through UpdateStock and AddStock.
func (s *ProductService) UpdateDetails(ctx context.Context, productID string, input *UpdateProductInput) (*models.Product, error) {
	if _, err := s.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domain.ErrInvalidInput
		}
		fields["price"] = *input.Price
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if len(fields) == 0 {
		return nil, domain.ErrInvalidInput
	}

	if err := s.productRepo.UpdateFields(ctx, productID, fields); err != nil {
		return nil, err
	}

	log.Printf("✅ Product updated: %s", productID)
	return s.GetByID(ctx, productID)
}

// UpdateStock sets a product's stock to an absolute level
func (s *ProductService) UpdateStock(ctx context.Context, productID string, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateFields(ctx, productID, map[string]interface{}{"stock": stock}); err != nil {
		return nil, err
	}

	log.Printf("✅ Product stock set: %s (stock: %d)", productID, stock)
	return s.GetByID(ctx, productID)
}

// AddStockResult reports the stock level after restocking and fulfillment
type AddStockResult struct {
	ProductID             string   `json:"productId"`
	UpdatedStock          int      `json:"updatedStock"`
	FulfilledTransactions []string `json:"fulfilledTransactions"`
}

// AddStock increments a product's stock and immediately drains the
// pre-order queue oldest-first with the new level. The increment and
// every fulfillment commit together or not at all.
func (s *ProductService) AddStock(ctx context.Context, productID string, quantity int) (*AddStockResult, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result AddStockResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", productID).
			First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		fulfilled, remaining, err := fulfillPreOrders(tx, productID, product.Stock+quantity)
		if err != nil {
			return err
		}

		product.Stock = remaining
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		result = AddStockResult{
			ProductID:             productID,
			UpdatedStock:          remaining,
			FulfilledTransactions: fulfilled,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Product restocked: %s (+%d, now %d, fulfilled %d pre-orders)",
		productID, quantity, result.UpdatedStock, len(result.FulfilledTransactions))

	return &result, nil
}

// Delete removes a product and best-effort cleans up its image blob
func (s *ProductService) Delete(ctx context.Context, productID string) error {
	if _, err := s.GetByID(ctx, productID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, storage.ObjectPath(storage.CategoryProducts, productID)); err != nil {
			log.Printf("⚠️ Failed to delete product image %s: %v", productID, err)
		}
	}

	log.Printf("✅ Product deleted: %s", productID)
	return nil
}

// UploadImage stores a product image and records its signed URL
func (s *ProductService) UploadImage(ctx context.Context, productID string, data []byte, contentType string) (string, error) {
	if _, err := s.GetByID(ctx, productID); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", domain.ErrInvalidInput
	}

	url, err := s.store.Upload(ctx, data, contentType, storage.ObjectPath(storage.CategoryProducts, productID))
	if err != nil {
		return "", err
	}

	if err := s.productRepo.UpdateFields(ctx, productID, map[string]interface{}{"image_url": url}); err != nil {
		return "", err
	}

	log.Printf("✅ Product image uploaded: %s", productID)
	return url, nil
}

// GetImageURL issues a fresh signed read link for a product's image
func (s *ProductService) GetImageURL(ctx context.Context, productID string) (string, error) {
	if _, err := s.GetByID(ctx, productID); err != nil {
		return "", err
	}
	return s.store.SignedURL(ctx, storage.ObjectPath(storage.CategoryProducts, productID))
}
