package services

import (
	"context"
	"errors"
	"log"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/adapters/persistence/repositories"
	"h4g-voucherhub/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreOrderService manages pre-order requests for out-of-stock products.
// Fulfillment itself happens when stock arrives, see ProductService.AddStock.
type PreOrderService struct {
	preOrderRepo repositories.PreOrderRepository
	productRepo  repositories.ProductRepository
	residentRepo repositories.ResidentRepository
}

// NewPreOrderService creates a new pre-order service
func NewPreOrderService(
	preOrderRepo repositories.PreOrderRepository,
	productRepo repositories.ProductRepository,
	residentRepo repositories.ResidentRepository,
) *PreOrderService {
	return &PreOrderService{
		preOrderRepo: preOrderRepo,
		productRepo:  productRepo,
		residentRepo: residentRepo,
	}
}

// CreatePreOrderInput represents a pre-order request
type CreatePreOrderInput struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Create records a pre-order for a product. The product name is denormalized
// onto the request so queue listings don't need a join.
func (s *PreOrderService) Create(ctx context.Context, input *CreatePreOrderInput) (*models.PreOrder, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	resident, err := s.residentRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResidentNotFound
		}
		return nil, err
	}

	preOrder := &models.PreOrder{
		PreOrderID:  uuid.New().String(),
		UserID:      input.UserID,
		ProductID:   input.ProductID,
		ProductName: product.Name,
		Quantity:    input.Quantity,
	}

	if err := s.preOrderRepo.Create(ctx, preOrder); err != nil {
		return nil, err
	}

	resident.PreOrderRequests = append(resident.PreOrderRequests, models.PreOrderSummary{
		PreOrderID:  preOrder.PreOrderID,
		ProductID:   preOrder.ProductID,
		ProductName: preOrder.ProductName,
		Quantity:    preOrder.Quantity,
		CreatedAt:   preOrder.CreatedAt,
	})
	if err := s.residentRepo.Update(ctx, resident); err != nil {
		return nil, err
	}

	log.Printf("✅ Pre-order created: %s (user: %s, product: %s, qty: %d)",
		preOrder.PreOrderID, input.UserID, input.ProductID, input.Quantity)

	return preOrder, nil
}

// GetByID returns a pre-order by id
func (s *PreOrderService) GetByID(ctx context.Context, preOrderID string) (*models.PreOrder, error) {
	preOrder, err := s.preOrderRepo.GetByID(ctx, preOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPreOrderNotFound
		}
		return nil, err
	}
	return preOrder, nil
}

// List returns all pending pre-orders
func (s *PreOrderService) List(ctx context.Context) ([]models.PreOrder, error) {
	return s.preOrderRepo.List(ctx)
}

// ListByUser returns a resident's pending pre-orders
func (s *PreOrderService) ListByUser(ctx context.Context, userID string) ([]models.PreOrder, error) {
	return s.preOrderRepo.ListByUser(ctx, userID)
}

// ListByProduct returns a product's pre-order queue, oldest first
func (s *PreOrderService) ListByProduct(ctx context.Context, productID string) ([]models.PreOrder, error) {
	return s.preOrderRepo.ListByProductFIFO(ctx, productID)
}

// Delete withdraws a pre-order and removes it from the resident's list
func (s *PreOrderService) Delete(ctx context.Context, preOrderID string) error {
	preOrder, err := s.preOrderRepo.GetByID(ctx, preOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPreOrderNotFound
		}
		return err
	}

	if err := s.preOrderRepo.Delete(ctx, preOrderID); err != nil {
		return err
	}

	resident, err := s.residentRepo.GetByID(ctx, preOrder.UserID)
	if err == nil {
		resident.PreOrderRequests = removePreOrderSummary(resident.PreOrderRequests, preOrderID)
		if err := s.residentRepo.Update(ctx, resident); err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Printf("✅ Pre-order deleted: %s", preOrderID)
	return nil
}
