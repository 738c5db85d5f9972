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
	"gorm.io/gorm/clause"
)

// TransactionService enacts purchases, quantity updates, and cancellations
// against product stock and resident voucher balances. Every mutation runs
// inside a single database transaction with row locks on the product and
// resident, so stock and balance cannot go stale between the read and the
// write.
type TransactionService struct {
	db              *gorm.DB
	transactionRepo repositories.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(db *gorm.DB, transactionRepo repositories.TransactionRepository) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
	}
}

// PurchaseInput represents a purchase request
type PurchaseInput struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PurchaseResult represents a completed purchase
type PurchaseResult struct {
	TransactionID    string  `json:"transactionId"`
	RemainingBalance float64 `json:"remainingBalance"`
	RemainingStock   int     `json:"remainingStock"`
}

// Purchase buys a product with voucher balance.
// Stock 0 fails with ErrOutOfStock so the caller can suggest a pre-order;
// 0 < stock < quantity fails with ErrInsufficientStock.
func (s *TransactionService) Purchase(ctx context.Context, input *PurchaseInput) (*PurchaseResult, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result PurchaseResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", input.ProductID).
			First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		if product.Stock <= 0 {
			return domain.ErrOutOfStock
		}
		if product.Stock < input.Quantity {
			return domain.ErrInsufficientStock
		}

		var resident models.Resident
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", input.UserID).
			First(&resident).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrResidentNotFound
			}
			return err
		}

		totalCost := product.Price * float64(input.Quantity)
		if resident.VoucherBalance < totalCost {
			return domain.ErrInsufficientBalance
		}

		transaction := &models.Transaction{
			TransactionID: uuid.New().String(),
			UserID:        input.UserID,
			ProductID:     input.ProductID,
			Quantity:      input.Quantity,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		resident.TransactionHistory = append(resident.TransactionHistory, transaction.TransactionID)
		resident.VoucherBalance -= totalCost
		if err := tx.Save(&resident).Error; err != nil {
			return err
		}

		product.Stock -= input.Quantity
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		result = PurchaseResult{
			TransactionID:    transaction.TransactionID,
			RemainingBalance: resident.VoucherBalance,
			RemainingStock:   product.Stock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Purchase completed: %s (user: %s, product: %s, qty: %d)",
		result.TransactionID, input.UserID, input.ProductID, input.Quantity)

	return &result, nil
}

// UpdateQuantityResult represents the outcome of a quantity change
type UpdateQuantityResult struct {
	TransactionID    string  `json:"transactionId"`
	NewQuantity      int     `json:"newQuantity"`
	RemainingBalance float64 `json:"remainingBalance"`
	RemainingStock   int     `json:"remainingStock"`
}

// UpdateQuantity changes the quantity on an existing purchase. Decreasing
// the quantity yields a negative stock difference, which restocks the
// product and refunds the balance.
func (s *TransactionService) UpdateQuantity(ctx context.Context, transactionID string, newQuantity int) (*UpdateQuantityResult, error) {
	if newQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result UpdateQuantityResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ?", transactionID).
			First(&transaction).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return err
		}

		var product models.Product
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", transaction.ProductID).
			First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		stockDifference := newQuantity - transaction.Quantity
		if product.Stock < stockDifference {
			return domain.ErrInsufficientStock
		}

		var resident models.Resident
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", transaction.UserID).
			First(&resident).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrResidentNotFound
			}
			return err
		}

		balanceDifference := product.Price * float64(stockDifference)
		if resident.VoucherBalance < balanceDifference {
			return domain.ErrInsufficientBalance
		}

		transaction.Quantity = newQuantity
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}

		product.Stock -= stockDifference
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		resident.VoucherBalance -= balanceDifference
		if err := tx.Save(&resident).Error; err != nil {
			return err
		}

		result = UpdateQuantityResult{
			TransactionID:    transactionID,
			NewQuantity:      newQuantity,
			RemainingBalance: resident.VoucherBalance,
			RemainingStock:   product.Stock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Purchase quantity updated: %s (qty: %d)", transactionID, newQuantity)
	return &result, nil
}

// Cancel reverses a purchase: restores stock, refunds the voucher balance,
// deletes the transaction, and removes it from the resident's history.
func (s *TransactionService) Cancel(ctx context.Context, transactionID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ?", transactionID).
			First(&transaction).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return err
		}

		var product models.Product
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", transaction.ProductID).
			First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		var resident models.Resident
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", transaction.UserID).
			First(&resident).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrResidentNotFound
			}
			return err
		}

		product.Stock += transaction.Quantity
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		resident.VoucherBalance += product.Price * float64(transaction.Quantity)
		resident.TransactionHistory = removeRef(resident.TransactionHistory, transactionID)
		if err := tx.Save(&resident).Error; err != nil {
			return err
		}

		return tx.Where("transaction_id = ?", transactionID).
			Delete(&models.Transaction{}).Error
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Purchase cancelled: %s", transactionID)
	return nil
}

// GetByID returns a transaction by id
func (s *TransactionService) GetByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// List returns all transactions with pagination
func (s *TransactionService) List(ctx context.Context, offset, limit int) ([]models.Transaction, int64, error) {
	return s.transactionRepo.List(ctx, offset, limit)
}

// ListByUser returns a resident's transaction history
func (s *TransactionService) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.transactionRepo.ListByUser(ctx, userID)
}

// removeRef removes one transaction id from a reference list
func removeRef(refs models.TransactionRefs, transactionID string) models.TransactionRefs {
	filtered := make(models.TransactionRefs, 0, len(refs))
	for _, ref := range refs {
		if ref != transactionID {
			filtered = append(filtered, ref)
		}
	}
	return filtered
}
