package services

import (
	"errors"
	"log"

	"h4g-voucherhub/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fulfillPreOrders walks a product's pre-order queue oldest-first and
// converts every request the stock level can fully cover into a
// transaction. The walk stops at the first request that does not fit;
// later, smaller requests wait their turn. Runs inside the caller's
// database transaction and returns the created transaction ids plus the
// residual stock.
func fulfillPreOrders(tx *gorm.DB, productID string, stockLevel int) ([]string, int, error) {
	var preOrders []models.PreOrder
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		Order("created_at, pre_order_id").
		Find(&preOrders).Error
	if err != nil {
		return nil, stockLevel, err
	}

	fulfilled := make([]string, 0, len(preOrders))

	for _, preOrder := range preOrders {
		if stockLevel < preOrder.Quantity {
			break
		}

		transaction := &models.Transaction{
			TransactionID: uuid.New().String(),
			UserID:        preOrder.UserID,
			ProductID:     preOrder.ProductID,
			Quantity:      preOrder.Quantity,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return nil, stockLevel, err
		}

		var resident models.Resident
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", preOrder.UserID).
			First(&resident).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stockLevel, err
		}
		if err == nil {
			resident.TransactionHistory = append(resident.TransactionHistory, transaction.TransactionID)
			resident.PreOrderRequests = removePreOrderSummary(resident.PreOrderRequests, preOrder.PreOrderID)
			if err := tx.Save(&resident).Error; err != nil {
				return nil, stockLevel, err
			}
		}

		if err := tx.Where("pre_order_id = ?", preOrder.PreOrderID).
			Delete(&models.PreOrder{}).Error; err != nil {
			return nil, stockLevel, err
		}

		stockLevel -= preOrder.Quantity
		fulfilled = append(fulfilled, transaction.TransactionID)

		log.Printf("✅ Pre-order fulfilled: %s -> transaction %s (user: %s, qty: %d)",
			preOrder.PreOrderID, transaction.TransactionID, preOrder.UserID, preOrder.Quantity)
	}

	return fulfilled, stockLevel, nil
}

// removePreOrderSummary removes one pre-order from a resident's embedded list
func removePreOrderSummary(summaries models.PreOrderSummaries, preOrderID string) models.PreOrderSummaries {
	filtered := make(models.PreOrderSummaries, 0, len(summaries))
	for _, summary := range summaries {
		if summary.PreOrderID != preOrderID {
			filtered = append(filtered, summary)
		}
	}
	return filtered
}
