package services

import (
	"context"
	"testing"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		svc, _ := newTestProductService(t)

		product, err := svc.Create(context.Background(), &CreateProductInput{
			Name:        "Rice 5kg",
			Description: "Thai jasmine rice",
			Price:       12.5,
			Stock:       10,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, product.ProductID)

		got, err := svc.GetByID(context.Background(), product.ProductID)
		require.NoError(t, err)
		assert.Equal(t, "Rice 5kg", got.Name)
		assert.Equal(t, 10, got.Stock)
	})

	t.Run("create validation", func(t *testing.T) {
		svc, _ := newTestProductService(t)

		_, err := svc.Create(context.Background(), &CreateProductInput{Name: "  ", Price: 1, Stock: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Create(context.Background(), &CreateProductInput{Name: "X", Price: -1, Stock: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Create(context.Background(), &CreateProductInput{Name: "X", Price: 1, Stock: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("update details leaves stock alone", func(t *testing.T) {
		svc, db := newTestProductService(t)
		product := seedProduct(t, db, "Rice 5kg", 12.5, 10)

		newName := "Rice 10kg"
		newPrice := 22.0
		updated, err := svc.UpdateDetails(context.Background(), product.ProductID, &UpdateProductInput{
			Name:  &newName,
			Price: &newPrice,
		})
		require.NoError(t, err)

		assert.Equal(t, "Rice 10kg", updated.Name)
		assert.Equal(t, 22.0, updated.Price)
		assert.Equal(t, 10, updated.Stock)
	})

	t.Run("update with no fields fails", func(t *testing.T) {
		svc, db := newTestProductService(t)
		product := seedProduct(t, db, "Rice 5kg", 12.5, 10)

		_, err := svc.UpdateDetails(context.Background(), product.ProductID, &UpdateProductInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("delete", func(t *testing.T) {
		svc, db := newTestProductService(t)
		product := seedProduct(t, db, "Rice 5kg", 12.5, 10)

		require.NoError(t, svc.Delete(context.Background(), product.ProductID))

		_, err := svc.GetByID(context.Background(), product.ProductID)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestUpdateStock(t *testing.T) {
	t.Run("sets an absolute level", func(t *testing.T) {
		svc, db := newTestProductService(t)
		product := seedProduct(t, db, "Rice 5kg", 12.5, 10)

		updated, err := svc.UpdateStock(context.Background(), product.ProductID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Stock)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		svc, db := newTestProductService(t)
		product := seedProduct(t, db, "Rice 5kg", 12.5, 10)

		_, err := svc.UpdateStock(context.Background(), product.ProductID, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAddStockFulfillment(t *testing.T) {
	t.Run("drains the queue oldest first and stops at the first misfit", func(t *testing.T) {
		svc, db := newTestProductService(t)
		preOrderSvc := newTestPreOrderService(t, db)
		seedResident(t, db, "alice", 0)
		seedResident(t, db, "bob", 0)
		product := seedProduct(t, db, "Blanket", 30, 0)

		// GIVEN a queue of [alice:3, bob:5], oldest first
		_, err := preOrderSvc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 3,
		})
		require.NoError(t, err)
		_, err = preOrderSvc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "bob", ProductID: product.ProductID, Quantity: 5,
		})
		require.NoError(t, err)

		// WHEN 3 units arrive, only alice's request fits; the walk stops
		// at bob even though later smaller requests could fit
		result, err := svc.AddStock(context.Background(), product.ProductID, 3)
		require.NoError(t, err)
		assert.Len(t, result.FulfilledTransactions, 1)
		assert.Equal(t, 0, result.UpdatedStock)

		remaining, err := preOrderSvc.ListByProduct(context.Background(), product.ProductID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "bob", remaining[0].UserID)

		// WHEN 8 more arrive, bob's 5 are fulfilled and 3 stay in stock
		result, err = svc.AddStock(context.Background(), product.ProductID, 8)
		require.NoError(t, err)
		assert.Len(t, result.FulfilledTransactions, 1)
		assert.Equal(t, 3, result.UpdatedStock)

		remaining, err = preOrderSvc.ListByProduct(context.Background(), product.ProductID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("fulfillment creates transactions and updates resident history", func(t *testing.T) {
		svc, db := newTestProductService(t)
		preOrderSvc := newTestPreOrderService(t, db)
		seedResident(t, db, "alice", 0)
		product := seedProduct(t, db, "Blanket", 30, 0)

		_, err := preOrderSvc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 2,
		})
		require.NoError(t, err)

		result, err := svc.AddStock(context.Background(), product.ProductID, 2)
		require.NoError(t, err)
		require.Len(t, result.FulfilledTransactions, 1)

		var transaction models.Transaction
		require.NoError(t, db.Where("transaction_id = ?", result.FulfilledTransactions[0]).First(&transaction).Error)
		assert.Equal(t, "alice", transaction.UserID)
		assert.Equal(t, 2, transaction.Quantity)

		resident := getResident(t, db, "alice")
		assert.Equal(t, []string{transaction.TransactionID}, []string(resident.TransactionHistory))
		assert.Empty(t, resident.PreOrderRequests)
	})

	t.Run("fulfillment never touches voucher balance", func(t *testing.T) {
		svc, db := newTestProductService(t)
		preOrderSvc := newTestPreOrderService(t, db)
		seedResident(t, db, "alice", 50)
		product := seedProduct(t, db, "Blanket", 30, 0)

		_, err := preOrderSvc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 1,
		})
		require.NoError(t, err)

		_, err = svc.AddStock(context.Background(), product.ProductID, 1)
		require.NoError(t, err)

		assert.Equal(t, 50.0, getResident(t, db, "alice").VoucherBalance)
	})

	t.Run("restock with an empty queue just raises stock", func(t *testing.T) {
		svc, db := newTestProductService(t)
		product := seedProduct(t, db, "Blanket", 30, 2)

		result, err := svc.AddStock(context.Background(), product.ProductID, 5)
		require.NoError(t, err)
		assert.Empty(t, result.FulfilledTransactions)
		assert.Equal(t, 7, result.UpdatedStock)
	})

	t.Run("rejects non-positive increments", func(t *testing.T) {
		svc, db := newTestProductService(t)
		product := seedProduct(t, db, "Blanket", 30, 2)

		_, err := svc.AddStock(context.Background(), product.ProductID, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
