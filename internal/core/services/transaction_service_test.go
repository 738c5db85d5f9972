package services

import (
	"context"
	"testing"

	"h4g-voucherhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchase(t *testing.T) {
	t.Run("debits balance and decrements stock", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 100)
		product := seedProduct(t, db, "Rice 5kg", 12.5, 10)

		result, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID:    "alice",
			ProductID: product.ProductID,
			Quantity:  4,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, result.TransactionID)
		assert.Equal(t, 50.0, result.RemainingBalance)
		assert.Equal(t, 6, result.RemainingStock)

		resident := getResident(t, db, "alice")
		assert.Equal(t, 50.0, resident.VoucherBalance)
		assert.Equal(t, []string{result.TransactionID}, []string(resident.TransactionHistory))

		assert.Equal(t, 6, getProduct(t, db, product.ProductID).Stock)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 100)
		product := seedProduct(t, db, "Rice 5kg", 12.5, 10)

		for _, quantity := range []int{0, -3} {
			_, err := svc.Purchase(context.Background(), &PurchaseInput{
				UserID:    "alice",
				ProductID: product.ProductID,
				Quantity:  quantity,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
	})

	t.Run("zero stock reports out of stock, not insufficient stock", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 100)
		product := seedProduct(t, db, "Cooking Oil", 5, 0)

		_, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID:    "alice",
			ProductID: product.ProductID,
			Quantity:  1,
		})
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
	})

	t.Run("partial stock reports insufficient stock", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 100)
		product := seedProduct(t, db, "Cooking Oil", 5, 2)

		_, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID:    "alice",
			ProductID: product.ProductID,
			Quantity:  3,
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("insufficient balance leaves stock untouched", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 10)
		product := seedProduct(t, db, "Blanket", 30, 5)

		_, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID:    "alice",
			ProductID: product.ProductID,
			Quantity:  1,
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		// GIVEN the purchase failed, nothing may have been written
		assert.Equal(t, 5, getProduct(t, db, product.ProductID).Stock)
		assert.Equal(t, 10.0, getResident(t, db, "alice").VoucherBalance)
	})

	t.Run("unknown product and resident", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 100)
		product := seedProduct(t, db, "Rice 5kg", 12.5, 10)

		_, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID: "alice", ProductID: "missing", Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		_, err = svc.Purchase(context.Background(), &PurchaseInput{
			UserID: "nobody", ProductID: product.ProductID, Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrResidentNotFound)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("increase adjusts stock and balance by the difference", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 100)
		product := seedProduct(t, db, "Rice 5kg", 10, 10)

		purchase, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 2,
		})
		require.NoError(t, err)

		result, err := svc.UpdateQuantity(context.Background(), purchase.TransactionID, 5)
		require.NoError(t, err)

		assert.Equal(t, 5, result.NewQuantity)
		assert.Equal(t, 50.0, result.RemainingBalance)
		assert.Equal(t, 5, result.RemainingStock)
	})

	t.Run("decrease restocks and refunds", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 100)
		product := seedProduct(t, db, "Rice 5kg", 10, 10)

		purchase, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 5,
		})
		require.NoError(t, err)

		result, err := svc.UpdateQuantity(context.Background(), purchase.TransactionID, 2)
		require.NoError(t, err)

		assert.Equal(t, 80.0, result.RemainingBalance)
		assert.Equal(t, 8, result.RemainingStock)
	})

	t.Run("fails when the increase exceeds remaining stock", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 1000)
		product := seedProduct(t, db, "Rice 5kg", 10, 5)

		purchase, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 3,
		})
		require.NoError(t, err)

		// 2 left in stock, asking for 3 more
		_, err = svc.UpdateQuantity(context.Background(), purchase.TransactionID, 6)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("fails when the increase exceeds remaining balance", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 25)
		product := seedProduct(t, db, "Rice 5kg", 10, 10)

		purchase, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 2,
		})
		require.NoError(t, err)

		_, err = svc.UpdateQuantity(context.Background(), purchase.TransactionID, 3)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		svc, _ := newTestTransactionService(t)

		_, err := svc.UpdateQuantity(context.Background(), "missing", 2)
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("restores stock, refunds balance, and removes history entry", func(t *testing.T) {
		svc, db := newTestTransactionService(t)
		seedResident(t, db, "alice", 100)
		product := seedProduct(t, db, "Rice 5kg", 10, 10)

		purchase, err := svc.Purchase(context.Background(), &PurchaseInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 4,
		})
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(context.Background(), purchase.TransactionID))

		resident := getResident(t, db, "alice")
		assert.Equal(t, 100.0, resident.VoucherBalance)
		assert.Empty(t, resident.TransactionHistory)
		assert.Equal(t, 10, getProduct(t, db, product.ProductID).Stock)

		_, err = svc.GetByID(context.Background(), purchase.TransactionID)
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		svc, _ := newTestTransactionService(t)
		assert.ErrorIs(t, svc.Cancel(context.Background(), "missing"), domain.ErrTransactionNotFound)
	})
}

func TestPurchaseConservation(t *testing.T) {
	// WHEN a purchase is later cancelled, total stock and total balance
	// across the system must come back to their initial values
	svc, db := newTestTransactionService(t)
	seedResident(t, db, "alice", 60)
	seedResident(t, db, "bob", 40)
	product := seedProduct(t, db, "Rice 5kg", 10, 8)

	a, err := svc.Purchase(context.Background(), &PurchaseInput{
		UserID: "alice", ProductID: product.ProductID, Quantity: 3,
	})
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), &PurchaseInput{
		UserID: "bob", ProductID: product.ProductID, Quantity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, getProduct(t, db, product.ProductID).Stock)

	require.NoError(t, svc.Cancel(context.Background(), a.TransactionID))

	assert.Equal(t, 6, getProduct(t, db, product.ProductID).Stock)
	assert.Equal(t, 60.0, getResident(t, db, "alice").VoucherBalance)
	assert.Equal(t, 20.0, getResident(t, db, "bob").VoucherBalance)
}
