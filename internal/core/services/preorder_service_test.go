package services

import (
	"context"
	"testing"

	"h4g-voucherhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreOrderCreate(t *testing.T) {
	t.Run("records the request and mirrors it on the resident", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestPreOrderService(t, db)
		seedResident(t, db, "alice", 0)
		product := seedProduct(t, db, "Blanket", 30, 0)

		preOrder, err := svc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 2,
		})
		require.NoError(t, err)

		assert.Equal(t, "Blanket", preOrder.ProductName)

		resident := getResident(t, db, "alice")
		require.Len(t, resident.PreOrderRequests, 1)
		assert.Equal(t, preOrder.PreOrderID, resident.PreOrderRequests[0].PreOrderID)
		assert.Equal(t, 2, resident.PreOrderRequests[0].Quantity)
	})

	t.Run("validation and missing entities", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestPreOrderService(t, db)
		seedResident(t, db, "alice", 0)
		product := seedProduct(t, db, "Blanket", 30, 0)

		_, err := svc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "alice", ProductID: "missing", Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		_, err = svc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "nobody", ProductID: product.ProductID, Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrResidentNotFound)
	})
}

func TestPreOrderQueueOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPreOrderService(t, db)
	seedResident(t, db, "alice", 0)
	seedResident(t, db, "bob", 0)
	product := seedProduct(t, db, "Blanket", 30, 0)

	first, err := svc.Create(context.Background(), &CreatePreOrderInput{
		UserID: "alice", ProductID: product.ProductID, Quantity: 3,
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &CreatePreOrderInput{
		UserID: "bob", ProductID: product.ProductID, Quantity: 1,
	})
	require.NoError(t, err)

	queue, err := svc.ListByProduct(context.Background(), product.ProductID)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, first.PreOrderID, queue[0].PreOrderID)
	assert.Equal(t, second.PreOrderID, queue[1].PreOrderID)
}

func TestPreOrderDelete(t *testing.T) {
	t.Run("withdraws the request and clears the resident mirror", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestPreOrderService(t, db)
		seedResident(t, db, "alice", 0)
		product := seedProduct(t, db, "Blanket", 30, 0)

		preOrder, err := svc.Create(context.Background(), &CreatePreOrderInput{
			UserID: "alice", ProductID: product.ProductID, Quantity: 2,
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), preOrder.PreOrderID))

		_, err = svc.GetByID(context.Background(), preOrder.PreOrderID)
		assert.ErrorIs(t, err, domain.ErrPreOrderNotFound)

		assert.Empty(t, getResident(t, db, "alice").PreOrderRequests)
	})

	t.Run("unknown pre-order", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestPreOrderService(t, db)

		assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), domain.ErrPreOrderNotFound)
	})
}
