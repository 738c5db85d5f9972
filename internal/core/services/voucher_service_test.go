package services

import (
	"context"
	"testing"

	"h4g-voucherhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherTaskLifecycle(t *testing.T) {
	t.Run("claim then approve credits the balance", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 10)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{
			TaskName: "Sweep the common area",
			Value:    25,
		})
		require.NoError(t, err)
		assert.True(t, task.IsOpen())

		claimed, err := svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)
		assert.True(t, claimed.ClaimStatus)
		require.NotNil(t, claimed.UserID)
		assert.Equal(t, "alice", *claimed.UserID)

		result, err := svc.Approve(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)
		assert.Equal(t, 35.0, result.NewBalance)
		assert.Equal(t, 35.0, getResident(t, db, "alice").VoucherBalance)
	})

	t.Run("double claim is rejected", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)
		seedResident(t, db, "bob", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)

		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)

		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "bob")
		assert.ErrorIs(t, err, domain.ErrTaskAlreadyClaimed)
	})

	t.Run("approve requires a claim", func(t *testing.T) {
		svc, _ := newTestVoucherService(t)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)

		_, err = svc.Approve(context.Background(), task.VoucherTaskID)
		assert.ErrorIs(t, err, domain.ErrTaskNotClaimed)
	})

	t.Run("double approve is rejected and credits only once", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)

		_, err = svc.Approve(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)

		_, err = svc.Approve(context.Background(), task.VoucherTaskID)
		assert.ErrorIs(t, err, domain.ErrTaskAlreadyApproved)
		assert.Equal(t, 10.0, getResident(t, db, "alice").VoucherBalance)
	})

	t.Run("unclaim releases the task", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)

		released, err := svc.Unclaim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)
		assert.True(t, released.IsOpen())
	})

	t.Run("unclaim of an open task fails", func(t *testing.T) {
		svc, _ := newTestVoucherService(t)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)

		_, err = svc.Unclaim(context.Background(), task.VoucherTaskID, "alice")
		assert.ErrorIs(t, err, domain.ErrTaskNotClaimed)
	})

	t.Run("unclaim by another resident is forbidden", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)

		_, err = svc.Unclaim(context.Background(), task.VoucherTaskID, "bob")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestVoucherUnapprove(t *testing.T) {
	t.Run("debits the credited value back out", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 5)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 20})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)
		_, err = svc.Approve(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)

		result, err := svc.Unapprove(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)
		assert.Equal(t, 5.0, result.NewBalance)

		reloaded, err := svc.GetByID(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsApproved())
		assert.True(t, reloaded.ClaimStatus)
	})

	t.Run("fails when the resident already spent the credit", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 20})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)
		_, err = svc.Approve(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)

		// Simulate the credit being spent elsewhere
		require.NoError(t, db.Model(getResident(t, db, "alice")).Update("voucher_balance", 12).Error)

		_, err = svc.Unapprove(context.Background(), task.VoucherTaskID)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		// The approval flag must survive the failed revert
		reloaded, err := svc.GetByID(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)
		assert.True(t, reloaded.IsApproved())
	})

	t.Run("fails on a task that was never approved", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 20})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)

		_, err = svc.Unapprove(context.Background(), task.VoucherTaskID)
		assert.ErrorIs(t, err, domain.ErrTaskNotApproved)
	})
}

func TestVoucherReject(t *testing.T) {
	t.Run("resets a claimed task to open", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)

		rejected, err := svc.Reject(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)
		assert.True(t, rejected.IsOpen())
		assert.False(t, rejected.IsApproved())
	})

	t.Run("is idempotent", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)

		first, err := svc.Reject(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)
		second, err := svc.Reject(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)

		assert.Equal(t, first.ClaimStatus, second.ClaimStatus)
		assert.Equal(t, first.DistributedStatus, second.DistributedStatus)
		assert.Nil(t, second.UserID)
	})

	t.Run("does not touch balance credited through approve", func(t *testing.T) {
		svc, db := newTestVoucherService(t)
		seedResident(t, db, "alice", 0)

		task, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "Garden duty", Value: 10})
		require.NoError(t, err)
		_, err = svc.Claim(context.Background(), task.VoucherTaskID, "alice")
		require.NoError(t, err)
		_, err = svc.Approve(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)

		_, err = svc.Reject(context.Background(), task.VoucherTaskID)
		require.NoError(t, err)

		assert.Equal(t, 10.0, getResident(t, db, "alice").VoucherBalance)
	})
}

func TestVoucherTaskValidation(t *testing.T) {
	svc, _ := newTestVoucherService(t)

	_, err := svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: " ", Value: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), &CreateVoucherTaskInput{TaskName: "X", Value: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
