package services

import (
	"context"
	"testing"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResidentCreate(t *testing.T) {
	t.Run("email becomes the login id", func(t *testing.T) {
		svc, _ := newTestResidentService(t, 50)

		resident, err := svc.Create(context.Background(), &CreateResidentInput{
			Name:     "Alice Tan",
			Email:    "Alice@Example.org",
			Password: "supersecret",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice@example.org", resident.UserID)
		assert.Equal(t, 50.0, resident.VoucherBalance)
		assert.Equal(t, models.RoleResident, resident.Role)
		assert.NotEqual(t, "supersecret", resident.PasswordHash)
	})

	t.Run("without email a login code is generated", func(t *testing.T) {
		svc, _ := newTestResidentService(t, 0)

		resident, err := svc.Create(context.Background(), &CreateResidentInput{
			Name:     "Bob Lim",
			Password: "supersecret",
		})
		require.NoError(t, err)

		assert.Len(t, resident.UserID, 6)
	})

	t.Run("duplicate user id is rejected", func(t *testing.T) {
		svc, _ := newTestResidentService(t, 0)

		_, err := svc.Create(context.Background(), &CreateResidentInput{
			Name: "Alice", Email: "a@b.org", Password: "supersecret",
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), &CreateResidentInput{
			Name: "Other Alice", Email: "a@b.org", Password: "differentpw",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := newTestResidentService(t, 0)

		_, err := svc.Create(context.Background(), &CreateResidentInput{Name: " ", Password: "supersecret"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Create(context.Background(), &CreateResidentInput{Name: "Alice", Password: "short"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestResidentUpdate(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		svc, db := newTestResidentService(t, 0)
		seedResident(t, db, "alice", 0)

		newName := "Alice T."
		updated, err := svc.UpdateDetails(context.Background(), "alice", &UpdateResidentInput{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Alice T.", updated.Name)
	})

	t.Run("empty update fails", func(t *testing.T) {
		svc, db := newTestResidentService(t, 0)
		seedResident(t, db, "alice", 0)

		_, err := svc.UpdateDetails(context.Background(), "alice", &UpdateResidentInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("set balance", func(t *testing.T) {
		svc, db := newTestResidentService(t, 0)
		seedResident(t, db, "alice", 10)

		updated, err := svc.SetVoucherBalance(context.Background(), "alice", 75)
		require.NoError(t, err)
		assert.Equal(t, 75.0, updated.VoucherBalance)

		_, err = svc.SetVoucherBalance(context.Background(), "alice", -1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("lookup by name", func(t *testing.T) {
		svc, db := newTestResidentService(t, 0)
		seedResident(t, db, "alice", 0)

		found, err := svc.LookupByName(context.Background(), "Resident alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", found.UserID)

		_, err = svc.LookupByName(context.Background(), "nobody")
		assert.ErrorIs(t, err, domain.ErrResidentNotFound)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	t.Run("request, list, and complete", func(t *testing.T) {
		svc, db := newTestResidentService(t, 0)
		seedResident(t, db, "alice", 0)

		request, err := svc.RequestPasswordReset(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, models.ResetStatusPending, request.Status)

		pending, err := svc.ListPasswordResets(context.Background())
		require.NoError(t, err)
		require.Len(t, pending, 1)

		require.NoError(t, svc.ResetPassword(context.Background(), "alice", "newsecret123"))

		// Completing the reset closes the pending request
		pending, err = svc.ListPasswordResets(context.Background())
		require.NoError(t, err)
		assert.Empty(t, pending)

		resident := getResident(t, db, "alice")
		assert.NotEqual(t, "x", resident.PasswordHash)
	})

	t.Run("request for unknown resident fails", func(t *testing.T) {
		svc, _ := newTestResidentService(t, 0)

		_, err := svc.RequestPasswordReset(context.Background(), "nobody")
		assert.ErrorIs(t, err, domain.ErrResidentNotFound)
	})

	t.Run("reset rejects short passwords", func(t *testing.T) {
		svc, db := newTestResidentService(t, 0)
		seedResident(t, db, "alice", 0)

		err := svc.ResetPassword(context.Background(), "alice", "short")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestResidentDelete(t *testing.T) {
	svc, db := newTestResidentService(t, 0)
	seedResident(t, db, "alice", 0)

	require.NoError(t, svc.Delete(context.Background(), "alice"))

	_, err := svc.GetByID(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrResidentNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "alice"), domain.ErrResidentNotFound)
}

func TestGenerateUserCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := generateUserCode()
		require.NoError(t, err)
		assert.Len(t, code, userCodeLength)
		for _, r := range code {
			assert.Contains(t, userCodeCharset, string(r))
		}
		seen[code] = true
	}
	// Collisions in 100 draws from 31^6 would be astonishing
	assert.Greater(t, len(seen), 95)
}
