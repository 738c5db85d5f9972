package services

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"strings"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/adapters/persistence/repositories"
	"h4g-voucherhub/internal/adapters/storage"
	"h4g-voucherhub/internal/core/domain"
	"h4g-voucherhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userCodeCharset excludes ambiguous characters (0/O, 1/I/L)
const userCodeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// userCodeLength is the length of generated login codes
const userCodeLength = 6

// ResidentService manages resident accounts, their voucher balances, and
// the password reset queue.
type ResidentService struct {
	residentRepo    repositories.ResidentRepository
	resetRepo       repositories.PasswordResetRepository
	store           storage.ObjectStore
	startingBalance float64
}

// NewResidentService creates a new resident service
func NewResidentService(
	residentRepo repositories.ResidentRepository,
	resetRepo repositories.PasswordResetRepository,
	store storage.ObjectStore,
	startingBalance float64,
) *ResidentService {
	return &ResidentService{
		residentRepo:    residentRepo,
		resetRepo:       resetRepo,
		store:           store,
		startingBalance: startingBalance,
	}
}

// CreateResidentInput represents a new account request
type CreateResidentInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create registers a resident. The login id is the email when one is
// given; otherwise a short random code is generated so residents without
// email can still sign in.
func (s *ResidentService) Create(ctx context.Context, input *CreateResidentInput) (*models.Resident, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !password.Valid(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	userID := strings.TrimSpace(strings.ToLower(input.Email))
	if userID == "" {
		code, err := generateUserCode()
		if err != nil {
			return nil, err
		}
		userID = code
	}

	exists, err := s.residentRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	resident := &models.Resident{
		UserID:         userID,
		Name:           name,
		Email:          strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash:   hash,
		Role:           models.RoleResident,
		VoucherBalance: s.startingBalance,
	}

	if err := s.residentRepo.Create(ctx, resident); err != nil {
		return nil, err
	}

	log.Printf("✅ Resident created: %s (%s)", resident.UserID, resident.Name)
	return resident, nil
}

// GetByID returns a resident by login id
func (s *ResidentService) GetByID(ctx context.Context, userID string) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResidentNotFound
		}
		return nil, err
	}
	return resident, nil
}

// List returns residents with pagination
func (s *ResidentService) List(ctx context.Context, offset, limit int) ([]models.Resident, int64, error) {
	return s.residentRepo.List(ctx, offset, limit)
}

// LookupByName resolves a display name to a login id
func (s *ResidentService) LookupByName(ctx context.Context, name string) (*models.Resident, error) {
	resident, err := s.residentRepo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResidentNotFound
		}
		return nil, err
	}
	return resident, nil
}

// UpdateResidentInput carries optional profile fields
type UpdateResidentInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UpdateDetails changes a resident's name or password
func (s *ResidentService) UpdateDetails(ctx context.Context, userID string, input *UpdateResidentInput) (*models.Resident, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Password != nil {
		if !password.Valid(*input.Password) {
			return nil, domain.ErrInvalidInput
		}
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	if len(fields) == 0 {
		return nil, domain.ErrInvalidInput
	}

	if err := s.residentRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	log.Printf("✅ Resident updated: %s", userID)
	return s.GetByID(ctx, userID)
}

// SetVoucherBalance sets a resident's balance to an absolute value
func (s *ResidentService) SetVoucherBalance(ctx context.Context, userID string, balance float64) (*models.Resident, error) {
	if balance < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.residentRepo.UpdateFields(ctx, userID, map[string]interface{}{"voucher_balance": balance}); err != nil {
		return nil, err
	}

	log.Printf("✅ Resident balance set: %s (balance: %.2f)", userID, balance)
	return s.GetByID(ctx, userID)
}

// Delete removes a resident and best-effort cleans up their avatar blob
func (s *ResidentService) Delete(ctx context.Context, userID string) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.residentRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, storage.ObjectPath(storage.CategoryResidents, userID)); err != nil {
			log.Printf("⚠️ Failed to delete resident image %s: %v", userID, err)
		}
	}

	log.Printf("✅ Resident deleted: %s", userID)
	return nil
}

// UploadImage stores a resident's avatar and records its signed URL
func (s *ResidentService) UploadImage(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", domain.ErrInvalidInput
	}

	url, err := s.store.Upload(ctx, data, contentType, storage.ObjectPath(storage.CategoryResidents, userID))
	if err != nil {
		return "", err
	}

	if err := s.residentRepo.UpdateFields(ctx, userID, map[string]interface{}{"image_url": url}); err != nil {
		return "", err
	}

	log.Printf("✅ Resident image uploaded: %s", userID)
	return url, nil
}

// GetImageURL issues a fresh signed read link for a resident's avatar
func (s *ResidentService) GetImageURL(ctx context.Context, userID string) (string, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return "", err
	}
	return s.store.SignedURL(ctx, storage.ObjectPath(storage.CategoryResidents, userID))
}

// RequestPasswordReset files a reset request for an admin to act on.
// Residents have no email recovery flow; an admin completes the reset.
func (s *ResidentService) RequestPasswordReset(ctx context.Context, userID string) (*models.PasswordReset, error) {
	resident, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	request := &models.PasswordReset{
		RequestID: uuid.New().String(),
		UserID:    resident.UserID,
		Name:      resident.Name,
		Status:    models.ResetStatusPending,
	}

	if err := s.resetRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	log.Printf("✅ Password reset requested: %s (user: %s)", request.RequestID, userID)
	return request, nil
}

// ListPasswordResets returns pending reset requests, oldest first
func (s *ResidentService) ListPasswordResets(ctx context.Context) ([]models.PasswordReset, error) {
	return s.resetRepo.ListPending(ctx)
}

// ResetPassword sets a resident's password and closes their pending reset
// requests. Admin-only.
func (s *ResidentService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	if !password.Valid(newPassword) {
		return domain.ErrInvalidInput
	}
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.residentRepo.UpdateFields(ctx, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return err
	}

	pending, err := s.resetRepo.ListPending(ctx)
	if err != nil {
		return err
	}
	for _, request := range pending {
		if request.UserID != userID {
			continue
		}
		if err := s.resetRepo.UpdateStatus(ctx, request.RequestID, models.ResetStatusCompleted); err != nil {
			return err
		}
	}

	log.Printf("✅ Password reset completed: %s", userID)
	return nil
}

// generateUserCode returns a short random login code
func generateUserCode() (string, error) {
	buf := make([]byte, userCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = userCodeCharset[int(b)%len(userCodeCharset)]
	}
	return string(buf), nil
}
