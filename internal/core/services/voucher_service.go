package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/adapters/persistence/repositories"
	"h4g-voucherhub/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoucherService runs the voucher task lifecycle:
//
//	Open -> Claimed -> Approved
//
// Claiming binds a task to a resident, approval credits the task's value
// to that resident's voucher balance. Approval and unapproval move real
// balance, so both run in a database transaction with row locks.
type VoucherService struct {
	db           *gorm.DB
	taskRepo     repositories.VoucherTaskRepository
	residentRepo repositories.ResidentRepository
}

// NewVoucherService creates a new voucher service
func NewVoucherService(db *gorm.DB, taskRepo repositories.VoucherTaskRepository, residentRepo repositories.ResidentRepository) *VoucherService {
	return &VoucherService{
		db:           db,
		taskRepo:     taskRepo,
		residentRepo: residentRepo,
	}
}

// CreateVoucherTaskInput represents a new task posting
type CreateVoucherTaskInput struct {
	TaskName string `json:"taskName"`
	Value    int    `json:"value"`
}

// Create posts a new voucher task in the Open state
func (s *VoucherService) Create(ctx context.Context, input *CreateVoucherTaskInput) (*models.VoucherTask, error) {
	if strings.TrimSpace(input.TaskName) == "" || input.Value <= 0 {
		return nil, domain.ErrInvalidInput
	}

	task := &models.VoucherTask{
		VoucherTaskID: uuid.New().String(),
		TaskName:      strings.TrimSpace(input.TaskName),
		Value:         input.Value,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Printf("✅ Voucher task created: %s (%s, value: %d)", task.VoucherTaskID, task.TaskName, task.Value)
	return task, nil
}

// GetByID returns a voucher task by id
func (s *VoucherService) GetByID(ctx context.Context, taskID string) (*models.VoucherTask, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// List returns all voucher tasks
func (s *VoucherService) List(ctx context.Context) ([]models.VoucherTask, error) {
	return s.taskRepo.List(ctx)
}

// ListOpen returns tasks nobody has claimed yet
func (s *VoucherService) ListOpen(ctx context.Context) ([]models.VoucherTask, error) {
	return s.taskRepo.ListByClaimStatus(ctx, false)
}

// ListClaimed returns tasks currently bound to a resident
func (s *VoucherService) ListClaimed(ctx context.Context) ([]models.VoucherTask, error) {
	return s.taskRepo.ListByClaimStatus(ctx, true)
}

// ListByUser returns the tasks a resident has claimed
func (s *VoucherService) ListByUser(ctx context.Context, userID string) ([]models.VoucherTask, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// Claim binds an open task to a resident
func (s *VoucherService) Claim(ctx context.Context, taskID, userID string) (*models.VoucherTask, error) {
	if _, err := s.residentRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResidentNotFound
		}
		return nil, err
	}

	task, err := s.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ClaimStatus {
		return nil, domain.ErrTaskAlreadyClaimed
	}

	err = s.taskRepo.UpdateFields(ctx, taskID, map[string]interface{}{
		"user_id":      userID,
		"claim_status": true,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Voucher task claimed: %s (user: %s)", taskID, userID)
	return s.GetByID(ctx, taskID)
}

// Unclaim releases a claimed task back to Open. The claim holder (or an
// admin acting on their behalf) is the only one allowed to release it.
func (s *VoucherService) Unclaim(ctx context.Context, taskID, userID string) (*models.VoucherTask, error) {
	task, err := s.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.ClaimStatus {
		return nil, domain.ErrTaskNotClaimed
	}
	if userID != "" && task.UserID != nil && *task.UserID != userID {
		return nil, domain.ErrForbidden
	}

	err = s.taskRepo.UpdateFields(ctx, taskID, map[string]interface{}{
		"user_id":      nil,
		"claim_status": false,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Voucher task unclaimed: %s", taskID)
	return s.GetByID(ctx, taskID)
}

// ApproveResult reports the credited resident's new balance
type ApproveResult struct {
	VoucherTaskID string  `json:"voucherTaskId"`
	UserID        string  `json:"userId"`
	NewBalance    float64 `json:"newBalance"`
}

// Approve marks a claimed task as completed and credits its value to the
// claiming resident's balance, atomically.
func (s *VoucherService) Approve(ctx context.Context, taskID string) (*ApproveResult, error) {
	var result ApproveResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.VoucherTask
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("voucher_task_id = ?", taskID).
			First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTaskNotFound
			}
			return err
		}

		if task.DistributedStatus {
			return domain.ErrTaskAlreadyApproved
		}
		if !task.ClaimStatus || task.UserID == nil {
			return domain.ErrTaskNotClaimed
		}

		var resident models.Resident
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", *task.UserID).
			First(&resident).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrResidentNotFound
			}
			return err
		}

		resident.VoucherBalance += float64(task.Value)
		if err := tx.Save(&resident).Error; err != nil {
			return err
		}

		task.DistributedStatus = true
		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		result = ApproveResult{
			VoucherTaskID: taskID,
			UserID:        resident.UserID,
			NewBalance:    resident.VoucherBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Voucher task approved: %s (user: %s, new balance: %.2f)",
		taskID, result.UserID, result.NewBalance)

	return &result, nil
}

// Unapprove reverts an approval and debits the credited value back out of
// the resident's balance. Fails if the resident has already spent below
// the task's value, so the balance can never go negative.
func (s *VoucherService) Unapprove(ctx context.Context, taskID string) (*ApproveResult, error) {
	var result ApproveResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.VoucherTask
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("voucher_task_id = ?", taskID).
			First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTaskNotFound
			}
			return err
		}

		if !task.DistributedStatus {
			return domain.ErrTaskNotApproved
		}
		if task.UserID == nil {
			return domain.ErrTaskNotClaimed
		}

		var resident models.Resident
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", *task.UserID).
			First(&resident).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrResidentNotFound
			}
			return err
		}

		if resident.VoucherBalance < float64(task.Value) {
			return domain.ErrInsufficientBalance
		}

		resident.VoucherBalance -= float64(task.Value)
		if err := tx.Save(&resident).Error; err != nil {
			return err
		}

		task.DistributedStatus = false
		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		result = ApproveResult{
			VoucherTaskID: taskID,
			UserID:        resident.UserID,
			NewBalance:    resident.VoucherBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Voucher task unapproved: %s (user: %s, new balance: %.2f)",
		taskID, result.UserID, result.NewBalance)

	return &result, nil
}

// Reject resets a task to the Open state regardless of where it is in the
// lifecycle. Any balance already credited through Approve stays with the
// resident; use Unapprove first to revoke it.
func (s *VoucherService) Reject(ctx context.Context, taskID string) (*models.VoucherTask, error) {
	if _, err := s.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	err := s.taskRepo.UpdateFields(ctx, taskID, map[string]interface{}{
		"user_id":            nil,
		"claim_status":       false,
		"distributed_status": false,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Voucher task rejected: %s", taskID)
	return s.GetByID(ctx, taskID)
}

// UpdateVoucherTaskInput carries optional task fields
type UpdateVoucherTaskInput struct {
	TaskName *string `json:"taskName"`
	Value    *int    `json:"value"`
}

// Update edits a task's name or value
func (s *VoucherService) Update(ctx context.Context, taskID string, input *UpdateVoucherTaskInput) (*models.VoucherTask, error) {
	if _, err := s.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.TaskName != nil {
		if strings.TrimSpace(*input.TaskName) == "" {
			return nil, domain.ErrInvalidInput
		}
		fields["task_name"] = strings.TrimSpace(*input.TaskName)
	}
	if input.Value != nil {
		if *input.Value <= 0 {
			return nil, domain.ErrInvalidInput
		}
		fields["value"] = *input.Value
	}
	if len(fields) == 0 {
		return nil, domain.ErrInvalidInput
	}

	if err := s.taskRepo.UpdateFields(ctx, taskID, fields); err != nil {
		return nil, err
	}

	log.Printf("✅ Voucher task updated: %s", taskID)
	return s.GetByID(ctx, taskID)
}

// Delete removes a voucher task
func (s *VoucherService) Delete(ctx context.Context, taskID string) error {
	if _, err := s.GetByID(ctx, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	log.Printf("✅ Voucher task deleted: %s", taskID)
	return nil
}
