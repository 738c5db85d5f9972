package repositories

import (
	"context"

	"h4g-voucherhub/internal/adapters/persistence/models"
)

// ProductRepository defines product ledger storage
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, productID string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	UpdateFields(ctx context.Context, productID string, fields map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

// ResidentRepository defines resident ledger storage
type ResidentRepository interface {
	Create(ctx context.Context, resident *models.Resident) error
	GetByID(ctx context.Context, userID string) (*models.Resident, error)
	List(ctx context.Context, offset, limit int) ([]models.Resident, int64, error)
	FindByName(ctx context.Context, name string) (*models.Resident, error)
	Update(ctx context.Context, resident *models.Resident) error
	UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	ExistsByID(ctx context.Context, userID string) (bool, error)
}

// TransactionRepository defines transaction record storage
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, transactionID string) (*models.Transaction, error)
	List(ctx context.Context, offset, limit int) ([]models.Transaction, int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	Delete(ctx context.Context, transactionID string) error
}

// PreOrderRepository defines pre-order queue storage
type PreOrderRepository interface {
	Create(ctx context.Context, preOrder *models.PreOrder) error
	GetByID(ctx context.Context, preOrderID string) (*models.PreOrder, error)
	List(ctx context.Context) ([]models.PreOrder, error)
	ListByUser(ctx context.Context, userID string) ([]models.PreOrder, error)
	ListByProductFIFO(ctx context.Context, productID string) ([]models.PreOrder, error)
	Delete(ctx context.Context, preOrderID string) error
}

// VoucherTaskRepository defines voucher task storage
type VoucherTaskRepository interface {
	Create(ctx context.Context, task *models.VoucherTask) error
	GetByID(ctx context.Context, taskID string) (*models.VoucherTask, error)
	List(ctx context.Context) ([]models.VoucherTask, error)
	ListByClaimStatus(ctx context.Context, claimed bool) ([]models.VoucherTask, error)
	ListByUser(ctx context.Context, userID string) ([]models.VoucherTask, error)
	UpdateFields(ctx context.Context, taskID string, fields map[string]interface{}) error
	Delete(ctx context.Context, taskID string) error
}

// ReportRepository defines report snapshot storage (append-only)
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetLatest(ctx context.Context) (*models.Report, error)
}

// PasswordResetRepository defines password reset request storage
type PasswordResetRepository interface {
	Create(ctx context.Context, request *models.PasswordReset) error
	GetByID(ctx context.Context, requestID string) (*models.PasswordReset, error)
	ListPending(ctx context.Context) ([]models.PasswordReset, error)
	UpdateStatus(ctx context.Context, requestID, status string) error
}
