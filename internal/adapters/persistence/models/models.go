package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles
const (
	RoleResident = "RESIDENT"
	RoleAdmin    = "ADMIN"
)

// Password reset request status
const (
	ResetStatusPending   = "PENDING"
	ResetStatusCompleted = "COMPLETED"
)

// ============================================================
// Products
// ============================================================

// Product represents the products table
type Product struct {
	ProductID   string    `gorm:"primaryKey;size:36" json:"productId"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	ImageURL    string    `gorm:"size:500" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// ============================================================
// Residents
// ============================================================

// TransactionRefs is the ordered list of transaction ids on a resident,
// stored as a JSON document field
type TransactionRefs []string

// PreOrderSummary is the embedded pre-order view on a resident document
type PreOrderSummary struct {
	PreOrderID  string    `json:"preOrderId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PreOrderSummaries is stored as a JSON document field
type PreOrderSummaries []PreOrderSummary

// Resident represents the residents table.
// UserID is either the resident's email or a generated 6-character code.
type Resident struct {
	UserID             string            `gorm:"primaryKey;size:100" json:"userId"`
	Name               string            `gorm:"size:100;not null;index" json:"name"`
	Email              string            `gorm:"size:100" json:"email,omitempty"`
	PasswordHash       string            `gorm:"size:255;not null" json:"-"`
	Role               string            `gorm:"size:20;default:'RESIDENT'" json:"role"`
	VoucherBalance     float64           `gorm:"type:decimal(12,2);not null;default:0" json:"voucherBalance"`
	TransactionHistory TransactionRefs   `gorm:"type:text;serializer:json" json:"transactionHistory"`
	PreOrderRequests   PreOrderSummaries `gorm:"type:text;serializer:json" json:"preOrderRequests"`
	ImageURL           string            `gorm:"size:500" json:"imageUrl,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Resident) TableName() string {
	return "residents"
}

// ResidentResponse DTO
type ResidentResponse struct {
	UserID             string            `json:"userId"`
	Name               string            `json:"name"`
	Email              string            `json:"email,omitempty"`
	Role               string            `json:"role"`
	VoucherBalance     float64           `json:"voucherBalance"`
	TransactionHistory TransactionRefs   `json:"transactionHistory"`
	PreOrderRequests   PreOrderSummaries `json:"preOrderRequests"`
	ImageURL           string            `json:"imageUrl,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}

func (r *Resident) ToResponse() *ResidentResponse {
	history := r.TransactionHistory
	if history == nil {
		history = TransactionRefs{}
	}
	preOrders := r.PreOrderRequests
	if preOrders == nil {
		preOrders = PreOrderSummaries{}
	}

	return &ResidentResponse{
		UserID:             r.UserID,
		Name:               r.Name,
		Email:              r.Email,
		Role:               r.Role,
		VoucherBalance:     r.VoucherBalance,
		TransactionHistory: history,
		PreOrderRequests:   preOrders,
		ImageURL:           r.ImageURL,
		CreatedAt:          r.CreatedAt,
	}
}

// ============================================================
// Transactions & Pre-orders
// ============================================================

// Transaction represents a completed purchase. Its existence implies the
// stock decrement and voucher debit have already been applied.
type Transaction struct {
	TransactionID string    `gorm:"primaryKey;size:36" json:"transactionId"`
	UserID        string    `gorm:"size:100;not null;index" json:"userId"`
	ProductID     string    `gorm:"size:36;not null;index" json:"productId"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// PreOrder represents a queued purchase request for an out-of-stock product
type PreOrder struct {
	PreOrderID  string    `gorm:"primaryKey;size:36" json:"preOrderId"`
	UserID      string    `gorm:"size:100;not null;index" json:"userId"`
	ProductID   string    `gorm:"size:36;not null;index" json:"productId"`
	ProductName string    `gorm:"size:100" json:"productName"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PreOrder) TableName() string {
	return "preorders"
}

// ============================================================
// Voucher Tasks
// ============================================================

// VoucherTask represents the voucher_tasks table.
// States: Open (user_id NULL, both flags false) → Claimed (user_id set,
// claim_status true) → Approved (distributed_status true).
type VoucherTask struct {
	VoucherTaskID     string    `gorm:"primaryKey;size:36" json:"voucherTaskId"`
	TaskName          string    `gorm:"size:200;not null" json:"taskName"`
	Value             int       `gorm:"not null" json:"value"`
	UserID            *string   `gorm:"size:100;index" json:"userId"`
	ClaimStatus       bool      `gorm:"not null;default:false" json:"claimStatus"`
	DistributedStatus bool      `gorm:"not null;default:false" json:"distributedStatus"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (VoucherTask) TableName() string {
	return "voucher_tasks"
}

func (t *VoucherTask) IsOpen() bool {
	return !t.ClaimStatus && t.UserID == nil
}

func (t *VoucherTask) IsApproved() bool {
	return t.DistributedStatus
}

// ============================================================
// Reports
// ============================================================

// ReportPreOrder is a pre-order line inside a report entry
type ReportPreOrder struct {
	PreOrderID string    `json:"preorderId"`
	UserID     string    `json:"userId"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReportEntry is one product row in a report snapshot
type ReportEntry struct {
	ProductID       string           `json:"productId"`
	ProductName     string           `json:"productName"`
	Stock           int              `json:"stock"`
	TotalPreordered int              `json:"totalPreordered"`
	PreOrders       []ReportPreOrder `json:"preorders"`
}

// ReportEntries is stored as a JSON document field
type ReportEntries []ReportEntry

// Report is an immutable inventory snapshot; the reports table is append-only
type Report struct {
	ReportID   string        `gorm:"primaryKey;size:36" json:"reportId"`
	ReportData ReportEntries `gorm:"type:text;serializer:json" json:"reportData"`
	CreatedAt  time.Time     `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (Report) TableName() string {
	return "reports"
}

// ============================================================
// Password resets
// ============================================================

// PasswordReset represents the password_resets table
type PasswordReset struct {
	RequestID string    `gorm:"primaryKey;size:36" json:"requestId"`
	UserID    string    `gorm:"size:100;not null;index" json:"userId"`
	Name      string    `gorm:"size:100" json:"name"`
	Status    string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Product{},
		&Resident{},
		&Transaction{},
		&PreOrder{},
		&VoucherTask{},
		&Report{},
		&PasswordReset{},
	)
}
