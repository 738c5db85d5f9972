package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Ledger errors
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrResidentNotFound    = errors.New("resident not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrPreOrderNotFound    = errors.New("pre-order not found")
	ErrTaskNotFound        = errors.New("voucher task not found")

	ErrOutOfStock          = errors.New("product is out of stock")
	ErrInsufficientStock   = errors.New("insufficient stock available")
	ErrInsufficientBalance = errors.New("insufficient voucher balance")
)

// Voucher task state errors
var (
	ErrTaskAlreadyClaimed  = errors.New("task already claimed")
	ErrTaskNotClaimed      = errors.New("task not claimed")
	ErrTaskAlreadyApproved = errors.New("task already approved")
	ErrTaskNotApproved     = errors.New("task not approved")
)
