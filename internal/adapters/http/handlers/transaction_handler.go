package handlers

import (
	"errors"

	"h4g-voucherhub/internal/core/domain"
	"h4g-voucherhub/internal/core/services"
	"h4g-voucherhub/internal/pkg/pagination"
	"h4g-voucherhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles purchase endpoints
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// PurchaseRequest represents purchase request body
type PurchaseRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Purchase handles buying a product with voucher balance
// @Summary Purchase product
// @Description Buy a product; debits voucher balance and decrements stock atomically. An out-of-stock product returns 409 so the client can offer a pre-order instead.
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PurchaseRequest true "Purchase data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /transactions [post]
func (h *TransactionHandler) Purchase(c *fiber.Ctx) error {
	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.transactionService.Purchase(c.Context(), &services.PurchaseInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Quantity must be a positive integer")
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrOutOfStock):
			return response.Conflict(c, "Product is out of stock; a pre-order can be placed instead")
		case errors.Is(err, domain.ErrInsufficientStock):
			return response.Conflict(c, "Not enough stock for the requested quantity")
		case errors.Is(err, domain.ErrInsufficientBalance):
			return response.Conflict(c, "Insufficient voucher balance")
		default:
			return response.InternalServerError(c, "Failed to complete purchase")
		}
	}

	return response.Created(c, "Purchase completed successfully", result)
}

// ListTransactions handles listing all transactions (Admin only)
// @Summary List transactions
// @Description Get a paginated list of all transactions, newest first (Admin only)
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	transactions, total, err := h.transactionService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully",
		pagination.NewResponse(transactions, params, total))
}

// GetTransaction handles getting a transaction by id
// @Summary Get transaction
// @Description Get a transaction by id
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	transaction, err := h.transactionService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return response.NotFound(c, "Transaction not found")
		}
		return response.InternalServerError(c, "Failed to get transaction")
	}

	return response.Success(c, "Transaction retrieved successfully", fiber.Map{
		"transaction": transaction,
	})
}

// ListUserTransactions handles listing a resident's transactions
// @Summary List resident transactions
// @Description Get a resident's transaction history, newest first
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /transactions/user/{userId} [get]
func (h *TransactionHandler) ListUserTransactions(c *fiber.Ctx) error {
	transactions, err := h.transactionService.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": transactions,
	})
}

// UpdateQuantityRequest represents quantity update request body
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles changing a purchase quantity
// @Summary Update purchase quantity
// @Description Change the quantity on an existing purchase; stock and balance adjust by the difference
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param body body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.transactionService.UpdateQuantity(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Quantity must be a positive integer")
		case errors.Is(err, domain.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrInsufficientStock):
			return response.Conflict(c, "Not enough stock for the requested quantity")
		case errors.Is(err, domain.ErrInsufficientBalance):
			return response.Conflict(c, "Insufficient voucher balance")
		default:
			return response.InternalServerError(c, "Failed to update quantity")
		}
	}

	return response.Success(c, "Quantity updated successfully", result)
}

// CancelTransaction handles reversing a purchase
// @Summary Cancel purchase
// @Description Reverse a purchase; restores stock and refunds the voucher balance
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) CancelTransaction(c *fiber.Ctx) error {
	err := h.transactionService.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		default:
			return response.InternalServerError(c, "Failed to cancel purchase")
		}
	}

	return response.Success(c, "Purchase cancelled successfully", nil)
}
