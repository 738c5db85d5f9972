package handlers

import (
	"errors"

	"h4g-voucherhub/internal/core/domain"
	"h4g-voucherhub/internal/core/services"
	"h4g-voucherhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PreOrderHandler handles pre-order queue endpoints
type PreOrderHandler struct {
	preOrderService *services.PreOrderService
}

// NewPreOrderHandler creates a new pre-order handler
func NewPreOrderHandler(preOrderService *services.PreOrderService) *PreOrderHandler {
	return &PreOrderHandler{
		preOrderService: preOrderService,
	}
}

// CreatePreOrderRequest represents pre-order request body
type CreatePreOrderRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreatePreOrder handles placing a pre-order
// @Summary Create pre-order
// @Description Queue a purchase request for an out-of-stock product; it is fulfilled oldest-first when stock arrives
// @Tags PreOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePreOrderRequest true "Pre-order data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /preorders [post]
func (h *PreOrderHandler) CreatePreOrder(c *fiber.Ctx) error {
	var req CreatePreOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	preOrder, err := h.preOrderService.Create(c.Context(), &services.CreatePreOrderInput{
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
		default:
			return response.InternalServerError(c, "Failed to create pre-order")
		}
	}

	return response.Created(c, "Pre-order created successfully", fiber.Map{
		"preOrder": preOrder,
	})
}

// ListPreOrders handles listing all pending pre-orders (Admin only)
// @Summary List pre-orders
// @Description Get all pending pre-orders (Admin only)
// @Tags PreOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /preorders [get]
func (h *PreOrderHandler) ListPreOrders(c *fiber.Ctx) error {
	preOrders, err := h.preOrderService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list pre-orders")
	}

	return response.Success(c, "Pre-orders retrieved successfully", fiber.Map{
		"preOrders": preOrders,
	})
}

// GetPreOrder handles getting a pre-order by id
// @Summary Get pre-order
// @Description Get a pre-order by id
// @Tags PreOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pre-order ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /preorders/{id} [get]
func (h *PreOrderHandler) GetPreOrder(c *fiber.Ctx) error {
	preOrder, err := h.preOrderService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPreOrderNotFound) {
			return response.NotFound(c, "Pre-order not found")
		}
		return response.InternalServerError(c, "Failed to get pre-order")
	}

	return response.Success(c, "Pre-order retrieved successfully", fiber.Map{
		"preOrder": preOrder,
	})
}

// ListUserPreOrders handles listing a resident's pre-orders
// @Summary List resident pre-orders
// @Description Get a resident's pending pre-orders
// @Tags PreOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /preorders/user/{userId} [get]
func (h *PreOrderHandler) ListUserPreOrders(c *fiber.Ctx) error {
	preOrders, err := h.preOrderService.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list pre-orders")
	}

	return response.Success(c, "Pre-orders retrieved successfully", fiber.Map{
		"preOrders": preOrders,
	})
}

// ListProductPreOrders handles listing a product's queue (Admin only)
// @Summary List product pre-orders
// @Description Get a product's pre-order queue, oldest first (Admin only)
// @Tags PreOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /preorders/product/{productId} [get]
func (h *PreOrderHandler) ListProductPreOrders(c *fiber.Ctx) error {
	preOrders, err := h.preOrderService.ListByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list pre-orders")
	}

	return response.Success(c, "Pre-orders retrieved successfully", fiber.Map{
		"preOrders": preOrders,
	})
}

// DeletePreOrder handles withdrawing a pre-order
// @Summary Delete pre-order
// @Description Withdraw a pending pre-order
// @Tags PreOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pre-order ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /preorders/{id} [delete]
func (h *PreOrderHandler) DeletePreOrder(c *fiber.Ctx) error {
	err := h.preOrderService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPreOrderNotFound) {
			return response.NotFound(c, "Pre-order not found")
		}
		return response.InternalServerError(c, "Failed to delete pre-order")
	}

	return response.Success(c, "Pre-order deleted successfully", nil)
}
