package handlers

import (
	"errors"
	"strings"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/core/domain"
	"h4g-voucherhub/internal/core/services"
	"h4g-voucherhub/internal/pkg/pagination"
	"h4g-voucherhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ResidentHandler handles resident account endpoints
type ResidentHandler struct {
	residentService *services.ResidentService
}

// NewResidentHandler creates a new resident handler
func NewResidentHandler(residentService *services.ResidentService) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
	}
}

// CreateResidentRequest represents create resident request body
type CreateResidentRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateResident handles registering a resident (Admin only)
// @Summary Create resident
// @Description Register a resident account. Without an email a 6-character login code is generated. (Admin only)
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateResidentRequest true "Resident data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /residents [post]
func (h *ResidentHandler) CreateResident(c *fiber.Ctx) error {
	var req CreateResidentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	resident, err := h.residentService.Create(c.Context(), &services.CreateResidentInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Name is required and password must be at least 8 characters")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "A resident with this user ID already exists")
		default:
			return response.InternalServerError(c, "Failed to create resident")
		}
	}

	return response.Created(c, "Resident created successfully", fiber.Map{
		"user": resident.ToResponse(),
	})
}

// ListResidents handles listing residents (Admin only)
// @Summary List residents
// @Description Get a paginated list of residents (Admin only)
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /residents [get]
func (h *ResidentHandler) ListResidents(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	residents, total, err := h.residentService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list residents")
	}

	users := make([]*models.ResidentResponse, 0, len(residents))
	for i := range residents {
		users = append(users, residents[i].ToResponse())
	}

	return response.Success(c, "Residents retrieved successfully",
		pagination.NewResponse(users, params, total))
}

// GetResident handles getting a resident by user id
// @Summary Get resident
// @Description Get a resident by user id
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id} [get]
func (h *ResidentHandler) GetResident(c *fiber.Ctx) error {
	resident, err := h.residentService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrResidentNotFound) {
			return response.NotFound(c, "Resident not found")
		}
		return response.InternalServerError(c, "Failed to get resident")
	}

	return response.Success(c, "Resident retrieved successfully", fiber.Map{
		"user": resident.ToResponse(),
	})
}

// LookupResident handles resolving a display name to a user id (Admin only)
// @Summary Lookup resident by name
// @Description Resolve a display name to a user id (Admin only)
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name query string true "Display name"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/lookup [get]
func (h *ResidentHandler) LookupResident(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return response.BadRequest(c, "Name is required")
	}

	resident, err := h.residentService.LookupByName(c.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrResidentNotFound) {
			return response.NotFound(c, "Resident not found")
		}
		return response.InternalServerError(c, "Failed to lookup resident")
	}

	return response.Success(c, "Resident found", fiber.Map{
		"userId": resident.UserID,
		"name":   resident.Name,
	})
}

// UpdateResidentRequest represents update resident request body
type UpdateResidentRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UpdateResident handles updating a resident's details (Admin only)
// @Summary Update resident
// @Description Update a resident's name or password (Admin only)
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body UpdateResidentRequest true "Update data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id} [put]
func (h *ResidentHandler) UpdateResident(c *fiber.Ctx) error {
	var req UpdateResidentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	resident, err := h.residentService.UpdateDetails(c.Context(), c.Params("id"), &services.UpdateResidentInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "No valid fields to update")
		default:
			return response.InternalServerError(c, "Failed to update resident")
		}
	}

	return response.Success(c, "Resident updated successfully", fiber.Map{
		"user": resident.ToResponse(),
	})
}

// SetBalanceRequest represents balance update request body
type SetBalanceRequest struct {
	VoucherBalance *float64 `json:"voucherBalance"`
}

// SetBalance handles setting a resident's voucher balance (Admin only)
// @Summary Set voucher balance
// @Description Set a resident's voucher balance to an absolute value (Admin only)
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body SetBalanceRequest true "Balance data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id}/balance [put]
func (h *ResidentHandler) SetBalance(c *fiber.Ctx) error {
	var req SetBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.VoucherBalance == nil {
		return response.BadRequest(c, "Voucher balance is required")
	}

	resident, err := h.residentService.SetVoucherBalance(c.Context(), c.Params("id"), *req.VoucherBalance)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Voucher balance must be non-negative")
		default:
			return response.InternalServerError(c, "Failed to set balance")
		}
	}

	return response.Success(c, "Balance updated successfully", fiber.Map{
		"user": resident.ToResponse(),
	})
}

// DeleteResident handles removing a resident (Admin only)
// @Summary Delete resident
// @Description Remove a resident account (Admin only)
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id} [delete]
func (h *ResidentHandler) DeleteResident(c *fiber.Ctx) error {
	err := h.residentService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrResidentNotFound) {
			return response.NotFound(c, "Resident not found")
		}
		return response.InternalServerError(c, "Failed to delete resident")
	}

	return response.Success(c, "Resident deleted successfully", nil)
}

// UploadResidentImage handles uploading a resident avatar
// @Summary Upload resident image
// @Description Upload a resident's avatar as multipart form data
// @Tags Residents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param image formData file true "Image file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id}/image [post]
func (h *ResidentHandler) UploadResidentImage(c *fiber.Ctx) error {
	data, contentType, err := readFormImage(c)
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}

	url, err := h.residentService.UploadImage(c.Context(), c.Params("id"), data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Image file is empty")
		default:
			return response.InternalServerError(c, "Failed to upload image")
		}
	}

	return response.Success(c, "Image uploaded successfully", fiber.Map{
		"imageUrl": url,
	})
}

// GetResidentImage handles issuing a signed avatar link
// @Summary Get resident image URL
// @Description Get a time-limited signed URL for a resident's avatar
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id}/image [get]
func (h *ResidentHandler) GetResidentImage(c *fiber.Ctx) error {
	url, err := h.residentService.GetImageURL(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrResidentNotFound) {
			return response.NotFound(c, "Resident not found")
		}
		return response.InternalServerError(c, "Failed to get image URL")
	}

	return response.Success(c, "Image URL retrieved successfully", fiber.Map{
		"imageUrl": url,
	})
}

// RequestPasswordResetRequest represents reset request body
type RequestPasswordResetRequest struct {
	UserID string `json:"userId"`
}

// RequestPasswordReset handles filing a password reset request
// @Summary Request password reset
// @Description File a password reset request for an admin to act on
// @Tags Residents
// @Accept json
// @Produce json
// @Param body body RequestPasswordResetRequest true "User ID"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/password-reset [post]
func (h *ResidentHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req RequestPasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return response.BadRequest(c, "User ID is required")
	}

	request, err := h.residentService.RequestPasswordReset(c.Context(), strings.TrimSpace(req.UserID))
	if err != nil {
		if errors.Is(err, domain.ErrResidentNotFound) {
			return response.NotFound(c, "Resident not found")
		}
		return response.InternalServerError(c, "Failed to request password reset")
	}

	return response.Created(c, "Password reset requested", fiber.Map{
		"request": request,
	})
}

// ListPasswordResets handles listing pending reset requests (Admin only)
// @Summary List password reset requests
// @Description Get pending password reset requests, oldest first (Admin only)
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /residents/password-reset [get]
func (h *ResidentHandler) ListPasswordResets(c *fiber.Ctx) error {
	requests, err := h.residentService.ListPasswordResets(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list password reset requests")
	}

	return response.Success(c, "Password reset requests retrieved successfully", fiber.Map{
		"requests": requests,
	})
}

// ResetPasswordRequest represents admin password reset body
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles completing a password reset (Admin only)
// @Summary Reset resident password
// @Description Set a resident's password and close their pending reset requests (Admin only)
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body ResetPasswordRequest true "New password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id}/password-reset [put]
func (h *ResidentHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err := h.residentService.ResetPassword(c.Context(), c.Params("id"), req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to reset password")
		}
	}

	return response.Success(c, "Password reset successfully", nil)
}
