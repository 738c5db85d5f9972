package handlers

import (
	"errors"

	"h4g-voucherhub/internal/core/domain"
	"h4g-voucherhub/internal/core/services"
	"h4g-voucherhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VoucherHandler handles voucher task endpoints
type VoucherHandler struct {
	voucherService *services.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService *services.VoucherService) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
	}
}

// CreateVoucherTaskRequest represents create task request body
type CreateVoucherTaskRequest struct {
	TaskName string `json:"taskName"`
	Value    int    `json:"value"`
}

// CreateVoucherTask handles posting a task (Admin only)
// @Summary Create voucher task
// @Description Post a voucher task residents can claim and complete for balance (Admin only)
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateVoucherTaskRequest true "Task data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /vouchers [post]
func (h *VoucherHandler) CreateVoucherTask(c *fiber.Ctx) error {
	var req CreateVoucherTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.voucherService.Create(c.Context(), &services.CreateVoucherTaskInput{
		TaskName: req.TaskName,
		Value:    req.Value,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Task name is required and value must be positive")
		}
		return response.InternalServerError(c, "Failed to create voucher task")
	}

	return response.Created(c, "Voucher task created successfully", fiber.Map{
		"task": task,
	})
}

// ListVoucherTasks handles listing all tasks
// @Summary List voucher tasks
// @Description Get all voucher tasks. Filter with status=open or status=claimed.
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter: open or claimed"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /vouchers [get]
func (h *VoucherHandler) ListVoucherTasks(c *fiber.Ctx) error {
	var (
		tasks interface{}
		err   error
	)

	switch c.Query("status") {
	case "open":
		tasks, err = h.voucherService.ListOpen(c.Context())
	case "claimed":
		tasks, err = h.voucherService.ListClaimed(c.Context())
	case "":
		tasks, err = h.voucherService.List(c.Context())
	default:
		return response.BadRequest(c, "Invalid status filter; use open or claimed")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list voucher tasks")
	}

	return response.Success(c, "Voucher tasks retrieved successfully", fiber.Map{
		"tasks": tasks,
	})
}

// GetVoucherTask handles getting a task by id
// @Summary Get voucher task
// @Description Get a voucher task by id
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher task ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) GetVoucherTask(c *fiber.Ctx) error {
	task, err := h.voucherService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return response.NotFound(c, "Voucher task not found")
		}
		return response.InternalServerError(c, "Failed to get voucher task")
	}

	return response.Success(c, "Voucher task retrieved successfully", fiber.Map{
		"task": task,
	})
}

// ListUserVoucherTasks handles listing a resident's claimed tasks
// @Summary List resident voucher tasks
// @Description Get the voucher tasks a resident has claimed
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /vouchers/user/{userId} [get]
func (h *VoucherHandler) ListUserVoucherTasks(c *fiber.Ctx) error {
	tasks, err := h.voucherService.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list voucher tasks")
	}

	return response.Success(c, "Voucher tasks retrieved successfully", fiber.Map{
		"tasks": tasks,
	})
}

// ClaimVoucherTaskRequest represents claim request body
type ClaimVoucherTaskRequest struct {
	UserID string `json:"userId"`
}

// ClaimVoucherTask handles claiming an open task
// @Summary Claim voucher task
// @Description Bind an open task to a resident
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher task ID"
// @Param body body ClaimVoucherTaskRequest true "Claiming resident"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /vouchers/{id}/claim [post]
func (h *VoucherHandler) ClaimVoucherTask(c *fiber.Ctx) error {
	var req ClaimVoucherTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.UserID == "" {
		return response.BadRequest(c, "User ID is required")
	}

	task, err := h.voucherService.Claim(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			return response.NotFound(c, "Voucher task not found")
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrTaskAlreadyClaimed):
			return response.Conflict(c, "Task has already been claimed")
		default:
			return response.InternalServerError(c, "Failed to claim task")
		}
	}

	return response.Success(c, "Task claimed successfully", fiber.Map{
		"task": task,
	})
}

// UnclaimVoucherTask handles releasing a claimed task
// @Summary Unclaim voucher task
// @Description Release a claimed task back to the open pool
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher task ID"
// @Param body body ClaimVoucherTaskRequest false "Releasing resident"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /vouchers/{id}/unclaim [post]
func (h *VoucherHandler) UnclaimVoucherTask(c *fiber.Ctx) error {
	var req ClaimVoucherTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.voucherService.Unclaim(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			return response.NotFound(c, "Voucher task not found")
		case errors.Is(err, domain.ErrTaskNotClaimed):
			return response.Conflict(c, "Task is not claimed")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Task is claimed by another resident")
		default:
			return response.InternalServerError(c, "Failed to unclaim task")
		}
	}

	return response.Success(c, "Task unclaimed successfully", fiber.Map{
		"task": task,
	})
}

// ApproveVoucherTask handles approving a completed task (Admin only)
// @Summary Approve voucher task
// @Description Mark a claimed task completed and credit its value to the resident's balance (Admin only)
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher task ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /vouchers/{id}/approve [post]
func (h *VoucherHandler) ApproveVoucherTask(c *fiber.Ctx) error {
	result, err := h.voucherService.Approve(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			return response.NotFound(c, "Voucher task not found")
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrTaskAlreadyApproved):
			return response.Conflict(c, "Task has already been approved")
		case errors.Is(err, domain.ErrTaskNotClaimed):
			return response.Conflict(c, "Task has not been claimed")
		default:
			return response.InternalServerError(c, "Failed to approve task")
		}
	}

	return response.Success(c, "Task approved successfully", result)
}

// UnapproveVoucherTask handles reverting an approval (Admin only)
// @Summary Unapprove voucher task
// @Description Revert an approval and debit the credited value back out of the resident's balance (Admin only)
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher task ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /vouchers/{id}/unapprove [post]
func (h *VoucherHandler) UnapproveVoucherTask(c *fiber.Ctx) error {
	result, err := h.voucherService.Unapprove(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			return response.NotFound(c, "Voucher task not found")
		case errors.Is(err, domain.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, domain.ErrTaskNotApproved):
			return response.Conflict(c, "Task has not been approved")
		case errors.Is(err, domain.ErrInsufficientBalance):
			return response.Conflict(c, "Resident balance is below the task value")
		default:
			return response.InternalServerError(c, "Failed to unapprove task")
		}
	}

	return response.Success(c, "Task unapproved successfully", result)
}

// RejectVoucherTask handles rejecting a task (Admin only)
// @Summary Reject voucher task
// @Description Reset a task to the open state regardless of its lifecycle position (Admin only)
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher task ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /vouchers/{id}/reject [post]
func (h *VoucherHandler) RejectVoucherTask(c *fiber.Ctx) error {
	task, err := h.voucherService.Reject(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return response.NotFound(c, "Voucher task not found")
		}
		return response.InternalServerError(c, "Failed to reject task")
	}

	return response.Success(c, "Task rejected successfully", fiber.Map{
		"task": task,
	})
}

// UpdateVoucherTaskRequest represents update task request body
type UpdateVoucherTaskRequest struct {
	TaskName *string `json:"taskName"`
	Value    *int    `json:"value"`
}

// UpdateVoucherTask handles editing a task (Admin only)
// @Summary Update voucher task
// @Description Edit a task's name or value (Admin only)
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher task ID"
// @Param body body UpdateVoucherTaskRequest true "Update data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /vouchers/{id} [put]
func (h *VoucherHandler) UpdateVoucherTask(c *fiber.Ctx) error {
	var req UpdateVoucherTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.voucherService.Update(c.Context(), c.Params("id"), &services.UpdateVoucherTaskInput{
		TaskName: req.TaskName,
		Value:    req.Value,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			return response.NotFound(c, "Voucher task not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "No valid fields to update")
		default:
			return response.InternalServerError(c, "Failed to update task")
		}
	}

	return response.Success(c, "Task updated successfully", fiber.Map{
		"task": task,
	})
}

// DeleteVoucherTask handles removing a task (Admin only)
// @Summary Delete voucher task
// @Description Remove a voucher task (Admin only)
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher task ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /vouchers/{id} [delete]
func (h *VoucherHandler) DeleteVoucherTask(c *fiber.Ctx) error {
	err := h.voucherService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return response.NotFound(c, "Voucher task not found")
		}
		return response.InternalServerError(c, "Failed to delete task")
	}

	return response.Success(c, "Task deleted successfully", nil)
}
