package handlers

import (
	"errors"
	"fmt"

	"h4g-voucherhub/internal/core/domain"
	"h4g-voucherhub/internal/core/services"
	"h4g-voucherhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles inventory and report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetInventory handles the live inventory view (Admin only)
// @Summary Get inventory
// @Description Get the current stock level of every product (Admin only)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /reports/inventory [get]
func (h *ReportHandler) GetInventory(c *fiber.Ctx) error {
	items, err := h.reportService.Inventory(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get inventory")
	}

	return response.Success(c, "Inventory retrieved successfully", fiber.Map{
		"inventory": items,
	})
}

// GenerateReport handles taking a report snapshot (Admin only)
// @Summary Generate report
// @Description Snapshot every product's stock and pending pre-orders (Admin only)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	report, err := h.reportService.Generate(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	return response.Created(c, "Report generated successfully", fiber.Map{
		"report": report,
	})
}

// GetLatestReport handles reading the newest snapshot (Admin only)
// @Summary Get latest report
// @Description Get the most recent report snapshot (Admin only)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/latest [get]
func (h *ReportHandler) GetLatestReport(c *fiber.Ctx) error {
	report, err := h.reportService.Latest(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "No reports have been generated yet")
		}
		return response.InternalServerError(c, "Failed to get report")
	}

	return response.Success(c, "Report retrieved successfully", fiber.Map{
		"report": report,
	})
}

// DownloadLatestReport handles downloading the newest snapshot as xlsx (Admin only)
// @Summary Download latest report
// @Description Download the most recent report snapshot as a spreadsheet (Admin only)
// @Tags Reports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/latest/download [get]
func (h *ReportHandler) DownloadLatestReport(c *fiber.Ctx) error {
	data, filename, err := h.reportService.ExportLatestXLSX(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "No reports have been generated yet")
		}
		return response.InternalServerError(c, "Failed to export report")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
