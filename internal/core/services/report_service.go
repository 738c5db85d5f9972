package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/adapters/persistence/repositories"
	"h4g-voucherhub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportService produces inventory views and weekly report snapshots.
// Snapshots are append-only; Latest always reads the newest one.
type ReportService struct {
	productRepo  repositories.ProductRepository
	preOrderRepo repositories.PreOrderRepository
	reportRepo   repositories.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(
	productRepo repositories.ProductRepository,
	preOrderRepo repositories.PreOrderRepository,
	reportRepo repositories.ReportRepository,
) *ReportService {
	return &ReportService{
		productRepo:  productRepo,
		preOrderRepo: preOrderRepo,
		reportRepo:   reportRepo,
	}
}

// InventoryItem is the live stock view of one product
type InventoryItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

// Inventory returns the current stock level of every product
func (s *ReportService) Inventory(ctx context.Context) ([]InventoryItem, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]InventoryItem, 0, len(products))
	for _, product := range products {
		items = append(items, InventoryItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Stock:     product.Stock,
		})
	}
	return items, nil
}

// Generate takes a snapshot of every product's stock and pending
// pre-orders and appends it to the reports table.
func (s *ReportService) Generate(ctx context.Context) (*models.Report, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	preOrders, err := s.preOrderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string][]models.ReportPreOrder, len(products))
	for _, preOrder := range preOrders {
		byProduct[preOrder.ProductID] = append(byProduct[preOrder.ProductID], models.ReportPreOrder{
			PreOrderID: preOrder.PreOrderID,
			UserID:     preOrder.UserID,
			Quantity:   preOrder.Quantity,
			CreatedAt:  preOrder.CreatedAt,
		})
	}

	entries := make(models.ReportEntries, 0, len(products))
	for _, product := range products {
		lines := byProduct[product.ProductID]
		total := 0
		for _, line := range lines {
			total += line.Quantity
		}
		if lines == nil {
			lines = []models.ReportPreOrder{}
		}
		entries = append(entries, models.ReportEntry{
			ProductID:       product.ProductID,
			ProductName:     product.Name,
			Stock:           product.Stock,
			TotalPreordered: total,
			PreOrders:       lines,
		})
	}

	report := &models.Report{
		ReportID:   uuid.New().String(),
		ReportData: entries,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("✅ Report generated: %s (%d products)", report.ReportID, len(entries))
	return report, nil
}

// Latest returns the most recent report snapshot
func (s *ReportService) Latest(ctx context.Context) (*models.Report, error) {
	report, err := s.reportRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

// reportSheetName is the single worksheet of exported reports
const reportSheetName = "Inventory Report"

// ExportLatestXLSX renders the latest snapshot as a spreadsheet.
// Layout: one row per product with a semicolon-joined pre-order column.
func (s *ReportService) ExportLatestXLSX(ctx context.Context) ([]byte, string, error) {
	report, err := s.Latest(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheetName); err != nil {
		return nil, "", err
	}

	header := []interface{}{"Product ID", "Product Name", "Stock", "Total Pre-ordered", "Pending Pre-orders"}
	if err := f.SetSheetRow(reportSheetName, "A1", &header); err != nil {
		return nil, "", err
	}

	for i, entry := range report.ReportData {
		lines := make([]string, 0, len(entry.PreOrders))
		for _, line := range entry.PreOrders {
			lines = append(lines, fmt.Sprintf("%s x%d (%s)", line.UserID, line.Quantity, line.CreatedAt.Format("2006-01-02")))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		row := []interface{}{
			entry.ProductID,
			entry.ProductName,
			entry.Stock,
			entry.TotalPreordered,
			strings.Join(lines, "; "),
		}
		if err := f.SetSheetRow(reportSheetName, cell, &row); err != nil {
			return nil, "", err
		}
	}

	if err := f.SetColWidth(reportSheetName, "A", "B", 38); err != nil {
		return nil, "", err
	}
	if err := f.SetColWidth(reportSheetName, "E", "E", 60); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("inventory-report-%s.xlsx", report.CreatedAt.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
