package services

import (
	"bytes"
	"context"
	"testing"

	"h4g-voucherhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestInventory(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(t, db)
	seedProduct(t, db, "Rice 5kg", 12.5, 10)
	seedProduct(t, db, "Blanket", 30, 0)

	items, err := svc.Inventory(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := map[string]int{}
	for _, item := range items {
		byName[item.Name] = item.Stock
	}
	assert.Equal(t, 10, byName["Rice 5kg"])
	assert.Equal(t, 0, byName["Blanket"])
}

func TestGenerateReport(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(t, db)
	preOrderSvc := newTestPreOrderService(t, db)
	seedResident(t, db, "alice", 0)
	rice := seedProduct(t, db, "Rice 5kg", 12.5, 10)
	blanket := seedProduct(t, db, "Blanket", 30, 0)

	_, err := preOrderSvc.Create(context.Background(), &CreatePreOrderInput{
		UserID: "alice", ProductID: blanket.ProductID, Quantity: 3,
	})
	require.NoError(t, err)

	report, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, report.ReportData, 2)

	for _, entry := range report.ReportData {
		switch entry.ProductID {
		case rice.ProductID:
			assert.Equal(t, 10, entry.Stock)
			assert.Equal(t, 0, entry.TotalPreordered)
			assert.Empty(t, entry.PreOrders)
		case blanket.ProductID:
			assert.Equal(t, 0, entry.Stock)
			assert.Equal(t, 3, entry.TotalPreordered)
			require.Len(t, entry.PreOrders, 1)
			assert.Equal(t, "alice", entry.PreOrders[0].UserID)
		default:
			t.Fatalf("unexpected product in report: %s", entry.ProductID)
		}
	}

	// Latest returns the snapshot that was just taken
	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.ReportID, latest.ReportID)
}

func TestLatestWithoutReports(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(t, db)

	_, err := svc.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportLatestXLSX(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(t, db)
	seedProduct(t, db, "Rice 5kg", 12.5, 10)

	_, err := svc.Generate(context.Background())
	require.NoError(t, err)

	data, filename, err := svc.ExportLatestXLSX(context.Background())
	require.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")

	// The export must be a readable workbook with the product row present
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory Report")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Product Name", rows[0][1])
	assert.Equal(t, "Rice 5kg", rows[1][1])
}
