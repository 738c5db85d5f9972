package services

import (
	"testing"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedResident(t *testing.T, db *gorm.DB, userID string, balance float64) *models.Resident {
	t.Helper()

	resident := &models.Resident{
		UserID:         userID,
		Name:           "Resident " + userID,
		PasswordHash:   "x",
		Role:           models.RoleResident,
		VoucherBalance: balance,
	}
	require.NoError(t, db.Create(resident).Error)
	return resident
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ProductID: uuid.New().String(),
		Name:      name,
		Price:     price,
		Stock:     stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func getResident(t *testing.T, db *gorm.DB, userID string) *models.Resident {
	t.Helper()

	var resident models.Resident
	require.NoError(t, db.Where("user_id = ?", userID).First(&resident).Error)
	return &resident
}

func getProduct(t *testing.T, db *gorm.DB, productID string) *models.Product {
	t.Helper()

	var product models.Product
	require.NoError(t, db.Where("product_id = ?", productID).First(&product).Error)
	return &product
}

func newTestTransactionService(t *testing.T) (*TransactionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewTransactionService(db, repositories.NewTransactionRepository(db)), db
}

func newTestProductService(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewProductService(db, repositories.NewProductRepository(db), nil), db
}

func newTestPreOrderService(t *testing.T, db *gorm.DB) *PreOrderService {
	t.Helper()
	return NewPreOrderService(
		repositories.NewPreOrderRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewResidentRepository(db),
	)
}

func newTestVoucherService(t *testing.T) (*VoucherService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewVoucherService(db, repositories.NewVoucherTaskRepository(db), repositories.NewResidentRepository(db)), db
}

func newTestResidentService(t *testing.T, startingBalance float64) (*ResidentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewResidentService(
		repositories.NewResidentRepository(db),
		repositories.NewPasswordResetRepository(db),
		nil,
		startingBalance,
	), db
}

func newTestReportService(t *testing.T, db *gorm.DB) *ReportService {
	t.Helper()
	return NewReportService(
		repositories.NewProductRepository(db),
		repositories.NewPreOrderRepository(db),
		repositories.NewReportRepository(db),
	)
}
