package repositories

import (
	"context"

	"h4g-voucherhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reportRepository implements ReportRepository
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create appends a report snapshot; snapshots are never updated
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// GetLatest gets the most recent report snapshot
func (r *reportRepository) GetLatest(ctx context.Context) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}
