package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// weeklyReportSchedule runs Monday 08:30 server time
const weeklyReportSchedule = "30 8 * * 1"

// CronService owns the background scheduler. Currently it only drives the
// weekly inventory report snapshot.
type CronService struct {
	cron          *cron.Cron
	reportService *ReportService
}

// NewCronService creates a new cron service
func NewCronService(reportService *ReportService) *CronService {
	return &CronService{
		cron:          cron.New(),
		reportService: reportService,
	}
}

// Start registers the scheduled jobs and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(weeklyReportSchedule, func() {
		if _, err := s.reportService.Generate(context.Background()); err != nil {
			log.Printf("🛑 Weekly report generation failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron scheduler started [weekly inventory report]")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron scheduler stopped")
}
