package config

import (
	"log"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedBootstrapAdmin(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedBootstrapAdmin seeds the admin account from configuration.
// There is no built-in credential: without BOOTSTRAP_ADMIN_ID and
// BOOTSTRAP_ADMIN_PASSWORD no admin is created.
func (s *Seeder) seedBootstrapAdmin() error {
	if !s.cfg.HasBootstrapAdmin() {
		log.Println("⚠️ Skipping admin seed: BOOTSTRAP_ADMIN_ID / BOOTSTRAP_ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	s.db.Model(&models.Resident{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Resident{
		UserID:       s.cfg.Admin.UserID,
		Name:         "Administrator",
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.UserID)
	return nil
}
