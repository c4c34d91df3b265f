package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/config"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"github.com/tmaina/autoshop-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Unique index violations come back as gorm.ErrDuplicatedKey; the
		// invoice number guard depends on this.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenant entities
		&entity.Tenant{},
		&entity.Employee{},

		// Reference data
		&entity.CatalogItem{},
		&entity.Discount{},
		&entity.CommissionRate{},

		// Settlement entities
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.ManualSale{},
		&entity.LoyaltyAccount{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds a demo tenant with employees, commission rates,
// discounts and a small catalog so the dashboard is usable out of the box.
func SeedDefaultData(db *gorm.DB, defaultPIN string) error {
	log.Println("Seeding default data...")

	tenantName := "Main Street Garage"
	tenantSlug := utils.Slugify(tenantName)

	var tenant entity.Tenant
	if err := db.Where("slug = ?", tenantSlug).First(&tenant).Error; err != nil {
		tenant = entity.Tenant{
			ID:       uuid.New(),
			Name:     tenantName,
			Slug:     tenantSlug,
			Settings: entity.DefaultTenantSettings(),
		}
		if err := db.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to seed tenant: %w", err)
		}
	}

	rates := map[enum.EmployeeRole]float64{
		enum.RoleMechanic:   0.10,
		enum.RoleAdvisor:    0.05,
		enum.RoleDetailer:   0.08,
		enum.RoleApprentice: 0.03,
	}
	for role, rate := range rates {
		var existing entity.CommissionRate
		if err := db.Where("tenant_id = ? AND role = ?", tenant.ID, role).First(&existing).Error; err != nil {
			row := entity.CommissionRate{TenantID: tenant.ID, Role: role, Rate: rate}
			if err := db.Create(&row).Error; err != nil {
				log.Printf("Warning: failed to seed commission rate for %s: %v", role, err)
			}
		}
	}

	employees := []entity.Employee{
		{FirstName: "Grace", LastName: "Otieno", Email: "grace@mainstreetgarage.test", Role: enum.RoleManager},
		{FirstName: "Sam", LastName: "Kariuki", Email: "sam@mainstreetgarage.test", Role: enum.RoleMechanic},
		{FirstName: "Lena", LastName: "Mbeki", Email: "lena@mainstreetgarage.test", Role: enum.RoleAdvisor},
	}
	for i := range employees {
		var existing entity.Employee
		if err := db.Where("email = ?", employees[i].Email).First(&existing).Error; err == nil {
			continue
		}
		if defaultPIN != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(defaultPIN), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash seed PIN: %v", err)
			} else {
				employees[i].PINHash = string(hash)
			}
		}
		employees[i].TenantID = tenant.ID
		employees[i].Active = true
		if err := db.Create(&employees[i]).Error; err != nil {
			log.Printf("Warning: failed to seed employee %s: %v", employees[i].Email, err)
		}
	}

	discounts := []entity.Discount{
		{Name: "Returning customer", Percentage: 0.10},
		{Name: "Fleet account", Percentage: 0.15},
	}
	for i := range discounts {
		var existing entity.Discount
		if err := db.Where("tenant_id = ? AND name = ?", tenant.ID, discounts[i].Name).First(&existing).Error; err == nil {
			continue
		}
		discounts[i].TenantID = tenant.ID
		discounts[i].Active = true
		if err := db.Create(&discounts[i]).Error; err != nil {
			log.Printf("Warning: failed to seed discount %s: %v", discounts[i].Name, err)
		}
	}

	profit := func(cents int64) *int64 { return &cents }
	items := []entity.CatalogItem{
		{Name: "Oil change", UnitPrice: 4500, ProfitPerUnit: profit(2000)},
		{Name: "Tyre rotation", UnitPrice: 2500, ProfitPerUnit: profit(1500)},
		{Name: "Brake pads (front)", UnitPrice: 12000, ProfitPerUnit: profit(4000), FlatOverride: profit(500)},
	}
	for i := range items {
		var existing entity.CatalogItem
		if err := db.Where("tenant_id = ? AND name = ?", tenant.ID, items[i].Name).First(&existing).Error; err == nil {
			continue
		}
		items[i].TenantID = tenant.ID
		items[i].Active = true
		if err := db.Create(&items[i]).Error; err != nil {
			log.Printf("Warning: failed to seed catalog item %s: %v", items[i].Name, err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
