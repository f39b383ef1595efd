package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront.backend/internal/config"
	"storefront.backend/internal/infrastructure/models"
)

var openMigrateDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

type migrateDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	openDB  func(dsn string) (*gorm.DB, error)
	out     io.Writer
}

func defaultMigrateDeps() migrateDeps {
	return migrateDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		openDB:  openMigrateDB,
		out:     os.Stdout,
	}
}

// schemaModels are migrated in dependency order
func schemaModels() []interface{} {
	return []interface{}{
		&models.Account{},
		&models.RetailerApplication{},
		&models.Product{},
		&models.Order{},
	}
}

func runMigrate(deps migrateDeps) error {
	def := defaultMigrateDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.openDB == nil {
		deps.openDB = def.openDB
	}
	if deps.out == nil {
		deps.out = def.out
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	db, err := deps.openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to init sql db: %w", err)
	}
	defer sqlDB.Close()

	for _, model := range schemaModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
		_, _ = fmt.Fprintf(deps.out, "migrated %T\n", model)
	}
	return nil
}

func main() {
	if err := runMigrate(defaultMigrateDeps()); err != nil {
		log.Fatal(err)
	}
}
