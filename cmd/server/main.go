package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront.backend/internal/config"
	"storefront.backend/internal/infrastructure/recommendation"
	"storefront.backend/internal/infrastructure/repositories"
	"storefront.backend/internal/interfaces/http/handlers"
	"storefront.backend/internal/interfaces/http/middleware"
	"storefront.backend/internal/usecases"
	"storefront.backend/pkg/jwt"
	"storefront.backend/pkg/logger"
	"storefront.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	r := newRouter(cfg, db)

	logger.Info(ctx, "Storefront backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newRouter wires repositories, usecases and handlers onto a gin engine
func newRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	identityService := jwt.NewIdentityService(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.Auth.Audience)

	accountRepo := repositories.NewAccountRepository(db)
	appRepo := repositories.NewRetailerApplicationRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	uow := repositories.NewUnitOfWork(db)

	var recommender usecases.RecommendationClient
	if cfg.Recommendation.BaseURL != "" {
		recommender = recommendation.New(recommendation.Config{
			BaseURL: cfg.Recommendation.BaseURL,
			Timeout: cfg.Recommendation.Timeout,
		})
	}

	accountUsecase := usecases.NewAccountUsecase(accountRepo, cfg.Auth.AdminEmails)
	applicationUsecase := usecases.NewRetailerApplicationUsecase(accountRepo, appRepo, uow)
	adminUsecase := usecases.NewAdminUsecase(accountRepo, appRepo)
	productUsecase := usecases.NewProductUsecase(productRepo, recommender)
	cartUsecase := usecases.NewCartUsecase(accountRepo, productRepo)
	orderUsecase := usecases.NewOrderUsecase(accountRepo, productRepo, orderRepo, uow)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		accountHandler:  handlers.NewAccountHandler(accountUsecase),
		retailerHandler: handlers.NewRetailerHandler(applicationUsecase, productUsecase),
		adminHandler:    handlers.NewAdminHandler(applicationUsecase, adminUsecase),
		productHandler:  handlers.NewProductHandler(productUsecase),
		cartHandler:     handlers.NewCartHandler(cartUsecase),
		orderHandler:    handlers.NewOrderHandler(orderUsecase),
		authMiddleware:  middleware.AuthMiddleware(identityService, accountUsecase),
	})

	return r
}
