package main

import (
	"context"
	"fmt"
	"os"

	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/logger"
	"backoffice/internal/server"
	"backoffice/internal/services"
	"backoffice/internal/storage"
)

// @title           Back Office API
// @version         1.0
// @description     Back-office API for managing clients, collaborators and the financial documents of the firm.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if appConfig.AutoMigrate {
		if err := dbManager.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	store, err := newFileStore(context.Background(), appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	router := server.NewRouter(server.Deps{
		DB:          dbManager.DB(),
		Files:       services.Files{Store: store, URLTTL: appConfig.FileURLTTL},
		JWTSecret:   appConfig.JWTSecret,
		JWTIssuer:   appConfig.JWTIssuer,
		CORSOrigins: appConfig.CORSAllowedOrigins,
	})

	log.Infof("Starting back office server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// newFileStore selects the document storage backend.
func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	switch cfg.StorageDriver {
	case "memory":
		logger.Get().Warn("Using in-memory file storage; uploads are lost on restart")
		return storage.NewMemoryStore("http://localhost:" + cfg.Port + "/files"), nil
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q (use s3 or memory)", cfg.StorageDriver)
	}
}
