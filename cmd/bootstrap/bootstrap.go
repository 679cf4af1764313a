package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/config"
	deliveryHttp "github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/http"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/http/handler"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/http/middleware"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/infrastructure/cache"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/infrastructure/database"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/infrastructure/storage"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/repository"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/usecase"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/jwt"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply schema migrations
	if err := database.RunMigrations(db, cfg.DB.MigrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize file storage
	fileStore, err := storage.NewCloudinaryStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	logrus.Info("File storage initialized successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, fileStore)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, fileStore storage.FileStore) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewUserProfileRepository()
	hospitalRepo := repository.NewHospitalRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	referralRepo := repository.NewReferralRepository()
	historyRepo := repository.NewStatusHistoryRepository()
	transitRepo := repository.NewTransitInfoRepository()
	documentRepo := repository.NewDocumentRepository()
	reportRepo := repository.NewReportRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, profileRepo, jwtService, redisClient)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, hospitalRepo)
	specialtyUsecase := usecase.NewSpecialtyUsecase(db, log, specialtyRepo)
	referralUsecase := usecase.NewReferralUsecase(db, log, referralRepo, historyRepo, transitRepo, userRepo, cfg.App.SystemActor)
	transitUsecase := usecase.NewTransitInfoUsecase(db, log, transitRepo, referralRepo)
	documentUsecase := usecase.NewDocumentUsecase(db, log, documentRepo, referralRepo, fileStore)
	reportUsecase := usecase.NewReportUsecase(db, log, reportRepo, referralRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	hospitalHandler := handler.NewHospitalHandler(hospitalUsecase, customValidator)
	specialtyHandler := handler.NewSpecialtyHandler(specialtyUsecase, customValidator)
	referralHandler := handler.NewReferralHandler(referralUsecase, customValidator)
	transitHandler := handler.NewTransitInfoHandler(transitUsecase, customValidator)
	documentHandler := handler.NewDocumentHandler(documentUsecase)
	reportHandler := handler.NewReportHandler(reportUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		hospitalHandler,
		specialtyHandler,
		referralHandler,
		transitHandler,
		documentHandler,
		reportHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
