package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medichain-service/config"
	deliveryHttp "medichain-service/internal/delivery/http"
	"medichain-service/internal/delivery/http/handler"
	"medichain-service/internal/delivery/http/middleware"
	"medichain-service/internal/infrastructure/cache"
	"medichain-service/internal/infrastructure/database"
	"medichain-service/internal/repository"
	"medichain-service/internal/service"
	"medichain-service/internal/usecase"
	"medichain-service/pkg/jwt"
	"medichain-service/pkg/validator"

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

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	server := initializeServer(cfg, db, redisClient)
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
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	ledgerClient := service.NewLedgerClient(cfg.Ledger, log)

	// Repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	consultationRepo := repository.NewConsultationRepository()
	nftRepo := repository.NewNFTMetadataRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(db, log, auditRepo)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, profileRepo, auditService, jwtService, redisClient)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, cfg.Consult, consultationRepo, profileRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, profileRepo)
	ledgerUsecase := usecase.NewLedgerUsecase(db, log, ledgerClient, consultationRepo, nftRepo, auditService)
	seedUsecase := usecase.NewSeedUsecase(db, log, userRepo, profileRepo, auditService)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, doctorUsecase, customValidator)
	ledgerHandler := handler.NewLedgerHandler(ledgerUsecase, customValidator)
	seedHandler := handler.NewSeedHandler(seedUsecase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)

	// Router
	router := deliveryHttp.NewRouter(authHandler, consultationHandler, ledgerHandler, seedHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
