package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-appointment-platform/config"
	deliveryHttp "doctor-appointment-platform/internal/delivery/http"
	"doctor-appointment-platform/internal/delivery/http/handler"
	"doctor-appointment-platform/internal/delivery/http/middleware"
	"doctor-appointment-platform/internal/infrastructure/broker"
	"doctor-appointment-platform/internal/infrastructure/cache"
	"doctor-appointment-platform/internal/infrastructure/database"
	"doctor-appointment-platform/internal/repository"
	"doctor-appointment-platform/internal/usecase"
	"doctor-appointment-platform/pkg/jwt"
	"doctor-appointment-platform/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the API process
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Location    *time.Location
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	SetupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Resolve the regional timezone used for availability and reminders
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.App.Timezone, err)
	}
	app.Location = loc

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, loc)
	app.Server = server

	return app, nil
}

// SetupLogger configures the logrus logger
func SetupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, loc *time.Location) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	reportRepo := repository.NewReportRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize broker publisher
	publisher := broker.NewRabbitMQHandler(cfg.Broker, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, publisher)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, userRepo, loc)
	reportUsecase := usecase.NewReportUsecase(db, log, appointmentRepo, userRepo, reportRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator, cfg.Upload.Dir)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	reportHandler := handler.NewReportHandler(reportUsecase)
	locationHandler := handler.NewLocationHandler()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, db, userRepo)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, userHandler, appointmentHandler, reportHandler, locationHandler, authMiddleware, corsMiddleware)
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
