package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/cache"
	"github.com/Mathvic456/real-estate-management/internal/config"
	"github.com/Mathvic456/real-estate-management/internal/events"
	"github.com/Mathvic456/real-estate-management/internal/handlers"
	"github.com/Mathvic456/real-estate-management/internal/health"
	"github.com/Mathvic456/real-estate-management/internal/middleware"
	"github.com/Mathvic456/real-estate-management/internal/models"
	"github.com/Mathvic456/real-estate-management/internal/repository"
	"github.com/Mathvic456/real-estate-management/internal/services"
	"github.com/Mathvic456/real-estate-management/internal/workers"
)

func main() {
	// Container health check mode
	if len(os.Args) > 1 && os.Args[1] == "health" {
		resp, err := http.Get("http://localhost:8080/livez")
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.NewConfig()
	gin.SetMode(cfg.Server.Mode)

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Run database migrations
	if err := runMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize NATS events publisher (non-blocking)
	go func() {
		if err := events.InitPublisher(logger); err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
		}
	}()

	// Initialize Redis client (graceful degradation if unavailable)
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Printf("WARNING: Failed to parse Redis URL: %v (session caching degraded)", err)
		} else {
			redisClient = redis.NewClient(opt)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("WARNING: Failed to connect to Redis: %v (session caching degraded)", err)
				redisClient = nil
			} else {
				log.Println("✓ Redis connection established")
			}
		}
	}

	// Initialize dependencies
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	passwordService := services.NewPasswordService()
	jwtService := services.NewJWTService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiryHours,
		cfg.JWT.RefreshExpiryDays,
	)
	sessionCache := cache.NewSessionCache(redisClient)
	emailProvider := services.NewEmailProvider(cfg.Email)
	if emailProvider == nil {
		log.Println("No email provider configured, notifications will be recorded without delivery")
	}

	authService := services.NewAuthService(userRepo, passwordService, jwtService, sessionCache, logger)
	propertyService := services.NewPropertyService(propertyRepo, logger)
	paymentService := services.NewPaymentService(paymentRepo, propertyRepo, logger)
	notificationService := services.NewNotificationService(notificationRepo, propertyRepo, emailProvider, logger)

	// Seed the demo login
	if err := services.SeedDemoAccount(context.Background(), userRepo, passwordService, logger); err != nil {
		log.Printf("WARNING: Failed to seed demo account: %v", err)
	}

	authHandler := handlers.NewAuthHandler(authService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	healthChecker := health.NewHealthChecker(db, cfg.App.Version)

	// Start the overdue payment sweeper
	sweeper := workers.NewOverdueSweeper(propertyService, cfg.Worker, logger)
	if err := sweeper.Start(); err != nil {
		log.Printf("WARNING: Failed to start overdue sweeper: %v", err)
	}

	router := setupRouter(authHandler, propertyHandler, paymentHandler, notificationHandler, authMiddleware, healthChecker, cfg)

	// Mark service as ready
	healthChecker.SetReady(true)

	serverAddr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("🚀 Rental Service starting on %s", serverAddr)
	log.Printf("🏥 Health endpoints: /health, /livez, /readyz")
	log.Printf("📊 Metrics available at http://%s/metrics", serverAddr)

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		sweeper.Stop()
		if pub := events.GetPublisher(); pub != nil {
			pub.Close()
		}
		os.Exit(0)
	}()

	if err := router.Run(serverAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// initializeDatabase establishes database connection
func initializeDatabase(dbConfig config.DatabaseConfig) (*gorm.DB, error) {
	dsn := dbConfig.DSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established successfully")
	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Property{},
		&models.Payment{},
		&models.Notification{},
	); err != nil {
		log.Printf("⚠️  AutoMigrate warning: %v", err)
		// Don't fail - the table may already exist with slightly different schema
	}

	log.Println("✅ Database migrations completed successfully")
	return nil
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(
	authHandler *handlers.AuthHandler,
	propertyHandler *handlers.PropertyHandler,
	paymentHandler *handlers.PaymentHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	healthChecker *health.HealthChecker,
	cfg *config.Config,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.SetupCORS(cfg.Server.AllowedOrigins))
	router.Use(health.MetricsMiddleware())

	// Health and observability endpoints (no auth required)
	router.GET("/health", healthChecker.HealthHandler)
	router.GET("/livez", healthChecker.LivezHandler)
	router.GET("/readyz", healthChecker.ReadyzHandler)
	router.GET("/metrics", health.MetricsHandler())

	v1 := router.Group("/api/v1")

	// Public auth endpoints
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// Authenticated endpoints
	authed := v1.Group("")
	authed.Use(authMiddleware.AuthRequired())
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)

		properties := authed.Group("/properties")
		{
			properties.POST("", propertyHandler.Create)
			properties.GET("", propertyHandler.List)
			properties.GET("/metrics", propertyHandler.Metrics)
			properties.GET("/:id", propertyHandler.Get)
			properties.PUT("/:id", propertyHandler.Update)
			properties.DELETE("/:id", propertyHandler.Delete)
		}

		payments := authed.Group("/payments")
		{
			payments.POST("", paymentHandler.Record)
			payments.GET("", paymentHandler.List)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.POST("", notificationHandler.Send)
			notifications.GET("", notificationHandler.List)
		}
	}

	return router
}
