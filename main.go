package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/di"
	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/middleware"
	"github.com/orderhub/backend/internal/service"
	"github.com/orderhub/backend/pkg/config"
	"github.com/orderhub/backend/pkg/database"
	"github.com/orderhub/backend/pkg/logger"
	pkgmiddleware "github.com/orderhub/backend/pkg/middleware"
	pkgredis "github.com/orderhub/backend/pkg/redis"
	"github.com/orderhub/backend/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Order Service...")

	ctx := context.Background()

	// Initialize tracing
	_, err = telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Telemetry init failed: %v", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   1 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection
	redisCfg := &pkgredis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		MaxRetries:    3,
		RetryInterval: 100 * time.Millisecond,
		DialTimeout:   5 * time.Second,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
	}
	redisClient, err := pkgredis.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Redis connection failed: %v", err))
	}
	defer redisClient.Close()
	appLog.Info("Redis connected")

	// Initialize Kafka event publisher
	var eventPublisher service.EventPublisher
	eventPublisher, err = service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
		Brokers:     cfg.Kafka.Brokers,
		Topic:       cfg.Kafka.Topic,
		ServiceName: cfg.App.Name,
		ClientID:    cfg.Kafka.ClientID,
	})
	if err != nil {
		appLog.Warn(fmt.Sprintf("Kafka connection failed, using no-op publisher: %v", err))
		eventPublisher = service.NewNoOpEventPublisher()
	} else {
		appLog.Info("Kafka event publisher connected")
	}
	defer eventPublisher.Close()

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:             db,
		Redis:          redisClient,
		EventPublisher: eventPublisher,
		JWTSecret:      cfg.JWT.Secret,
		TokenTTL:       cfg.JWT.TokenTTL,
	})

	router := setupRouter(cfg, container, redisClient)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Order Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, container *di.Container, redisClient *pkgredis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		gin.DisableConsoleColor()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Get()))
	router.Use(middleware.CORS())
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	codec := container.Codec

	// Target resolvers for ownership checks
	emailOwner := middleware.ResolveEmailOwner(func(ctx context.Context, email string) (int64, error) {
		user, err := container.UserService.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return 0, middleware.ErrTargetNotFound
			}
			return 0, err
		}
		return user.ID, nil
	})
	orderOwner := middleware.ResolveOrderOwner(func(ctx context.Context, orderID int64) (int64, error) {
		ownerID, err := container.OrderService.GetOwnerID(ctx, orderID)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				return 0, middleware.ErrTargetNotFound
			}
			return 0, err
		}
		return ownerID, nil
	})
	pathOwner := middleware.ResolvePathID("id")
	bodyOwner := middleware.ResolveBodyUserID()

	// Idempotency for order placement; keys are scoped per principal so
	// retries from different users never collide.
	idempotency := pkgmiddleware.Idempotency(&pkgmiddleware.IdempotencyConfig{
		Redis: redisClient.Client(),
		PrincipalExtractor: func(c *gin.Context) (string, bool) {
			p, ok := middleware.GetPrincipal(c)
			if !ok {
				return "", false
			}
			return strconv.FormatInt(p.ID, 10), true
		},
	})

	api := router.Group("/api")
	{
		users := api.Group("/user")
		{
			users.POST("", middleware.SelfRegistrationGate(codec), container.UserHandler.Register)
			users.POST("/login", container.UserHandler.Login)
			users.GET("/all", middleware.RequireAdmin(codec), container.UserHandler.GetAll)
			users.GET("/allCustomers", middleware.RequireAdmin(codec), container.UserHandler.GetCustomers)
			users.GET("/:email", middleware.RequireOwnerOrAdmin(codec, emailOwner), container.UserHandler.GetByEmail)
			users.PUT("/:id", middleware.RequireOwnerOrAdmin(codec, pathOwner), container.UserHandler.Update)
			users.DELETE("/:id", middleware.RequireOwnerOrAdmin(codec, pathOwner), container.UserHandler.Delete)
		}

		products := api.Group("/product")
		{
			products.POST("", middleware.RequireAdmin(codec), container.ProductHandler.Create)
			products.GET("", container.ProductHandler.List)
			products.GET("/:id", container.ProductHandler.GetByID)
			products.PUT("/:id", middleware.RequireAdmin(codec), container.ProductHandler.Update)
			products.DELETE("/:id", middleware.RequireAdmin(codec), container.ProductHandler.Delete)
		}

		orders := api.Group("/order")
		{
			orders.POST("", middleware.RequireOwnerOrAdmin(codec, bodyOwner), idempotency, container.OrderHandler.Create)
			orders.GET("", middleware.RequireAdmin(codec), container.OrderHandler.List)
			orders.GET("/:id", middleware.RequireOwnerOrAdmin(codec, orderOwner), container.OrderHandler.GetByID)
			orders.GET("/user/:id", middleware.RequireOwnerOrAdmin(codec, pathOwner), container.OrderHandler.ListByUser)
			orders.PATCH("/:id/status", middleware.RequireOwnerOrAdmin(codec, orderOwner), container.OrderHandler.UpdateStatus)
		}
	}

	return router
}
