package di

import (
	"time"

	"github.com/orderhub/backend/internal/auth"
	"github.com/orderhub/backend/internal/handler"
	"github.com/orderhub/backend/internal/repository"
	"github.com/orderhub/backend/internal/service"
	"github.com/orderhub/backend/pkg/database"
	"github.com/orderhub/backend/pkg/redis"
)

// Container holds all dependencies for the order service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client
	Codec *auth.Codec

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository

	// Publishers
	EventPublisher service.EventPublisher

	// Services
	UserService    service.UserService
	ProductService service.ProductService
	OrderService   service.OrderService

	// Handlers
	HealthHandler  *handler.HealthHandler
	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	EventPublisher service.EventPublisher
	JWTSecret      string
	TokenTTL       time.Duration
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		EventPublisher: cfg.EventPublisher,
	}

	c.Codec = auth.NewCodec(cfg.JWTSecret)

	// Initialize repositories
	c.UserRepo = repository.NewPostgresUserRepository(cfg.DB.Pool())
	c.ProductRepo = repository.NewPostgresProductRepository(cfg.DB.Pool())
	c.OrderRepo = repository.NewPostgresOrderRepository(cfg.DB.Pool())

	// Initialize services
	c.UserService = service.NewUserService(c.UserRepo, c.Codec, cfg.TokenTTL)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.UserRepo, c.EventPublisher)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.UserHandler = handler.NewUserHandler(c.UserService)
	c.ProductHandler = handler.NewProductHandler(c.ProductService)
	c.OrderHandler = handler.NewOrderHandler(c.OrderService)

	return c
}
