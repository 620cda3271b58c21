package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"marketplace-backend/internal/config"
	infraCache "marketplace-backend/internal/infrastructure/cache"
	"marketplace-backend/internal/infrastructure/database"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/jwt"

	listingHandler "marketplace-backend/internal/domains/listing/handler"
	listingRepo "marketplace-backend/internal/domains/listing/repository"
	listingService "marketplace-backend/internal/domains/listing/service"
	reviewHandler "marketplace-backend/internal/domains/review/handler"
	reviewRepo "marketplace-backend/internal/domains/review/repository"
	reviewService "marketplace-backend/internal/domains/review/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the application.
// It is the root of the dependency graph.
type Container struct {
	// Infrastructure layer, shared across all domains
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repository layer
	ListingRepo listingRepo.ListingRepository
	ReviewRepo  reviewRepo.ReviewRepository

	// Service layer
	ListingService listingService.ServiceInterface
	ReviewService  reviewService.ServiceInterface

	// Handler layer
	ListingHandler *listingHandler.ListingHandler
	ReviewHandler  *reviewHandler.ReviewHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer creates and initializes the whole dependency graph.
// Initialization order matters: config, then infrastructure, then
// repositories, services and handlers on top.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// Step 1: Load configuration
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: Initialize database
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// Step 3: Initialize cache
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// Redis failure is not critical, the cache degrades to misses
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}

	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Step 4: Initialize repositories
	log.Println("📦 Initializing repositories...")

	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// Step 5: Initialize services
	log.Println("⚙️  Initializing services...")

	c.initServices()
	log.Println("✅ Services initialized")

	// Step 6: Initialize handlers
	log.Println("🎯 Initializing handlers...")

	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.ListingRepo = listingRepo.NewPostgresListingRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
}

func (c *Container) initServices() {
	c.ListingService = listingService.NewListingService(c.ListingRepo)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.ListingHandler = listingHandler.NewListingHandler(c.ListingService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases container resources during graceful shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}

	log.Println("✅ Container cleanup completed")
}
