package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"employee-management-service/internal/domain/services"
	"employee-management-service/internal/infrastructure/config"
	"employee-management-service/pkg/logger"
)

// ServiceContainer manages dependency injection for all services
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// token storage backend
	tokenStore services.InterfaceTokenStore

	// base services
	jwtService services.InterfaceJWTService

	// business services
	adminService    services.InterfaceAdminService
	employeeService services.InterfaceEmployeeService
	fileService     services.InterfaceFileService

	mu sync.RWMutex
}

// NewServiceContainer creates a new service container
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}

	if cfg == nil {
		panic("configuration is nil")
	}

	// test the Redis connection and fall back to memory when it is down
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warning("Redis connection test failed: %v, falling back to in-memory token store", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices initializes all services
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// token store backend
	if c.redis != nil {
		c.tokenStore = services.NewRedisTokenStore(c.redis)
	} else {
		c.tokenStore = services.NewMemoryTokenStore()
	}

	// base services
	c.jwtService = services.NewJWTService(c.config, c.db, c.tokenStore)

	// business services
	c.adminService = services.NewAdminService(c.db, c.config)
	c.employeeService = services.NewEmployeeService(c.db, c.config)
	c.fileService = services.NewFileService(c.config)
}

// GetService returns the service registered under the given name
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "token_store":
		return c.tokenStore
	case "jwt":
		return c.jwtService
	case "admin":
		return c.adminService
	case "employee":
		return c.employeeService
	case "file":
		return c.fileService
	default:
		return nil
	}
}

// GetDB returns the database connection
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
