package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "employee-management-service/docs"
	"employee-management-service/internal/app/controllers"
	"employee-management-service/internal/app/middleware"
	"employee-management-service/internal/domain/services"
	"employee-management-service/internal/domain/services/container"
	"employee-management-service/internal/infrastructure/config"
	"employee-management-service/internal/infrastructure/database"
)

// SetupRouter initializes and returns the configured router
func SetupRouter(pool *database.ConnectionPool, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	db := pool.GetDB()

	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.GetRedisAddr(),
			DB:   cfg.RedisDB,
		})
	}

	// service container
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// authentication middleware shares the container's token store
	middleware.InitAuthMiddleware(cfg, db, serviceContainer.GetService("token_store").(services.InterfaceTokenStore))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// browser client
	r.StaticFile("/", "./web/static/index.html")
	r.Static("/static", "./web/static")

	registerRoutes(r, serviceContainer, pool)
	return r
}

// registerRoutes configures all API routes
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
	pool *database.ConnectionPool,
) {
	api := r.Group("/api")
	registerPublicRoutes(api, container, pool)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes registers routes that need no access token
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	pool *database.ConnectionPool,
) {
	// IP rate limiting for unauthenticated traffic only, 10 requests per
	// second with a burst of 20; authenticated routes carry their own bucket
	public := api.Group("/")
	public.Use(middleware.IPRateLimiter(10, 20))

	// health check routes
	health := controllers.NewHealthCheckController(pool)
	public.GET("/ping", health.Ping)
	public.GET("/health", health.Status)

	// authentication routes; login gets a strict per-IP bucket
	public.POST("/auth/login", middleware.LoginRateLimiter(), controllers.HandleAuthFunc(container, "login"))
	public.POST("/auth/refresh", controllers.HandleAuthFunc(container, "refresh"))

	// profile pictures are readable without a token so the client can
	// embed them in image tags
	public.GET("/employees/:id/profile-picture", controllers.HandleUploadFunc(container, "getProfilePicture"))
}

// registerAuthenticatedRoutes registers routes behind the access token check
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// general rate limiting, 30 requests per second with a burst of 50
	auth.Use(middleware.IPRateLimiter(30, 50))

	// session routes
	auth.POST("/auth/logout", controllers.HandleAuthFunc(container, "logout"))
	auth.GET("/auth/profile", controllers.HandleAuthFunc(container, "profile"))

	// employee routes
	employeeGroup := auth.Group("/employees")
	employeeGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleEmployeeFunc(container, "getEmployees"))
	employeeGroup.GET("/stats", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleEmployeeFunc(container, "getStats"))
	employeeGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleEmployeeFunc(container, "getEmployee"))
	employeeGroup.POST("", controllers.HandleEmployeeFunc(container, "createEmployee"))
	employeeGroup.PUT("/:id", controllers.HandleEmployeeFunc(container, "updateEmployee"))
	employeeGroup.DELETE("/:id", controllers.HandleEmployeeFunc(container, "deleteEmployee"))
	employeeGroup.POST("/:id/restore", controllers.HandleEmployeeFunc(container, "restoreEmployee"))
	employeeGroup.POST("/:id/upload-profile", controllers.HandleUploadFunc(container, "uploadProfilePicture"))
}
