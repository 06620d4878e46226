package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"change-ops-api/internal/cache"
	"change-ops-api/internal/client"
	"change-ops-api/internal/handler"
	"change-ops-api/internal/metrics"
	"change-ops-api/internal/middleware"
	"change-ops-api/internal/repository"
	"change-ops-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	JWTSecret  string
	BasePath   string
	AuthClient *client.AuthClient
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS("*"))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "change-ops-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "change-ops-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "change-ops-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "change-ops-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "change-ops-api"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	requestRepo := repository.NewRequestRepository(cfg.DB)
	projectRepo := repository.NewProjectRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	departmentRepo := repository.NewDepartmentRepository(cfg.DB)
	changeRepo := repository.NewChangeRepository(cfg.DB)
	activityRepo := repository.NewActivityRepository(cfg.DB)

	// Initialize services
	statsCache := cache.NewRedisStatsCache(cfg.Redis, cfg.Logger)
	requestService := service.NewRequestService(requestRepo, activityRepo, cfg.Metrics, cfg.Logger)
	projectService := service.NewProjectService(projectRepo, taskRepo, activityRepo, cfg.Metrics, cfg.Logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, departmentRepo, activityRepo, cfg.Metrics, cfg.Logger)
	departmentService := service.NewDepartmentService(departmentRepo, cfg.Logger)
	changeService := service.NewChangeService(changeRepo, activityRepo, cfg.Metrics, cfg.Logger)

	var statsService service.StatsService
	if statsCache != nil {
		statsService = service.NewStatsService(changeRepo, requestRepo, projectRepo, taskRepo, statsCache, cfg.Logger)
	} else {
		statsService = service.NewStatsService(changeRepo, requestRepo, projectRepo, taskRepo, nil, cfg.Logger)
	}

	// Initialize handlers
	requestHandler := handler.NewRequestHandler(requestService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	changeHandler := handler.NewChangeHandler(changeService)
	statsHandler := handler.NewStatsHandler(statsService)

	// API routes group
	api := r.Group(cfg.BasePath)

	validator := middleware.NewAuthServiceValidator(cfg.AuthClient, cfg.JWTSecret, cfg.Logger)
	authMiddleware := middleware.Auth(validator)

	// Project request routes
	requests := api.Group("/requests")
	requests.Use(authMiddleware)
	{
		requests.POST("", requestHandler.CreateRequest)
		requests.GET("", requestHandler.ListRequests)
		requests.GET("/:requestId", requestHandler.GetRequest)
		requests.POST("/:requestId/submit", requestHandler.Submit)
		requests.POST("/:requestId/review", requestHandler.BeginReview)
		requests.POST("/:requestId/approve", requestHandler.Approve)
		requests.POST("/:requestId/deny", requestHandler.Deny)
		requests.POST("/:requestId/cancel", requestHandler.Cancel)
		requests.POST("/:requestId/convert", requestHandler.Convert)
	}

	// Project routes
	projects := api.Group("/projects")
	projects.Use(authMiddleware)
	{
		projects.GET("", projectHandler.ListProjects)
		projects.GET("/:projectId", projectHandler.GetProject)
		projects.PUT("/:projectId", projectHandler.UpdateProject)
		projects.POST("/:projectId/activate", projectHandler.Activate)
		projects.POST("/:projectId/hold", projectHandler.Hold)
		projects.POST("/:projectId/resume", projectHandler.Resume)
		projects.POST("/:projectId/complete", projectHandler.Complete)
		projects.POST("/:projectId/cancel", projectHandler.Cancel)

		projects.POST("/:projectId/tasks", taskHandler.CreateTask)
		projects.POST("/:projectId/tasks/bulk", taskHandler.CreateTasks)
		projects.GET("/:projectId/tasks", taskHandler.ListProjectTasks)
	}

	// Task routes
	tasks := api.Group("/tasks")
	tasks.Use(authMiddleware)
	{
		tasks.GET("/:taskId", taskHandler.GetTask)
		tasks.POST("/:taskId/assign-department", taskHandler.AssignDepartment)
		tasks.POST("/:taskId/assign-user", taskHandler.AssignUser)
		tasks.POST("/:taskId/claim", taskHandler.Claim)
		tasks.POST("/:taskId/unassign", taskHandler.Unassign)
		tasks.POST("/:taskId/start", taskHandler.Start)
		tasks.POST("/:taskId/block", taskHandler.Block)
		tasks.POST("/:taskId/unblock", taskHandler.Unblock)
		tasks.POST("/:taskId/complete", taskHandler.Complete)
		tasks.POST("/:taskId/cancel", taskHandler.Cancel)
	}

	// Department routes
	departments := api.Group("/departments")
	departments.Use(authMiddleware)
	{
		departments.POST("", departmentHandler.CreateDepartment)
		departments.GET("", departmentHandler.ListDepartments)
		departments.GET("/:departmentId", departmentHandler.GetDepartment)
		departments.POST("/:departmentId/deactivate", departmentHandler.Deactivate)
	}

	// Change request routes
	changes := api.Group("/changes")
	changes.Use(authMiddleware)
	{
		changes.POST("", changeHandler.CreateChange)
		changes.GET("", changeHandler.ListChanges)
		changes.GET("/:changeId", changeHandler.GetChange)
		changes.POST("/:changeId/submit", changeHandler.Submit)
		changes.POST("/:changeId/review", changeHandler.BeginReview)
		changes.POST("/:changeId/approve", changeHandler.Approve)
		changes.POST("/:changeId/deny", changeHandler.Deny)
		changes.POST("/:changeId/cancel", changeHandler.Cancel)
		changes.POST("/:changeId/schedule", changeHandler.Schedule)
		changes.POST("/:changeId/execute", changeHandler.Execute)
		changes.POST("/:changeId/complete", changeHandler.Complete)
		changes.POST("/:changeId/fail", changeHandler.Fail)
		changes.POST("/:changeId/rollback", changeHandler.Rollback)
	}

	// Analytics routes
	analytics := api.Group("")
	analytics.Use(authMiddleware)
	{
		analytics.GET("/dashboard/stats", statsHandler.GetDashboardStats)
		analytics.GET("/analytics/monthly-trends", statsHandler.GetMonthlyTrends)
		analytics.GET("/analytics/success-rate", statsHandler.GetSuccessRate)
		analytics.GET("/analytics/top-systems", statsHandler.GetTopAffectedSystems)
	}

	return r
}

// StatsService builds the stats service wired the same way Setup does, for
// use by the cron refresh job
func StatsService(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) service.StatsService {
	statsCache := cache.NewRedisStatsCache(redisClient, logger)
	changeRepo := repository.NewChangeRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	if statsCache != nil {
		return service.NewStatsService(changeRepo, requestRepo, projectRepo, taskRepo, statsCache, logger)
	}
	return service.NewStatsService(changeRepo, requestRepo, projectRepo, taskRepo, nil, logger)
}
