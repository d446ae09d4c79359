package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"sociogram/internal/config"
	"sociogram/internal/handlers"
	"sociogram/internal/middleware"
	"sociogram/internal/repository"
	"sociogram/internal/services"
	"sociogram/internal/utils"
	"sociogram/pkg/constants"
)

// Dependencies holds everything the routes need.
type Dependencies struct {
	Config   *config.Config
	Database *mongo.Database
	Redis    *redis.Client

	TargetRepo       repository.TargetRepository
	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository

	EngagementService   services.EngagementService
	NotificationService services.NotificationService

	EngagementHandler   *handlers.EngagementHandler
	TargetHandler       *handlers.TargetHandler
	NotificationHandler *handlers.NotificationHandler

	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupRoutes wires the full router.
func SetupRoutes(cfg *config.Config, database *mongo.Database, redisClient *redis.Client) *gin.Engine {
	deps := initializeDependencies(cfg, database, redisClient)

	router := gin.New()
	setupMiddleware(router)

	router.GET("/health", healthCheck(database, redisClient))

	api := router.Group("/api/" + constants.APIVersion)

	requireAuth := deps.AuthMiddleware.RequireAuth()
	optionalAuth := deps.AuthMiddleware.OptionalAuth()
	rateLimit := deps.RateLimiter.Limit()

	targets := api.Group("/:kind")
	{
		targets.POST("", requireAuth, deps.TargetHandler.CreateTarget)
		targets.GET("", requireAuth, deps.TargetHandler.GetOwnTargets)
		targets.GET("/:target_id", optionalAuth, deps.TargetHandler.GetTarget)
		targets.DELETE("/:target_id", requireAuth, deps.TargetHandler.DeleteTarget)

		targets.GET("/:target_id/likers", optionalAuth, deps.EngagementHandler.GetLikers)

		engagement := targets.Group("/:target_id", requireAuth, rateLimit)
		{
			engagement.POST("/like", deps.EngagementHandler.ToggleLike)
			engagement.POST("/react", deps.EngagementHandler.React)
			engagement.POST("/comments", deps.EngagementHandler.AddComment)
			engagement.DELETE("/comments/:comment_id", deps.EngagementHandler.DeleteComment)
			engagement.POST("/share", deps.EngagementHandler.Share)
			engagement.POST("/save", deps.EngagementHandler.ToggleSave)
			engagement.POST("/view", deps.EngagementHandler.AddView)
		}
	}

	notifications := api.Group("/notifications", requireAuth)
	{
		notifications.GET("", deps.NotificationHandler.GetNotifications)
		notifications.GET("/counts", deps.NotificationHandler.GetCounts)
		notifications.PUT("/read-all", deps.NotificationHandler.MarkAllAsRead)
		notifications.PUT("/:notification_id/read", deps.NotificationHandler.MarkAsRead)
		notifications.DELETE("/:notification_id", deps.NotificationHandler.DeleteNotification)
		notifications.DELETE("", deps.NotificationHandler.ClearAll)

		notifications.GET("/preferences", deps.NotificationHandler.GetPreferences)
		notifications.PUT("/preferences", deps.NotificationHandler.UpdatePreferences)
	}

	return router
}

func initializeDependencies(cfg *config.Config, database *mongo.Database, redisClient *redis.Client) *Dependencies {
	targetRepo := repository.NewTargetRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	userRepo := repository.NewUserRepository(database)

	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	engagementService := services.NewEngagementService(targetRepo, userRepo, notificationService, redisClient)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	return &Dependencies{
		Config:   cfg,
		Database: database,
		Redis:    redisClient,

		TargetRepo:       targetRepo,
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,

		EngagementService:   engagementService,
		NotificationService: notificationService,

		EngagementHandler:   handlers.NewEngagementHandler(engagementService),
		TargetHandler:       handlers.NewTargetHandler(engagementService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),

		AuthMiddleware: middleware.NewAuthMiddleware(jwtManager, userRepo),
		RateLimiter:    middleware.NewRateLimiter(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window),
	}
}

func setupMiddleware(router *gin.Engine) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

func healthCheck(database *mongo.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		status := http.StatusOK
		checks := gin.H{"mongo": "ok", "redis": "ok"}

		if err := database.Client().Ping(ctx, nil); err != nil {
			checks["mongo"] = "unreachable"
			status = http.StatusServiceUnavailable
		}

		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				checks["redis"] = "unreachable"
				status = http.StatusServiceUnavailable
			}
		} else {
			checks["redis"] = "disabled"
		}

		c.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": constants.AppVersion,
			"checks":  checks,
		})
	}
}
