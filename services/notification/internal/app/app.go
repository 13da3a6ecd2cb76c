package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-ops/pkg/config"
	"hotel-ops/pkg/jwt"
	"hotel-ops/pkg/logger"
	"hotel-ops/pkg/middleware"
	"hotel-ops/pkg/queue"
	notificationHTTP "hotel-ops/services/notification/internal/controller/http"
	"hotel-ops/services/notification/internal/repo/feed"
	"hotel-ops/services/notification/internal/repo/persistent"
	"hotel-ops/services/notification/internal/repo/push"
	"hotel-ops/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "hotel-ops/services/notification/docs" // Swagger docs
)

// Run wires the notification service and blocks until SIGINT or SIGTERM.
// queueClient may be nil when push hand-off is disabled.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize Repositories
	roomDirectory := persistent.NewRoomDirectory(db)
	notificationRepo := persistent.NewNotificationRepository(db)
	roomFeed := feed.NewRoomFeed(redisClient, cfg.FeedLength, cfg.FeedTTL)

	// Delivery channels run after notifications are stored
	deliverers := []usecase.Deliverer{roomFeed}
	var queueInspector usecase.QueueInspector
	if queueClient != nil {
		deliverers = append(deliverers, push.NewQueuePusher(queueClient))
		queueInspector = queueClient
	}
	deliverer := usecase.NewMultiDeliverer(log, deliverers...)

	// Initialize UseCases
	resolver := usecase.NewTargetResolver(roomDirectory)
	writer := usecase.NewNotificationWriter(roomDirectory, notificationRepo)
	fanoutUseCase := usecase.NewFanoutUseCase(resolver, writer, deliverer, log)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, roomDirectory, writer, deliverer, roomFeed, queueInspector, log)

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(fanoutUseCase, notificationUseCase, roomFeed, log, jwtService)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// WebSocket endpoint - handles authentication internally via query parameter
	api.GET("/rooms/:room_id/notifications/ws", notificationHandler.HandleRoomWebSocket)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))

	// Room devices read their own feed
	rooms := protected.Group("/rooms/:room_id")
	rooms.Use(middleware.RequireRole(jwt.RoleAdmin, jwt.RoleStaff, jwt.RoleRoom))
	{
		rooms.GET("/notifications", notificationHandler.GetRoomNotifications)
		rooms.GET("/notifications/recent", notificationHandler.GetRecentRoomNotifications)
	}

	staff := protected.Group("/notifications")
	staff.Use(middleware.RequireRole(jwt.RoleAdmin, jwt.RoleStaff))
	{
		staff.POST("/send",
			middleware.RateLimitMiddleware(redisClient, cfg.FanoutRateLimit, cfg.FanoutRateWindow),
			notificationHandler.SendNotification,
		)
		staff.POST("", notificationHandler.CreateNotification)
		staff.GET("", notificationHandler.GetNotifications)
		staff.GET("/:id", notificationHandler.GetNotification)
		staff.PATCH("/:id/read", notificationHandler.MarkRead)
		staff.DELETE("/:id", notificationHandler.DeleteNotification)
	}

	admin := protected.Group("/notifications")
	admin.Use(middleware.RequireRole(jwt.RoleAdmin))
	{
		admin.GET("/queue", notificationHandler.GetQueueStatus)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server before closing its backends
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("Notification service exited")
}
