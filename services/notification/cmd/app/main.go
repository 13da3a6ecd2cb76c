package main

import (
	"hotel-ops/pkg/cache"
	"hotel-ops/pkg/config"
	"hotel-ops/pkg/database"
	"hotel-ops/pkg/logger"
	"hotel-ops/pkg/queue"
	notificationApp "hotel-ops/services/notification/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title                       Hotel Notification Service API
// @version                     1.0
// @description                 Fans out guest notifications to hotel rooms.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	var queueClient *queue.Client
	if cfg.PushEnabled {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v", err)
			panic(err)
		}
	} else {
		log.Warn("Push hand-off disabled, notifications reach rooms through the Redis feed only")
	}

	notificationApp.Run(cfg, log, db, redisClient, queueClient)
}
