package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sociogram/internal/config"
	"sociogram/internal/routes"
	"sociogram/pkg/constants"
	"sociogram/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	os.Setenv("LOG_LEVEL", cfg.Log.Level)
	os.Setenv("LOG_FORMAT", cfg.Log.Format)
	logger.Init()

	gin.SetMode(cfg.Server.Mode)

	database, mongoClient, err := connectMongo(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	redisClient := connectRedis(cfg)

	router := routes.SetupRoutes(cfg, database, redisClient)

	server := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        router,
		ReadTimeout:    constants.ReadTimeout,
		WriteTimeout:   constants.WriteTimeout,
		IdleTimeout:    constants.IdleTimeout,
		MaxHeaderBytes: constants.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("%s listening on :%s", constants.AppName, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Errorf("MongoDB disconnect failed: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Redis close failed: %v", err)
		}
	}

	logger.Info("Server stopped")
}

func connectMongo(cfg *config.Config) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMaxPoolSize(constants.MaxPoolSize).
		SetMinPoolSize(constants.MinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	logger.Infof("Connected to MongoDB database %s", cfg.Mongo.Database)
	return client.Database(cfg.Mongo.Database), client, nil
}

func connectRedis(cfg *config.Config) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Warn("Redis disabled, caching and distributed rate limiting are off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Redis unreachable, continuing without it")
		return nil
	}

	logger.Infof("Connected to Redis at %s", cfg.Redis.Addr)
	return client
}
