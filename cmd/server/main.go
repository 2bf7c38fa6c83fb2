package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/userdash/internal/api"
	"github.com/wuwenbin0122/userdash/internal/auth"
	"github.com/wuwenbin0122/userdash/internal/db"
	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("config: failed to load: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: failed to build: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	opts := []db.StoreOption{db.WithStoreLogger(logger)}

	if cfg.Redis.Addr != "" {
		client, err := db.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("redis: failed to connect", zap.Error(err))
		}
		cache := db.NewCache(client, cfg.Redis.CacheTTL)
		defer cache.Close()
		opts = append(opts, db.WithCache(cache))
	}

	if cfg.Postgres.Enabled() {
		postgres, err := db.NewPostgres(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatal("postgres: failed to connect", zap.Error(err))
		}
		defer postgres.Close()

		if err := postgres.Ping(ctx); err != nil {
			logger.Fatal("postgres: ping failed", zap.Error(err))
		}
		if err := postgres.EnsureSchema(ctx); err != nil {
			logger.Fatal("postgres: ensure schema", zap.Error(err))
		}
		opts = append(opts, db.WithSource("postgres", postgres))
	}

	if cfg.Mongo.URI != "" {
		mongoStore, err := db.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			logger.Fatal("mongo: failed to connect", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				logger.Warn("mongo: close error", zap.Error(err))
			}
		}()

		if err := mongoStore.EnsureCollections(ctx); err != nil {
			logger.Fatal("mongo: ensure collections", zap.Error(err))
		}
		opts = append(opts, db.WithSource("mongo", mongoStore))
	}

	if !cfg.Postgres.Enabled() && cfg.Mongo.URI == "" {
		logger.Warn("no database configured, serving built-in sample users")
		opts = append(opts, db.WithFixtures(models.SampleUsers()))
	}

	var authService *auth.Service
	if cfg.JWTSecret != "" {
		authService, err = auth.NewService(cfg.JWTSecret, cfg.AdminKey, cfg.TokenTTL)
		if err != nil {
			logger.Fatal("failed to initialise auth service", zap.Error(err))
		}
	}

	router := setupRouter(authService, db.NewUserStore(opts...), logger)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}

func setupRouter(authService *auth.Service, store api.UserStore, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.NewHandler(authService, store, logger).RegisterRoutes(router)

	return router
}
