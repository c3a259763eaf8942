package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stackfolio/core/internal/config"
	"github.com/stackfolio/core/internal/database"
	"github.com/stackfolio/core/internal/middleware"
	jwtpkg "github.com/stackfolio/core/internal/pkg/jwt"
	pkgredis "github.com/stackfolio/core/internal/pkg/redis"
	"github.com/stackfolio/core/internal/store"
	"github.com/stackfolio/core/internal/store/memstore"
	"github.com/stackfolio/core/internal/store/mongostore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	st     *store.Store
	mc     *mongo.Client
	rc     *pkgredis.Client
	logger *zap.Logger
}

// New initializes the application and wires all routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	jwtpkg.SetSecret(cfg.JWTSecret)

	var (
		st *store.Store
		mc *mongo.Client
	)
	if cfg.Database.URI != "" {
		client, db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		mc = client
		st = mongostore.New(db)
	} else {
		if !cfg.IsDev() {
			return nil, errors.New("database.uri is required outside development")
		}
		logger.Warn("no database.uri configured, using in-memory store (data is not persisted)")
		st = memstore.New()
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		var err error
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(newCORS(cfg))

	app := &App{cfg: cfg, router: router, st: st, mc: mc, rc: rc, logger: logger}
	app.registerRoutes()
	return app, nil
}

func newCORS(cfg *config.AppConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	return cors.New(corsConfig)
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases external connections.
func (a *App) Shutdown() {
	if a.rc != nil {
		if err := a.rc.Close(); err != nil {
			a.logger.Warn("redis close", zap.Error(err))
		}
	}
	if a.mc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mc.Disconnect(ctx); err != nil {
			a.logger.Warn("mongodb disconnect", zap.Error(err))
		}
	}
}
