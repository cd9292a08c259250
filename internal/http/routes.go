package http

import (
	"time"

	"task_manager/internal/config"
	"task_manager/internal/http/handlers"
	"task_manager/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, version string, cfg *config.Config) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/")
	api.Use(middleware.Metrics())
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Public routes; session issuing gets the tighter auth window
	api.POST("/users", h.Register)
	api.POST("/sessions", middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow), h.CreateSession)

	// Everything below requires a bearer token
	// Per-user limiter for writes (not per IP)
	writeRL := middleware.UserRateLimit(cfg.WriteRateLimit, time.Duration(cfg.WriteRateWindow)*time.Second)

	authed := api.Group("/")
	authed.Use(middleware.JWT())
	{
		authed.GET("/tasks", h.ListTasks)
		authed.POST("/tasks", writeRL, h.CreateTask)
		authed.PUT("/tasks/:id", writeRL, h.UpdateTask)
		authed.DELETE("/tasks/:id", writeRL, h.DeleteTask)

		authed.GET("/tags", h.ListTags)
		authed.POST("/tags", writeRL, h.CreateTag)
		authed.PUT("/tags/:id", writeRL, h.UpdateTag)
		authed.DELETE("/tags/:id", writeRL, h.DeleteTag)
	}
}
