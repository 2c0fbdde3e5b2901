package http

import (
	"taskmanager/internal/config"
	"taskmanager/internal/http/handlers"
	"taskmanager/internal/http/middleware"
	"taskmanager/internal/repository"
	"taskmanager/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, cfg *config.Config, version string) {
	repo := repository.NewTaskRepository(pool)
	hub := ws.NewHub()
	h := handlers.NewHandler(repo, hub)
	healthHandler := handlers.NewHealthHandler(pool, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rl := middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow)

	// Server-rendered pages
	r.GET("/", h.Index)
	r.POST("/tasks", rl, h.CreateTaskForm)
	r.POST("/tasks/:id/delete", rl, h.DeleteTaskForm)

	// JSON API
	v1 := r.Group("/api/v1")
	v1.Use(rl)
	{
		v1.GET("/tasks", h.ListTasks)
		v1.POST("/tasks", h.CreateTask)
		v1.DELETE("/tasks/:id", h.DeleteTask)
	}

	// Change notifications: open pages re-render when another session
	// adds or deletes a task.
	r.GET("/ws", h.WS)
}
