package http

import (
	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/ports"
)

type RouterConfig struct {
	AuthService   ports.AuthService
	HealthHandler *handlers.HealthHandler
	TaskHandler   *handlers.TaskHandler
	AuthHandler   *handlers.AuthHandler

	// AuthLimiter throttles register and login per client IP. Nil disables it.
	AuthLimiter    *middleware.IPRateLimiter
	AllowedOrigins []string
	StaticDir      string
}

func RegisterRoutes(r *gin.Engine, cfg RouterConfig) {
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	}

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", cfg.HealthHandler.CheckHealth)
		api.GET("/health/report", cfg.HealthHandler.CheckHealthReport)

		auth := api.Group("/auth")
		auth.POST("/register", middleware.RateLimit(cfg.AuthLimiter), cfg.AuthHandler.Register)
		auth.POST("/login", middleware.RateLimit(cfg.AuthLimiter), cfg.AuthHandler.Login)
		auth.GET("/profile", middleware.Authenticate(cfg.AuthService), cfg.AuthHandler.Profile)

		tasks := api.Group("/tasks")
		tasks.Use(middleware.Authenticate(cfg.AuthService))
		tasks.GET("", cfg.TaskHandler.ListTasks)
		tasks.POST("", cfg.TaskHandler.CreateTask)
		tasks.GET("/:id", cfg.TaskHandler.GetTask)
		tasks.PUT("/:id", cfg.TaskHandler.UpdateTask)
		tasks.DELETE("/:id", cfg.TaskHandler.DeleteTask)
	}

	mountStatic(r, cfg.StaticDir)
}
