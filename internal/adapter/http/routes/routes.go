package routes

import (
	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/core/telemetry"
	. "todoapi/pkg/config"
	"todoapi/pkg/middlewares"
)

type HandlersConfig struct {
	TodoHandler       *handler.TodoHandler
	TodoStatusHandler *handler.TodoStatusHandler
	HealthHandler     *handler.HealthHandler
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *AppLogger, config *AppConfig) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.CurrentMiddleware())
	middlewares.SetupGinMiddlewareWithConfig(router, metrics, logger, config)
	router.Use(gin.Recovery())

	setupRoutes(router, handlers)

	return router
}

// SetupRouterForTests registers the routes behind the request id and CORS
// middleware only.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(middleware.CurrentMiddleware())
	router.Use(gin.Recovery())
	router.Use(middlewares.CORSMiddleware([]string{"*"}))

	setupRoutes(router, handlers)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.HealthHandler != nil {
		router.GET("/health", handlers.HealthHandler.Health)
	}

	if handlers.TodoHandler != nil {
		todos := router.Group("/todos")
		{
			todos.GET("", handlers.TodoHandler.Index)
			todos.POST("", handlers.TodoHandler.Store)
			todos.GET("/:id", handlers.TodoHandler.Show)
			todos.PUT("/:id", handlers.TodoHandler.Update)
			todos.PATCH("/:id", handlers.TodoHandler.Update)
			todos.DELETE("/:id", handlers.TodoHandler.Destroy)
		}
	}

	if handlers.TodoStatusHandler != nil {
		statuses := router.Group("/todostatus")
		{
			statuses.GET("", handlers.TodoStatusHandler.Index)
			statuses.POST("", handlers.TodoStatusHandler.Store)
			statuses.GET("/:id", handlers.TodoStatusHandler.Show)
			statuses.PUT("/:id", handlers.TodoStatusHandler.Update)
			statuses.PATCH("/:id", handlers.TodoStatusHandler.Update)
			statuses.DELETE("/:id", handlers.TodoStatusHandler.Destroy)
		}
	}
}
