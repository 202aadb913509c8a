package api

import (
	"net/http"

	"stargazer/exercise-tracker/internal/config"
	"stargazer/exercise-tracker/internal/metrics"
	"stargazer/exercise-tracker/internal/repository"
	"stargazer/exercise-tracker/internal/service"
	"stargazer/exercise-tracker/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers middleware and every route on router.
// assets is nil when /public is served from serverCfg.PublicDir.
func SetupRoutes(
	router *gin.Engine,
	serverCfg config.ServerConfig,
	store repository.Store,
	userService service.UserService,
	exerciseService service.ExerciseService,
	assets storage.FileStorage,
) {
	userHandler := NewUserHandler(userService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	healthHandler := NewHealthHandler(store)
	staticHandler := NewStaticHandler(serverCfg.ViewsDir, assets)

	router.Use(
		RequestIDMiddleware(),
		metrics.GinMiddleware(),
		cors.New(corsConfig(serverCfg.CORSOrigins)),
		ErrorResponder(),
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/healthz", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Static content ---
	router.GET("/", staticHandler.Index)
	if assets != nil {
		router.GET("/public/*filepath", staticHandler.PublicAsset)
	} else {
		router.Static("/public", serverCfg.PublicDir)
	}

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/hello", healthHandler.Hello)

		exerciseGroup := apiGroup.Group("/exercise")
		{
			exerciseGroup.POST("/new-user", userHandler.CreateUser)
			exerciseGroup.GET("/users", userHandler.ListUsers)
			exerciseGroup.POST("/add", exerciseHandler.AddExercise)
			exerciseGroup.GET("/log", exerciseHandler.GetLog)
		}
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
