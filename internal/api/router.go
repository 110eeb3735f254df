package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voxlab/voxstack/internal/config"
	"github.com/voxlab/voxstack/internal/docker"
	"github.com/voxlab/voxstack/internal/handlers"
	"github.com/voxlab/voxstack/internal/middleware"
	"github.com/voxlab/voxstack/internal/stack"
)

func NewRouter(cfg *config.Config, runner *stack.Runner, dockerClient *docker.Client) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// The bootstrapper's own counters, not the stack's
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	if cfg.APIKey != "" {
		api.Use(middleware.APIKeyMiddleware(cfg.APIKey))
	}

	statusHandler := handlers.NewStatusHandler(cfg)
	api.GET("/status", statusHandler.GetStatus)

	stackHandler := handlers.NewStackHandler(cfg, runner, dockerClient)
	containerHandler := handlers.NewContainerHandler(cfg.ProjectName, dockerClient)

	stackGroup := api.Group("/stack")
	stackGroup.Use(middleware.DockerAvailabilityMiddleware(dockerClient))
	{
		stackGroup.GET("", stackHandler.GetStack)
		stackGroup.GET("/services", stackHandler.GetServices)
		stackGroup.GET("/report", stackHandler.GetReport)
		stackGroup.GET("/logs", stackHandler.GetLogs)
	}

	containers := api.Group("/containers")
	containers.Use(middleware.DockerAvailabilityMiddleware(dockerClient))
	{
		containers.GET("", containerHandler.ListContainers)
		containers.GET("/:id", containerHandler.GetContainer)
	}

	return router
}
