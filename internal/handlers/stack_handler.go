package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voxlab/voxstack/internal/config"
	"github.com/voxlab/voxstack/internal/docker"
	"github.com/voxlab/voxstack/internal/stack"
)

type StackHandler struct {
	config       *config.Config
	runner       *stack.Runner
	dockerClient *docker.Client
}

func NewStackHandler(cfg *config.Config, runner *stack.Runner, dockerClient *docker.Client) *StackHandler {
	return &StackHandler{
		config:       cfg,
		runner:       runner,
		dockerClient: dockerClient,
	}
}

func (h *StackHandler) GetStack(c *gin.Context) {
	status, err := h.runner.Status(c.Request.Context(), h.dockerClient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"data":    nil,
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    status,
		"success": true,
	})
}

func (h *StackHandler) GetServices(c *gin.Context) {
	status, err := h.runner.Status(c.Request.Context(), h.dockerClient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"data":    nil,
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"services": status.Services,
			"total":    len(status.Services),
		},
		"success": true,
	})
}

// GetReport returns the endpoint summary without waiting; the API
// consumer decides what to do with it.
func (h *StackHandler) GetReport(c *gin.Context) {
	monitoring := c.Query("monitoring") == "true"
	report := stack.BuildReport(h.config, monitoring, 0)

	c.JSON(http.StatusOK, gin.H{
		"data":    report,
		"success": true,
	})
}

// GetLogs returns a bounded, non-following snapshot of stack logs.
func (h *StackHandler) GetLogs(c *gin.Context) {
	tail := c.DefaultQuery("tail", "100")
	service := c.Query("service")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var buf bytes.Buffer
	err := h.runner.Logs(ctx, &buf, stack.LogsOptions{
		Service: service,
		Tail:    tail,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"data":    nil,
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"service": service,
			"logs":    buf.String(),
		},
		"success": true,
	})
}
