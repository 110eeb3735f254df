package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voxlab/voxstack/internal/config"
)

type StatusHandler struct {
	config *config.Config
}

func NewStatusHandler(cfg *config.Config) *StatusHandler {
	return &StatusHandler{
		config: cfg,
	}
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "running",
		"project": h.config.ProjectName,
		"version": h.config.Version,
	})
}
