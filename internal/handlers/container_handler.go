package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voxlab/voxstack/internal/docker"
)

type ContainerHandler struct {
	project      string
	dockerClient *docker.Client
}

func NewContainerHandler(project string, dockerClient *docker.Client) *ContainerHandler {
	return &ContainerHandler{
		project:      project,
		dockerClient: dockerClient,
	}
}

// ListContainers returns the stack's containers, running or not.
func (h *ContainerHandler) ListContainers(c *gin.Context) {
	containers, err := h.dockerClient.ListProjectContainers(c.Request.Context(), h.project)
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
			"containers": containers,
			"total":      len(containers),
		},
		"success": true,
	})
}

func (h *ContainerHandler) GetContainer(c *gin.Context) {
	containerID := c.Param("id")
	inspected, err := h.dockerClient.InspectContainer(c.Request.Context(), containerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"data":    nil,
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    inspected,
		"success": true,
	})
}
