package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/wave-divider/internal/controller"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	ctrl        *controller.Controller
	rendererURL string
}

func NewHealthHandler(ctrl *controller.Controller, rendererURL string) *HealthHandler {
	return &HealthHandler{ctrl: ctrl, rendererURL: rendererURL}
}

// HealthCheck reports service health and whether the renderer has answered.
// A renderer outage degrades the status but the service itself stays up.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	snap := h.ctrl.Snapshot()

	rendererStatus := "pending"
	switch {
	case snap.LastError != "":
		rendererStatus = "failing"
	case snap.LastRequest != "":
		rendererStatus = "ok"
	}

	status := "healthy"
	if rendererStatus == "failing" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"renderer": gin.H{
			"status":     rendererStatus,
			"url":        h.rendererURL,
			"last_error": snap.LastError,
		},
	})
}
