package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/wave-divider/internal/controller"
	"github.com/Conceptual-Machines/wave-divider/internal/logger"
	"github.com/Conceptual-Machines/wave-divider/internal/web/templates"
	"github.com/gin-gonic/gin"
)

type WebHandler struct {
	ctrl *controller.Controller
}

func NewWebHandler(ctrl *controller.Controller) *WebHandler {
	return &WebHandler{ctrl: ctrl}
}

// Editor renders the wave editor with the current session state
func (h *WebHandler) Editor(c *gin.Context) {
	component := templates.Editor(templates.EditorData{
		Snapshot: h.ctrl.Snapshot(),
		Presets:  h.ctrl.Presets(),
		Markup:   h.ctrl.Surface().Markup,
		Code:     h.ctrl.ExportCode(),
	})

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("Failed to render editor page", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}
