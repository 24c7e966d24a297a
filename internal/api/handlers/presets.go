package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListPresets returns the session's preset catalog with thumbnails
// GET /api/presets
func (h *WaveHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": h.ctrl.Presets()})
}

// ApplyPreset loads a preset into the model and renders without waiting
// POST /api/presets/:index/apply
func (h *WaveHandler) ApplyPreset(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preset index must be an integer"})
		return
	}

	res, err := h.ctrl.ApplyPreset(renderContext(c), index)
	if err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"seq":     res.Seq,
		"outcome": res.Outcome.String(),
		"state":   h.ctrl.Snapshot(),
	}
	if res.Err != nil {
		resp["error"] = res.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
