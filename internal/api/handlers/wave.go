package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/Conceptual-Machines/wave-divider/internal/controller"
	"github.com/Conceptual-Machines/wave-divider/internal/export"
	"github.com/Conceptual-Machines/wave-divider/internal/wave"
	"github.com/gin-gonic/gin"
)

type WaveHandler struct {
	ctrl *controller.Controller
}

func NewWaveHandler(ctrl *controller.Controller) *WaveHandler {
	return &WaveHandler{ctrl: ctrl}
}

// GetState returns parameters, flags, export mode and render status
// GET /api/state
func (h *WaveHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

// UpdateParamsResponse lists which fields were stored. Rejected fields keep
// their previous value; rejection is not an HTTP error.
type UpdateParamsResponse struct {
	Accepted []string            `json:"accepted"`
	Rejected map[string]string   `json:"rejected,omitempty"`
	State    controller.Snapshot `json:"state"`
}

// UpdateParams stores any number of fields and schedules one debounced render
// PATCH /api/params
func (h *WaveHandler) UpdateParams(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Position goes last so a flip derived from it is never overwritten
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := keys[i] == string(wave.FieldPosition), keys[j] == string(wave.FieldPosition)
		if pi != pj {
			return pj
		}
		return keys[i] < keys[j]
	})

	resp := UpdateParamsResponse{Accepted: []string{}}
	for _, key := range keys {
		value, err := formValue(body[key])
		if err == nil {
			err = h.ctrl.Set(wave.Field(key), value)
		}
		if err != nil {
			if resp.Rejected == nil {
				resp.Rejected = map[string]string{}
			}
			resp.Rejected[key] = err.Error()
			continue
		}
		resp.Accepted = append(resp.Accepted, key)
	}

	resp.State = h.ctrl.Snapshot()
	c.JSON(http.StatusOK, resp)
}

// formValue turns a JSON value into the text an input widget would hold
func formValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: expected string or number, got %T", wave.ErrInvalidValue, v)
	}
}

// ToggleFlag flips one of flip, gradient, mirror, animate
// POST /api/flags/:flag/toggle
func (h *WaveHandler) ToggleFlag(c *gin.Context) {
	flag := wave.Flag(c.Param("flag"))
	on, err := h.ctrl.ToggleFlag(flag)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"flag": flag, "on": on})
}

// Preview serves the last accepted render as SVG
// GET /api/preview
func (h *WaveHandler) Preview(c *gin.Context) {
	surface := h.ctrl.Surface()
	if !surface.Rendered() {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("X-Render-Seq", strconv.FormatUint(surface.Seq, 10))
	c.Data(http.StatusOK, "image/svg+xml", []byte(surface.Markup))
}

// Export returns the embed snippet, optionally switching the export mode first
// GET /api/export?mode=markdown|html|plain
func (h *WaveHandler) Export(c *gin.Context) {
	if raw, ok := c.GetQuery("mode"); ok {
		mode, err := export.ParseMode(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.ctrl.SetExportMode(mode)
	}

	snap := h.ctrl.Snapshot()
	if snap.LastRequest == "" {
		log.Printf("⚠️  Export requested before first render")
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":     snap.ExportMode,
		"code":     h.ctrl.ExportCode(),
		"rendered": snap.LastRequest != "",
	})
}

// Regenerate forces an immediate render, bypassing the debounce
// POST /api/regenerate
func (h *WaveHandler) Regenerate(c *gin.Context) {
	res := h.ctrl.Regenerate(renderContext(c))
	resp := gin.H{
		"seq":     res.Seq,
		"outcome": res.Outcome.String(),
	}
	if res.Err != nil {
		resp["error"] = res.Err.Error()
	}
	// A failed render is still a successful API call; the preview keeps its last state
	c.JSON(http.StatusOK, resp)
}

// renderContext keeps request values for tracing but not cancellation: a
// render already sent to the renderer completes even if the client goes away
func renderContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func isNotFound(err error) bool {
	return errors.Is(err, controller.ErrUnknownPreset)
}
