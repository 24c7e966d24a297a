package handlers

import (
	"io"
	"time"

	"github.com/Conceptual-Machines/wave-divider/internal/logger"
	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 15 * time.Second

// Events streams controller events to the browser as server-sent events
// GET /api/events
func (h *WaveHandler) Events(c *gin.Context) {
	events, cancel := h.ctrl.Subscribe()
	defer cancel()

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Send the current state first so a fresh page does not wait for an edit
	c.SSEvent("state", h.ctrl.Snapshot())
	c.Writer.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				logger.Debug("Event stream closed by controller", logger.Fields{
					"request_id": c.GetString("request_id"),
				})
				return false
			}
			c.SSEvent(string(ev.Kind), ev)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}
