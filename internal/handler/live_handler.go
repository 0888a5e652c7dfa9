package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/metro-live-backend-go/internal/live"
)

// LiveHandler streams live crowd events over Server-Sent Events
type LiveHandler struct {
	hub       *live.Hub
	heartbeat time.Duration
}

// NewLiveHandler creates a new live handler sending a ping every heartbeat
func NewLiveHandler(hub *live.Hub, heartbeat time.Duration) *LiveHandler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &LiveHandler{hub: hub, heartbeat: heartbeat}
}

// Stream handles GET /api/live/stream?station=<id>; without a station it joins the map view
func (h *LiveHandler) Stream(c *gin.Context) {
	group := live.MapGroup
	if station := c.Query("station"); station != "" {
		group = live.StationGroup(station)
	}

	events, cancel := h.hub.Subscribe(group)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("connected", gin.H{"group": group})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev)
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", gin.H{"at": t.UTC()})
			return true
		}
	})
}
