package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Upgrader accepts websocket connections
type Upgrader interface {
	ServeWs(w http.ResponseWriter, r *http.Request)
}

// RealtimeHandler hands websocket upgrades to the notification hub
type RealtimeHandler struct {
	hub Upgrader
}

// NewRealtimeHandler creates a new realtime handler
func NewRealtimeHandler(hub Upgrader) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Connect handles GET /ws
// @Summary Subscribe to refresh notifications
// @Description Upgrades to a websocket that receives {"type":"REFRESH","collections":[...]} after every change
// @Tags realtime
// @Success 101 "Switching protocols"
// @Failure 403 "Origin not allowed"
// @Router /ws [get]
func (h *RealtimeHandler) Connect(c *gin.Context) {
	h.hub.ServeWs(c.Writer, c.Request)
}
