package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/service"
	"github.com/jengzang/metro-live-backend-go/pkg/response"
)

// RouteHandler handles HTTP requests for shortest paths
type RouteHandler struct {
	service *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(service *service.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// ShortestRoute handles POST /api/routes/shortest
func (h *RouteHandler) ShortestRoute(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	route, err := h.service.ShortestRoute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Failed to compute route")
		return
	}

	response.Success(c, route)
}
