package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/service"
	"github.com/jengzang/metro-live-backend-go/pkg/response"
)

// StationHandler handles station and live map requests
type StationHandler struct {
	stations *service.StationService
	crowd    *service.CrowdService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stations *service.StationService, crowd *service.CrowdService) *StationHandler {
	return &StationHandler{stations: stations, crowd: crowd}
}

// GetStations handles GET /api/stations
func (h *StationHandler) GetStations(c *gin.Context) {
	stations, err := h.stations.ListStations(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to get stations")
		return
	}

	response.Success(c, stations)
}

// GetStation handles GET /api/stations/:id
func (h *StationHandler) GetStation(c *gin.Context) {
	station, err := h.stations.GetStation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to get station")
		return
	}

	response.Success(c, models.NewStationView(*station))
}

// GetTrends handles GET /api/stations/:id/trends
func (h *StationHandler) GetTrends(c *gin.Context) {
	id := c.Param("id")
	trends, err := h.crowd.Trends(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to get trends")
		return
	}

	response.Success(c, gin.H{
		"stationId": id,
		"trends":    trends,
	})
}

// GetLiveStats handles GET /api/stations/live/stats
func (h *StationHandler) GetLiveStats(c *gin.Context) {
	stats, err := h.crowd.Statistics(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to get statistics")
		return
	}

	response.Success(c, stats)
}

// GetLiveMap handles GET /api/metro-map/live-data
func (h *StationHandler) GetLiveMap(c *gin.Context) {
	view, err := h.crowd.LiveMap(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to get live map")
		return
	}

	response.Success(c, view)
}

// GetStationDetails handles GET /api/metro-map/stations/:stationId/details
func (h *StationHandler) GetStationDetails(c *gin.Context) {
	details, err := h.crowd.StationDetails(c.Request.Context(), c.Param("stationId"))
	if err != nil {
		writeError(c, err, "Failed to get station details")
		return
	}

	response.Success(c, details)
}

// GetNearby handles GET /api/metro-map/nearby
func (h *StationHandler) GetNearby(c *gin.Context) {
	var filter models.NearbyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	if filter.Longitude == "" || filter.Latitude == "" {
		response.BadRequest(c, "longitude and latitude are required")
		return
	}

	lon, errLon := strconv.ParseFloat(filter.Longitude, 64)
	lat, errLat := strconv.ParseFloat(filter.Latitude, 64)
	if errLon != nil || errLat != nil {
		response.BadRequest(c, "longitude and latitude must be numbers")
		return
	}

	radius := service.DefaultNearbyRadius
	if filter.MaxDistance != "" {
		r, err := strconv.ParseFloat(filter.MaxDistance, 64)
		if err != nil || r <= 0 {
			response.BadRequest(c, "maxDistance must be a positive number")
			return
		}
		radius = r
	}

	stations, err := h.crowd.Nearby(c.Request.Context(), lat, lon, radius)
	if err != nil {
		writeError(c, err, "Failed to find nearby stations")
		return
	}

	response.Success(c, gin.H{
		"stations":    stations,
		"count":       len(stations),
		"maxDistance": radius,
	})
}
