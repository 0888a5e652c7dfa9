package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/metro-live-backend-go/internal/middleware"
	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/service"
	"github.com/jengzang/metro-live-backend-go/pkg/response"
)

// ReportHandler handles HTTP requests for community reports
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// SubmitReport handles POST /api/reports/submit
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var req models.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.service.SubmitReport(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		writeError(c, err, "Failed to submit report")
		return
	}

	response.Created(c, "Report submitted successfully", report)
}

// GetReports handles GET /api/reports/all
func (h *ReportHandler) GetReports(c *gin.Context) {
	var filter models.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	filter.Normalize()

	reports, total, err := h.service.ListReports(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, "Failed to get reports")
		return
	}

	response.Success(c, response.Page{
		Items: reports,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// GetStationReports handles GET /api/reports/station/:station
func (h *ReportHandler) GetStationReports(c *gin.Context) {
	station := c.Param("station")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	reports, err := h.service.ListStationReports(c.Request.Context(), station, limit)
	if err != nil {
		writeError(c, err, "Failed to get station reports")
		return
	}

	response.Success(c, gin.H{
		"station": station,
		"count":   len(reports),
		"reports": reports,
	})
}

// GetSummary handles GET /api/reports/summary
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to build summary")
		return
	}

	response.Success(c, summary)
}

// LikeReport handles POST /api/reports/:id/like
func (h *ReportHandler) LikeReport(c *gin.Context) {
	report, err := h.service.LikeReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to like report")
		return
	}

	response.Success(c, report)
}

// DeleteReport handles DELETE /api/reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteReport(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		writeError(c, err, "Failed to delete report")
		return
	}

	response.Success(c, gin.H{"id": id})
}
