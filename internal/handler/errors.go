package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/metro-live-backend-go/internal/network"
	"github.com/jengzang/metro-live-backend-go/internal/service"
	"github.com/jengzang/metro-live-backend-go/pkg/response"
)

// writeError maps service errors onto the response envelope
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrStationNotFound):
		response.NotFound(c, "station not found")
	case errors.Is(err, service.ErrNoRoute):
		response.NotFound(c, "no route found")
	case errors.Is(err, service.ErrReportNotFound):
		response.NotFound(c, "report not found")
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, network.ErrDataIntegrity):
		log.Printf("Network integrity failure: %v", err)
		response.InternalError(c, "station network data is inconsistent", err)
	default:
		response.InternalError(c, fallback, err)
	}
}
