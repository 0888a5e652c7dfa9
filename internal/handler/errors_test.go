package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/metro-live-backend-go/internal/network"
	"github.com/jengzang/metro-live-backend-go/internal/service"
	"github.com/jengzang/metro-live-backend-go/pkg/response"
)

func TestWriteErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: level is required", service.ErrValidation), http.StatusBadRequest, "invalid request: level is required"},
		{service.ErrStationNotFound, http.StatusNotFound, "station not found"},
		{service.ErrNoRoute, http.StatusNotFound, "no route found"},
		{service.ErrReportNotFound, http.StatusNotFound, "report not found"},
		{service.ErrUnauthorized, http.StatusUnauthorized, "authentication required"},
		{service.ErrForbidden, http.StatusForbidden, "not allowed to modify this report"},
		{fmt.Errorf("%w: edge a-b has negative weight -1", network.ErrDataIntegrity), http.StatusInternalServerError, "station network data is inconsistent"},
		{errors.New("disk I/O error"), http.StatusInternalServerError, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			writeError(c, tt.err, "fallback")

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			var resp response.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Message != tt.message {
				t.Errorf("message = %q, want %q", resp.Message, tt.message)
			}
		})
	}
}
