package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		write     func(c *gin.Context)
		status    int
		code      int
		wantError string
	}{
		{"success", func(c *gin.Context) { Success(c, gin.H{"ok": true}) }, http.StatusOK, 0, ""},
		{"created", func(c *gin.Context) { Created(c, "created", nil) }, http.StatusCreated, 0, ""},
		{"not found", func(c *gin.Context) { NotFound(c, "station not found") }, http.StatusNotFound, 404, ""},
		{"internal", func(c *gin.Context) { InternalError(c, "failed", errors.New("disk")) }, http.StatusInternalServerError, 500, "disk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			var resp Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Code != tt.code || resp.Error != tt.wantError {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}
