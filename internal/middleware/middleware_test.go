package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	c.String(http.StatusOK, UserID(c))
}

func TestAuth(t *testing.T) {
	t.Parallel()

	valid, err := SignToken("user-42", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}
	expired, err := SignToken("user-42", testSecret, -time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}
	foreign, err := SignToken("user-42", "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid token", "Bearer " + valid, http.StatusOK, "user-42"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
	}

	r := gin.New()
	r.Use(Auth(testSecret))
	r.GET("/me", whoami)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && w.Body.String() != tt.body {
				t.Errorf("subject = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(Auth(testSecret))
	r.DELETE("/thing", RequireUser(), whoami)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/thing", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", w.Code)
	}

	token, _ := SignToken("owner", testSecret, time.Hour)
	req := httptest.NewRequest(http.MethodDelete, "/thing", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "owner" {
		t.Fatalf("authenticated = %d %q", w.Code, w.Body.String())
	}
}

func TestRateLimiterWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Fatal("third request inside the window should be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("other keys are independent")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Fatal("request after the window should pass")
	}

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	if len(rl.requests) != 0 {
		t.Fatalf("Cleanup() left %d keys", len(rl.requests))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.POST("/submit", RateLimit(NewRateLimiter(1, time.Hour)), whoami)

	codes := make([]int, 0, 2)
	var retryAfter string
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
		codes = append(codes, w.Code)
		retryAfter = w.Header().Get("Retry-After")
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want [200 429]", codes)
	}
	if retryAfter != "3600" {
		t.Fatalf("Retry-After = %q, want 3600", retryAfter)
	}
}

func TestLoggerSetsRequestID(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(Logger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	if id == "" || id != w.Body.String() {
		t.Fatalf("request id header %q, body %q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "given-id" {
		t.Fatalf("request id = %q, want the inbound one", got)
	}
}
