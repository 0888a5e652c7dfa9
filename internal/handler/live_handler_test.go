package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/metro-live-backend-go/internal/live"
	"github.com/jengzang/metro-live-backend-go/internal/models"
)

func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event:"); ok {
			return name
		}
	}
}

func TestStreamDeliversStationEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := live.NewHub()

	r := gin.New()
	r.GET("/api/live/stream", NewLiveHandler(hub, time.Hour).Stream)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/live/stream?station=rajiv-chowk", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET stream: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("Content-Type = %q", ct)
	}

	body := bufio.NewReader(resp.Body)
	if name := readEvent(t, body); name != "connected" {
		t.Fatalf("first event = %q, want connected", name)
	}

	group := live.StationGroup("rajiv-chowk")
	if n := hub.Subscribers(group); n != 1 {
		t.Fatalf("Subscribers(%s) = %d, want 1", group, n)
	}

	report := models.Report{ID: "r1", StationID: "rajiv-chowk", Level: models.CrowdHigh}
	if err := hub.ReportCreated(report, models.CrowdEstimate{StationID: "rajiv-chowk"}); err != nil {
		t.Fatal(err)
	}
	if name := readEvent(t, body); name != live.EventNewReport {
		t.Fatalf("event = %q, want %q", name, live.EventNewReport)
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers(group) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber not released after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
