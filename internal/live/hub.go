package live

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// Event names pushed to subscribers
const (
	EventNewReport     = "new-report"
	EventStationUpdate = "station-update"
	EventReportLiked   = "report-liked"
)

// MapGroup receives every station update
const MapGroup = "map-view"

const subscriberBuffer = 16

// StationGroup returns the subscriber group for one station
func StationGroup(stationID string) string {
	return "station-" + stationID
}

// Event is one message delivered to a subscriber
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

// StationUpdate is the payload of a station-update event
type StationUpdate struct {
	StationID string               `json:"stationId"`
	Crowd     models.CrowdEstimate `json:"crowd"`
}

// Hub fans events out to subscriber groups
type Hub struct {
	mu      sync.RWMutex
	groups  map[string]map[chan Event]struct{}
	dropped atomic.Uint64
	now     func() time.Time
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		groups: make(map[string]map[chan Event]struct{}),
		now:    time.Now,
	}
}

// Subscribe joins group; the returned cancel func must be called to leave
func (h *Hub) Subscribe(group string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.groups[group] == nil {
		h.groups[group] = make(map[chan Event]struct{})
	}
	h.groups[group][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.groups[group], ch)
			if len(h.groups[group]) == 0 {
				delete(h.groups, group)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of group and returns how many received it.
// Subscribers with a full buffer miss the event.
func (h *Hub) Publish(group, name string, data interface{}) int {
	ev := Event{Name: name, Data: data, At: h.now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.groups[group] {
		select {
		case ch <- ev:
			delivered++
		default:
			h.dropped.Add(1)
		}
	}
	return delivered
}

// Subscribers returns the number of subscribers in group
func (h *Hub) Subscribers(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// Dropped returns how many deliveries were skipped because a subscriber was full
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// ReportCreated pushes a new report to its station group and the refreshed estimate to the map group
func (h *Hub) ReportCreated(report models.Report, estimate models.CrowdEstimate) error {
	h.Publish(StationGroup(report.StationID), EventNewReport, report)
	h.Publish(MapGroup, EventStationUpdate, StationUpdate{StationID: report.StationID, Crowd: estimate})
	return nil
}

// ReportLiked pushes a like to the station group
func (h *Hub) ReportLiked(report models.Report) error {
	h.Publish(StationGroup(report.StationID), EventReportLiked, report)
	return nil
}
