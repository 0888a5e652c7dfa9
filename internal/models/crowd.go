package models

import (
	"strings"
	"time"
)

// CrowdLevel is one of the three canonical crowd tiers
type CrowdLevel string

// CrowdLevel constants. CrowdModerate is also the external label for the middle tier.
const (
	CrowdLow      CrowdLevel = "low"
	CrowdModerate CrowdLevel = "moderate"
	CrowdHigh     CrowdLevel = "high"
)

// CrowdLevels lists the tiers in tie-break precedence order (highest first)
var CrowdLevels = []CrowdLevel{CrowdHigh, CrowdModerate, CrowdLow}

var crowdSynonyms = map[string]CrowdLevel{
	"low":      CrowdLow,
	"light":    CrowdLow,
	"moderate": CrowdModerate,
	"medium":   CrowdModerate,
	"high":     CrowdHigh,
	"heavy":    CrowdHigh,
}

// ParseCrowdLevel normalizes a user-facing level label
func ParseCrowdLevel(s string) (CrowdLevel, bool) {
	level, ok := crowdSynonyms[strings.ToLower(strings.TrimSpace(s))]
	return level, ok
}

// Ordinal maps the level onto the 1-3 scale
func (l CrowdLevel) Ordinal() float64 {
	switch l {
	case CrowdLow:
		return 1
	case CrowdModerate:
		return 2
	case CrowdHigh:
		return 3
	}
	return 0
}

// Distribution holds rounded percentages per level
type Distribution struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
}

// CrowdEstimate is the aggregated crowd state of one station at one instant
type CrowdEstimate struct {
	StationID    string       `json:"stationId"`
	Level        CrowdLevel   `json:"crowdLevel"`
	Confidence   int          `json:"crowdConfidence"` // 0-100
	ReportCount  int          `json:"reportCount"`
	LastUpdated  *time.Time   `json:"lastUpdated"`
	Distribution Distribution `json:"distribution"`
}

// StationCrowd combines a station with its current estimate.
// StationID shadows the id carried by both embedded structs.
type StationCrowd struct {
	StationID string `json:"stationId"`
	StationView
	CrowdEstimate
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
}

// NewStationCrowd pairs a station with its estimate
func NewStationCrowd(s Station, est CrowdEstimate) StationCrowd {
	return StationCrowd{StationID: s.StationID, StationView: NewStationView(s), CrowdEstimate: est}
}

// HourlyTrend is the crowd picture for one hour of the day
type HourlyTrend struct {
	Hour   int         `json:"hour"`
	Level  *CrowdLevel `json:"level"` // nil when no reports fell in that hour
	Counts LevelCounts `json:"counts"`
	Total  int         `json:"total"`
}

// LevelCounts counts items per level
type LevelCounts struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
}

// Add increments the counter for level
func (c *LevelCounts) Add(level CrowdLevel) {
	switch level {
	case CrowdLow:
		c.Low++
	case CrowdModerate:
		c.Moderate++
	case CrowdHigh:
		c.High++
	}
}

// Get returns the counter for level
func (c LevelCounts) Get(level CrowdLevel) int {
	switch level {
	case CrowdLow:
		return c.Low
	case CrowdModerate:
		return c.Moderate
	case CrowdHigh:
		return c.High
	}
	return 0
}

// CrowdStatistics summarizes the network-wide crowd picture
type CrowdStatistics struct {
	TotalStations     int         `json:"totalStations"`
	StationsWithData  int         `json:"stationsWithData"`
	Levels            LevelCounts `json:"levels"`
	ReportsInWindow   int         `json:"reportsInWindow"`
	AverageConfidence float64     `json:"averageConfidence"` // Over stations with data
	MedianConfidence  float64     `json:"medianConfidence"`
	LevelSpread       float64     `json:"levelSpread"` // 0 when every reported station agrees, 1 for an even split
	Timestamp         time.Time   `json:"timestamp"`
}

// LiveMap is the network-wide map view
type LiveMap struct {
	Stations  []StationCrowd `json:"stations"`
	Count     int            `json:"count"`
	Bounds    *Bounds        `json:"bounds"`
	Timestamp time.Time      `json:"timestamp"`
}
