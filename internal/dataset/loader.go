// Package dataset reads the station and edge JSON files the network is seeded from.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// File names inside the data directory
const (
	StationsFile = "stations.json"
	EdgesFile    = "edges.json"
)

type stationRecord struct {
	StationID string `json:"stationId"`
	Name      string `json:"name"`
	Coords    *struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"` // [lng, lat]
	} `json:"coords"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
	Lines     []string `json:"lines"`
	Meta      *struct {
		EntryCount int `json:"entryCount"`
	} `json:"meta"`
}

type edgeRecord struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Distance   *float64 `json:"distance"`
	TravelTime *float64 `json:"travelTime"`
	Weight     *float64 `json:"weight"`
	Line       string   `json:"line"`
}

// ParseStations decodes a stations.json document
func ParseStations(data []byte) ([]models.Station, error) {
	var records []stationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse stations JSON: %w", err)
	}

	stations := make([]models.Station, 0, len(records))
	for i, r := range records {
		if r.StationID == "" {
			return nil, fmt.Errorf("station %d has no stationId", i)
		}
		s := models.Station{
			StationID: r.StationID,
			Name:      r.Name,
			Lines:     r.Lines,
		}
		switch {
		case r.Coords != nil && len(r.Coords.Coordinates) >= 2:
			s.Longitude = r.Coords.Coordinates[0]
			s.Latitude = r.Coords.Coordinates[1]
		case r.Longitude != nil && r.Latitude != nil:
			s.Longitude = *r.Longitude
			s.Latitude = *r.Latitude
		}
		if r.Meta != nil {
			s.EntryCount = r.Meta.EntryCount
		}
		if s.Name == "" {
			s.Name = s.StationID
		}
		stations = append(stations, s)
	}
	return stations, nil
}

// ParseEdges decodes an edges.json document. The weight may be given as
// distance, travelTime or weight, checked in that order.
func ParseEdges(data []byte) ([]models.Edge, error) {
	var records []edgeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse edges JSON: %w", err)
	}

	edges := make([]models.Edge, 0, len(records))
	for i, r := range records {
		var w *float64
		switch {
		case r.Distance != nil:
			w = r.Distance
		case r.TravelTime != nil:
			w = r.TravelTime
		case r.Weight != nil:
			w = r.Weight
		default:
			return nil, fmt.Errorf("edge %d (%s-%s) has no weight", i, r.From, r.To)
		}
		edges = append(edges, models.Edge{From: r.From, To: r.To, Weight: *w, Line: r.Line})
	}
	return edges, nil
}

// LoadDir reads stations.json and edges.json from dir
func LoadDir(dir string) ([]models.Station, []models.Edge, error) {
	stationBytes, err := os.ReadFile(filepath.Join(dir, StationsFile))
	if err != nil {
		return nil, nil, fmt.Errorf("could not read stations file: %w", err)
	}
	stations, err := ParseStations(stationBytes)
	if err != nil {
		return nil, nil, err
	}

	edgeBytes, err := os.ReadFile(filepath.Join(dir, EdgesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("could not read edges file: %w", err)
	}
	edges, err := ParseEdges(edgeBytes)
	if err != nil {
		return nil, nil, err
	}

	return stations, edges, nil
}
