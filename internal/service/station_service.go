package service

import (
	"context"

	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// StationService handles station catalogue reads
type StationService struct {
	stations StationStore
}

// NewStationService creates a new station service
func NewStationService(stations StationStore) *StationService {
	return &StationService{stations: stations}
}

// ListStations returns every station in map shape
func (s *StationService) ListStations(ctx context.Context) ([]models.StationView, error) {
	stations, err := s.stations.ListStations(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.StationView, len(stations))
	for i, st := range stations {
		views[i] = models.NewStationView(st)
	}
	return views, nil
}

// GetStation returns one station by slug
func (s *StationService) GetStation(ctx context.Context, id string) (*models.Station, error) {
	st, err := s.stations.GetStationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStationNotFound
	}
	return st, nil
}
