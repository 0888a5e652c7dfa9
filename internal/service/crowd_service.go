package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jengzang/metro-live-backend-go/internal/crowd"
	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/spatial"
)

// Station view limits
const (
	DefaultNearbyRadius = 5000.0 // Meters
	NearbyLimit         = 10
	DetailReportLimit   = 5
	lastHour            = time.Hour
)

// CrowdService computes live crowd estimates from stored reports
type CrowdService struct {
	stations StationStore
	reports  ReportStore
	mapView  crowd.Profile
	detail   crowd.Profile
	loc      *time.Location
	now      func() time.Time
}

// NewCrowdService creates a crowd service using the given profiles
func NewCrowdService(stations StationStore, reports ReportStore, mapView, detail crowd.Profile) *CrowdService {
	return &CrowdService{
		stations: stations,
		reports:  reports,
		mapView:  mapView,
		detail:   detail,
		loc:      time.Local,
		now:      time.Now,
	}
}

// Estimate recomputes the map-profile estimate of one station
func (s *CrowdService) Estimate(ctx context.Context, stationID string) (models.CrowdEstimate, error) {
	now := s.now()
	reports, err := s.reports.RecentReports(ctx, models.ReportQuery{
		StationIDs: []string{stationID},
		Since:      s.mapView.Since(now),
	})
	if err != nil {
		return models.CrowdEstimate{}, err
	}
	return crowd.Aggregate(stationID, reports, now, s.mapView), nil
}

// estimateAll aggregates every listed station from one window read
func (s *CrowdService) estimateAll(ctx context.Context, stations []models.Station, now time.Time) ([]models.CrowdEstimate, error) {
	q := models.ReportQuery{Since: s.mapView.Since(now)}
	// Small sets are filtered in SQL, the full map reads the whole window once
	if len(stations) <= NearbyLimit {
		for _, st := range stations {
			q.StationIDs = append(q.StationIDs, st.StationID)
		}
	}
	reports, err := s.reports.RecentReports(ctx, q)
	if err != nil {
		return nil, err
	}

	grouped := crowd.GroupByStation(reports)
	estimates := make([]models.CrowdEstimate, len(stations))
	for i, st := range stations {
		estimates[i] = crowd.Aggregate(st.StationID, grouped[st.StationID], now, s.mapView)
	}
	return estimates, nil
}

// LiveMap returns every station with its current estimate
func (s *CrowdService) LiveMap(ctx context.Context) (*models.LiveMap, error) {
	stations, err := s.stations.ListStations(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	view := &models.LiveMap{
		Stations:  make([]models.StationCrowd, len(stations)),
		Count:     len(stations),
		Bounds:    spatial.StationBounds(stations),
		Timestamp: now.UTC(),
	}
	if len(stations) == 0 {
		return view, nil
	}

	estimates, err := s.estimateAll(ctx, stations, now)
	if err != nil {
		return nil, err
	}
	for i, st := range stations {
		view.Stations[i] = models.NewStationCrowd(st, estimates[i])
	}
	return view, nil
}

// StationDetails returns the detail-profile view of one station
func (s *CrowdService) StationDetails(ctx context.Context, stationID string) (*models.StationDetails, error) {
	st, err := s.stations.GetStationByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStationNotFound
	}

	now := s.now()
	window := s.detail.Window
	if window < lastHour {
		window = lastHour
	}
	windowReports, err := s.reports.RecentReports(ctx, models.ReportQuery{
		StationIDs: []string{stationID},
		Since:      now.Add(-window),
	})
	if err != nil {
		return nil, err
	}

	hourAgo := now.Add(-lastHour)
	lastHourCount := 0
	for _, r := range windowReports {
		if !r.CreatedAt.Before(hourAgo) {
			lastHourCount++
		}
	}

	recent, err := s.reports.ListStationReports(ctx, stationID, DetailReportLimit)
	if err != nil {
		return nil, err
	}

	views := make([]models.ReportView, len(recent))
	for i, r := range recent {
		views[i] = NewReportView(r, now)
	}

	return &models.StationDetails{
		Station:              models.NewStationView(*st),
		Crowd:                crowd.Aggregate(stationID, windowReports, now, s.detail),
		RecentReports:        views,
		TotalReportsLastHour: lastHourCount,
	}, nil
}

// Nearby returns up to NearbyLimit stations within radius meters with their estimates.
// A non-positive radius uses DefaultNearbyRadius.
func (s *CrowdService) Nearby(ctx context.Context, lat, lon, radius float64) ([]models.StationCrowd, error) {
	if !spatial.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	if radius <= 0 {
		radius = DefaultNearbyRadius
	}

	stations, err := s.stations.ListStations(ctx)
	if err != nil {
		return nil, err
	}

	matches := spatial.Nearby(stations, lat, lon, radius, NearbyLimit)
	if len(matches) == 0 {
		return []models.StationCrowd{}, nil
	}

	nearby := make([]models.Station, len(matches))
	for i, m := range matches {
		nearby[i] = m.Station
	}
	estimates, err := s.estimateAll(ctx, nearby, s.now())
	if err != nil {
		return nil, err
	}

	result := make([]models.StationCrowd, len(matches))
	for i, m := range matches {
		result[i] = models.NewStationCrowd(m.Station, estimates[i])
		result[i].DistanceMeters = m.DistanceMeters
	}
	return result, nil
}

// Statistics summarizes the map-profile estimates of all stations
func (s *CrowdService) Statistics(ctx context.Context) (*models.CrowdStatistics, error) {
	stations, err := s.stations.ListStations(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	estimates, err := s.estimateAll(ctx, stations, now)
	if err != nil {
		return nil, err
	}
	stats := crowd.Summarize(estimates, now)
	return &stats, nil
}

// Trends returns hourly crowd trends of one station over the last day
func (s *CrowdService) Trends(ctx context.Context, stationID string) ([]models.HourlyTrend, error) {
	st, err := s.stations.GetStationByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStationNotFound
	}

	now := s.now()
	reports, err := s.reports.RecentReports(ctx, models.ReportQuery{
		StationIDs: []string{stationID},
		Since:      now.Add(-crowd.TrendWindow),
	})
	if err != nil {
		return nil, err
	}
	return crowd.HourlyTrends(reports, now, s.loc), nil
}
