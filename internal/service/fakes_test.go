package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/repository"
)

type fakeStations struct {
	stations []models.Station
	edges    []models.Edge
	loads    int
}

func (f *fakeStations) ListStations(ctx context.Context) ([]models.Station, error) {
	f.loads++
	return f.stations, nil
}

func (f *fakeStations) GetStationByID(ctx context.Context, id string) (*models.Station, error) {
	for _, s := range f.stations {
		if s.StationID == id {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeStations) ListEdges(ctx context.Context) ([]models.Edge, error) {
	return f.edges, nil
}

type fakeReports struct {
	mu      sync.Mutex
	reports []models.Report
	failAdd error
}

func (f *fakeReports) CreateReport(ctx context.Context, rep *models.Report) error {
	if f.failAdd != nil {
		return f.failAdd
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, *rep)
	return nil
}

func (f *fakeReports) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reports {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeReports) newestFirst(keep func(models.Report) bool) []models.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Report
	for _, r := range f.reports {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeReports) RecentReports(ctx context.Context, q models.ReportQuery) ([]models.Report, error) {
	out := f.newestFirst(func(r models.Report) bool {
		if r.CreatedAt.Before(q.Since) {
			return false
		}
		if len(q.StationIDs) == 0 {
			return true
		}
		for _, id := range q.StationIDs {
			if id == r.StationID {
				return true
			}
		}
		return false
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeReports) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, int64, error) {
	out := f.newestFirst(func(r models.Report) bool {
		return strings.Contains(r.StationID, strings.ToLower(filter.Station))
	})
	return out, int64(len(out)), nil
}

func (f *fakeReports) ListStationReports(ctx context.Context, stationID string, limit int) ([]models.Report, error) {
	out := f.newestFirst(func(r models.Report) bool { return r.StationID == stationID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReports) IncrementLikes(ctx context.Context, id string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reports {
		if f.reports[i].ID == id {
			f.reports[i].Likes++
			r := f.reports[i]
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeReports) DeleteReport(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reports {
		if f.reports[i].ID == id {
			f.reports = append(f.reports[:i], f.reports[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeReports) StationSummaries(ctx context.Context) ([]models.StationSummary, error) {
	seen := map[string]int{}
	var out []models.StationSummary
	for _, r := range f.newestFirst(func(models.Report) bool { return true }) {
		if i, ok := seen[r.StationID]; ok {
			out[i].ReportCount++
			continue
		}
		seen[r.StationID] = len(out)
		out = append(out, models.StationSummary{Station: r.StationID, Level: r.Level, Remarks: r.Remarks, LastUpdate: r.CreatedAt, ReportCount: 1})
	}
	return out, nil
}

type fakeFeed struct {
	created   []models.CrowdEstimate
	liked     []models.Report
	createErr error
}

func (f *fakeFeed) ReportCreated(report models.Report, estimate models.CrowdEstimate) error {
	f.created = append(f.created, estimate)
	return f.createErr
}

func (f *fakeFeed) ReportLiked(report models.Report) error {
	f.liked = append(f.liked, report)
	return nil
}

var errFeedDown = errors.New("feed down")
