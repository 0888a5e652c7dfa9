package service

import (
	"context"
	"errors"

	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/routing"
)

// Service errors mapped to HTTP status codes by the handlers
var (
	ErrValidation      = errors.New("invalid request")
	ErrStationNotFound = routing.ErrStationNotFound
	ErrNoRoute         = routing.ErrNoRoute
	ErrReportNotFound  = errors.New("report not found")
	ErrUnauthorized    = errors.New("authentication required")
	ErrForbidden       = errors.New("not allowed to modify this report")
)

// StationStore reads the station network
type StationStore interface {
	ListStations(ctx context.Context) ([]models.Station, error)
	GetStationByID(ctx context.Context, id string) (*models.Station, error)
	ListEdges(ctx context.Context) ([]models.Edge, error)
}

// ReportStore persists community reports
type ReportStore interface {
	CreateReport(ctx context.Context, rep *models.Report) error
	GetReportByID(ctx context.Context, id string) (*models.Report, error)
	RecentReports(ctx context.Context, q models.ReportQuery) ([]models.Report, error)
	ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, int64, error)
	ListStationReports(ctx context.Context, stationID string, limit int) ([]models.Report, error)
	IncrementLikes(ctx context.Context, id string) (*models.Report, error)
	DeleteReport(ctx context.Context, id string) error
	StationSummaries(ctx context.Context) ([]models.StationSummary, error)
}

// LiveFeed receives report events for live subscribers
type LiveFeed interface {
	ReportCreated(report models.Report, estimate models.CrowdEstimate) error
	ReportLiked(report models.Report) error
}
