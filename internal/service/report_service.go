package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/repository"
)

// DefaultStationReportLimit applies when the by-station listing has no limit
const DefaultStationReportLimit = 10

// ReportService handles business logic for community reports
type ReportService struct {
	reports ReportStore
	crowd   *CrowdService
	feed    LiveFeed
	now     func() time.Time
}

// NewReportService creates a new report service. feed may be nil.
func NewReportService(reports ReportStore, crowd *CrowdService, feed LiveFeed) *ReportService {
	return &ReportService{
		reports: reports,
		crowd:   crowd,
		feed:    feed,
		now:     time.Now,
	}
}

// NewReportView adds the relative and epoch timestamps to a report
func NewReportView(r models.Report, now time.Time) models.ReportView {
	return models.ReportView{
		Report:    r,
		TimeAgo:   timeAgo(r.CreatedAt, now),
		Timestamp: r.CreatedAt.UnixMilli(),
	}
}

func timeAgo(t, now time.Time) string {
	if t.After(now) {
		t = now
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// SubmitReport validates and stores a report, then notifies live subscribers.
// authUser, when set, is the verified token subject and overrides req.UserID.
func (s *ReportService) SubmitReport(ctx context.Context, req models.CreateReportRequest, authUser string) (*models.Report, error) {
	station := strings.TrimSpace(req.Station)
	if station == "" {
		return nil, fmt.Errorf("%w: station is required", ErrValidation)
	}
	if strings.TrimSpace(req.Level) == "" {
		return nil, fmt.Errorf("%w: level is required", ErrValidation)
	}
	level, ok := models.ParseCrowdLevel(req.Level)
	if !ok {
		return nil, fmt.Errorf("%w: unknown level %q", ErrValidation, req.Level)
	}

	userID := authUser
	if userID == "" {
		userID = strings.TrimSpace(req.UserID)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	rep := &models.Report{
		ID:        uuid.NewString(),
		StationID: station,
		Level:     level,
		Remarks:   strings.TrimSpace(req.Remarks),
		UserID:    userID,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.reports.CreateReport(ctx, rep); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, *rep)
	return rep, nil
}

func (s *ReportService) publishCreated(ctx context.Context, rep models.Report) {
	if s.feed == nil {
		return
	}
	estimate, err := s.crowd.Estimate(ctx, rep.StationID)
	if err != nil {
		log.Printf("Failed to recompute crowd for %s: %v", rep.StationID, err)
		return
	}
	if err := s.feed.ReportCreated(rep, estimate); err != nil {
		log.Printf("Failed to publish report %s: %v", rep.ID, err)
	}
}

// ListReports retrieves reports with filtering and pagination
func (s *ReportService) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.ReportView, int64, error) {
	filter.Normalize()
	reports, total, err := s.reports.ListReports(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return s.views(reports), total, nil
}

// ListStationReports returns the newest reports of one station
func (s *ReportService) ListStationReports(ctx context.Context, stationID string, limit int) ([]models.ReportView, error) {
	if limit <= 0 {
		limit = DefaultStationReportLimit
	}
	if limit > 100 {
		limit = 100
	}
	reports, err := s.reports.ListStationReports(ctx, stationID, limit)
	if err != nil {
		return nil, err
	}
	return s.views(reports), nil
}

func (s *ReportService) views(reports []models.Report) []models.ReportView {
	now := s.now()
	views := make([]models.ReportView, len(reports))
	for i, r := range reports {
		views[i] = NewReportView(r, now)
	}
	return views
}

// Summary returns the latest state of every reported station
func (s *ReportService) Summary(ctx context.Context) ([]models.StationSummary, error) {
	summaries, err := s.reports.StationSummaries(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range summaries {
		summaries[i].LastUpdated = timeAgo(summaries[i].LastUpdate, now)
	}
	if summaries == nil {
		summaries = []models.StationSummary{}
	}
	return summaries, nil
}

// LikeReport adds a like and notifies the station's subscribers
func (s *ReportService) LikeReport(ctx context.Context, id string) (*models.Report, error) {
	rep, err := s.reports.IncrementLikes(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.feed != nil {
		if err := s.feed.ReportLiked(*rep); err != nil {
			log.Printf("Failed to publish like of %s: %v", rep.ID, err)
		}
	}
	return rep, nil
}

// DeleteReport removes a report owned by user
func (s *ReportService) DeleteReport(ctx context.Context, id, user string) error {
	if user == "" {
		return ErrUnauthorized
	}
	rep, err := s.reports.GetReportByID(ctx, id)
	if err != nil {
		return err
	}
	if rep == nil {
		return ErrReportNotFound
	}
	if rep.UserID != user {
		return ErrForbidden
	}
	if err := s.reports.DeleteReport(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}
