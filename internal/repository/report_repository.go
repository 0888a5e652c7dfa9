package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// ReportRepository handles database operations for community reports
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, station_id, level, remarks, user_id, likes, verified, created_at`

func scanReport(row interface{ Scan(...interface{}) error }) (models.Report, error) {
	var rep models.Report
	var level string
	var verified int
	var createdAt int64
	err := row.Scan(&rep.ID, &rep.StationID, &level, &rep.Remarks, &rep.UserID, &rep.Likes, &verified, &createdAt)
	if err != nil {
		return rep, err
	}
	rep.Level = models.CrowdLevel(level)
	rep.Verified = verified != 0
	rep.CreatedAt = time.UnixMilli(createdAt).UTC()
	return rep, nil
}

func (r *ReportRepository) queryReports(ctx context.Context, query string, args ...interface{}) ([]models.Report, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// CreateReport inserts a report
func (r *ReportRepository) CreateReport(ctx context.Context, rep *models.Report) error {
	verified := 0
	if rep.Verified {
		verified = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (`+reportColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.StationID, string(rep.Level), rep.Remarks, rep.UserID, rep.Likes, verified, rep.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetReportByID retrieves a single report; nil when absent
func (r *ReportRepository) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	rep, err := scanReport(r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &rep, nil
}

// RecentReports returns reports created at or after q.Since, newest first
func (r *ReportRepository) RecentReports(ctx context.Context, q models.ReportQuery) ([]models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE created_at >= ?`
	args := []interface{}{q.Since.UnixMilli()}

	if len(q.StationIDs) > 0 {
		placeholders := make([]string, len(q.StationIDs))
		for i, id := range q.StationIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		query += " AND station_id IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query += " ORDER BY created_at DESC, id"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	return r.queryReports(ctx, query, args...)
}

// ListReports retrieves reports with filtering and pagination
func (r *ReportRepository) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, int64, error) {
	filter.Normalize()

	var conditions []string
	var args []interface{}

	if filter.Station != "" {
		conditions = append(conditions, `station_id LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Station)+"%")
	}
	if filter.Level != "" {
		if level, ok := models.ParseCrowdLevel(filter.Level); ok {
			conditions = append(conditions, "level = ?")
			args = append(args, string(level))
		}
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	order := " ORDER BY created_at DESC, id"
	if filter.Sort == models.SortByLikes {
		order = " ORDER BY likes DESC, created_at DESC, id"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `SELECT ` + reportColumns + ` FROM reports` + where + order + " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, offset)

	reports, err := r.queryReports(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// ListStationReports returns the newest reports for one station
func (r *ReportRepository) ListStationReports(ctx context.Context, stationID string, limit int) ([]models.Report, error) {
	return r.queryReports(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE station_id = ? ORDER BY created_at DESC, id LIMIT ?`,
		stationID, limit,
	)
}

// IncrementLikes adds one like and returns the updated report
func (r *ReportRepository) IncrementLikes(ctx context.Context, id string) (*models.Report, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE reports SET likes = likes + 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to like report: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	rep, err := r.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrNotFound
	}
	return rep, nil
}

// DeleteReport removes a report
func (r *ReportRepository) DeleteReport(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// StationSummaries returns the latest report and total count per station, newest first
func (r *ReportRepository) StationSummaries(ctx context.Context) ([]models.StationSummary, error) {
	query := `
		SELECT r.station_id, r.level, r.remarks, r.created_at, c.cnt
		FROM reports r
		JOIN (
			SELECT station_id, MAX(created_at) AS latest, COUNT(*) AS cnt
			FROM reports
			GROUP BY station_id
		) c ON r.station_id = c.station_id AND r.created_at = c.latest
		ORDER BY r.created_at DESC, r.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query station summaries: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var summaries []models.StationSummary
	for rows.Next() {
		var s models.StationSummary
		var level string
		var createdAt int64
		if err := rows.Scan(&s.Station, &level, &s.Remarks, &createdAt, &s.ReportCount); err != nil {
			return nil, fmt.Errorf("failed to scan station summary: %w", err)
		}
		// Two reports sharing the latest timestamp produce two rows
		if seen[s.Station] {
			continue
		}
		seen[s.Station] = true
		s.Level = models.CrowdLevel(level)
		s.LastUpdate = time.UnixMilli(createdAt).UTC()
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
