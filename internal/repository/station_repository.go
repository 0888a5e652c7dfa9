package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jengzang/metro-live-backend-go/internal/database"
	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// ErrNotFound is returned by mutations that target a missing row
var ErrNotFound = errors.New("record not found")

// StationRepository handles database operations for the station network
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

const stationColumns = `station_id, name, longitude, latitude, lines_json, entry_count`

func scanStation(row interface{ Scan(...interface{}) error }) (models.Station, error) {
	var s models.Station
	var linesJSON string
	if err := row.Scan(&s.StationID, &s.Name, &s.Longitude, &s.Latitude, &linesJSON, &s.EntryCount); err != nil {
		return s, err
	}
	if err := json.Unmarshal([]byte(linesJSON), &s.Lines); err != nil {
		return s, fmt.Errorf("failed to decode lines of %s: %w", s.StationID, err)
	}
	return s, nil
}

// ListStations returns every station ordered by slug
func (r *StationRepository) ListStations(ctx context.Context) ([]models.Station, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+stationColumns+` FROM stations ORDER BY station_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// GetStationByID retrieves a single station by slug; nil when absent
func (r *StationRepository) GetStationByID(ctx context.Context, id string) (*models.Station, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+stationColumns+` FROM stations WHERE station_id = ?`, id)
	s, err := scanStation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	return &s, nil
}

// CountStations returns the number of stored stations
func (r *StationRepository) CountStations(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count stations: %w", err)
	}
	return count, nil
}

// ListEdges returns every edge in insertion order
func (r *StationRepository) ListEdges(ctx context.Context) ([]models.Edge, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, from_id, to_id, weight, line FROM edges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()

	var edges []models.Edge
	for rows.Next() {
		var e models.Edge
		if err := rows.Scan(&e.ID, &e.From, &e.To, &e.Weight, &e.Line); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// ReplaceNetwork swaps the whole station and edge dataset in one transaction
func (r *StationRepository) ReplaceNetwork(ctx context.Context, stations []models.Station, edges []models.Edge) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM edges`); err != nil {
			return fmt.Errorf("failed to clear edges: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
			return fmt.Errorf("failed to clear stations: %w", err)
		}

		stationStmt, err := tx.PrepareContext(ctx, `INSERT INTO stations (`+stationColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare station insert: %w", err)
		}
		defer stationStmt.Close()

		for _, s := range stations {
			lines := s.Lines
			if lines == nil {
				lines = []string{}
			}
			linesJSON, err := json.Marshal(lines)
			if err != nil {
				return fmt.Errorf("failed to encode lines of %s: %w", s.StationID, err)
			}
			if _, err := stationStmt.ExecContext(ctx, s.StationID, s.Name, s.Longitude, s.Latitude, string(linesJSON), s.EntryCount); err != nil {
				return fmt.Errorf("failed to insert station %s: %w", s.StationID, err)
			}
		}

		edgeStmt, err := tx.PrepareContext(ctx, `INSERT INTO edges (from_id, to_id, weight, line) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare edge insert: %w", err)
		}
		defer edgeStmt.Close()

		for _, e := range edges {
			if _, err := edgeStmt.ExecContext(ctx, e.From, e.To, e.Weight, e.Line); err != nil {
				return fmt.Errorf("failed to insert edge %s-%s: %w", e.From, e.To, err)
			}
		}
		return nil
	})
}
