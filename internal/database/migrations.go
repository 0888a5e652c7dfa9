package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// Migration is one numbered schema change, e.g. migrations/001_init.sql
type Migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

// Migrator applies embedded SQL migrations and records them in the migrations table
type Migrator struct {
	db    *sql.DB
	files fs.FS
}

// NewMigrator creates a migrator reading *.sql files from the migrations directory of files
func NewMigrator(db *sql.DB, files fs.FS) *Migrator {
	return &Migrator{db: db, files: files}
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			checksum TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// applied returns the recorded checksum per version
func (m *Migrator) applied(ctx context.Context) (map[int]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version, checksum FROM migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	done := make(map[int]string)
	for rows.Next() {
		var version int
		var checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		done[version] = checksum
	}
	return done, rows.Err()
}

// Load reads and sorts the migration files. Files not named NNN_name.sql are skipped.
func (m *Migrator) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(m.files, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".sql")
		if entry.IsDir() || !ok {
			continue
		}
		prefix, _, _ := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil {
			log.Printf("Warning: skipping migration file with invalid name: %s", entry.Name())
			continue
		}

		content, err := fs.ReadFile(m.files, path.Join(migrationsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		sum := sha256.Sum256(content)

		migrations = append(migrations, Migration{
			Version:  version,
			Name:     name,
			SQL:      string(content),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	return Transaction(ctx, m.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
			return fmt.Errorf("failed to execute migration %d: %w", mig.Version, err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO migrations (version, name, checksum, applied_at) VALUES (?, ?, ?, ?)`,
			mig.Version, mig.Name, mig.Checksum, time.Now().UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", mig.Version, err)
		}
		return nil
	})
}

// Up applies every pending migration in version order and returns how many ran.
// An applied migration whose file has since changed is an error.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}

	done, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	migrations, err := m.Load()
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, mig := range migrations {
		if checksum, ok := done[mig.Version]; ok {
			if checksum != mig.Checksum {
				return ran, fmt.Errorf("migration %s was modified after being applied", mig.Name)
			}
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return ran, err
		}
		log.Printf("Applied migration %d: %s", mig.Version, mig.Name)
		ran++
	}
	return ran, nil
}
