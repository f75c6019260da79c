// Package postgres persists entity records in Postgres. Records keep their
// pipe-delimited line form; each kind is a logically separate, ordered
// collection inside one table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/blip-cmd/xpense/internal/persistence"
)

const delimiter = "|"

// Open connects to Postgres through the pgx stdlib driver.
func Open(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the records table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS records (
			kind TEXT NOT NULL,
			position INT NOT NULL,
			line TEXT NOT NULL,
			PRIMARY KEY (kind, position)
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: creating schema: %v", persistence.ErrPersistence, err)
	}

	return nil
}

func (s *Store) Load(ctx context.Context, kind persistence.Kind) ([]persistence.Record, error) {
	query := `SELECT line FROM records WHERE kind = $1 ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %v", persistence.ErrPersistence, kind, err)
	}
	defer rows.Close()

	var records []persistence.Record

	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("%w: scanning %s: %v", persistence.ErrPersistence, kind, err)
		}

		records = append(records, strings.Split(line, delimiter))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %s: %v", persistence.ErrPersistence, kind, err)
	}

	return records, nil
}

// Save replaces the stored collection for a kind inside one database
// transaction, preserving record order via the position column.
func (s *Store) Save(ctx context.Context, kind persistence.Kind, records []persistence.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning save of %s: %v", persistence.ErrPersistence, kind, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE kind = $1`, string(kind)); err != nil {
		return fmt.Errorf("%w: clearing %s: %v", persistence.ErrPersistence, kind, err)
	}

	insert := `INSERT INTO records (kind, position, line) VALUES ($1, $2, $3)`

	for i, record := range records {
		if _, err := tx.ExecContext(ctx, insert, string(kind), i, strings.Join(record, delimiter)); err != nil {
			return fmt.Errorf("%w: writing %s: %v", persistence.ErrPersistence, kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing %s: %v", persistence.ErrPersistence, kind, err)
	}

	return nil
}
