/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mikeb26/pdga-ratingest/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

var _ storage.HistoryStore = (*Store)(nil)

// Open opens (creating if needed) the sqlite database at path and brings its
// schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%v?cache=shared", path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %v: %w", path, err)
	}
	if err := up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %v: %w", path, err)
	}
	return &Store{db: db}, nil
}

func up(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	databaseDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "pdgaest",
		databaseDriver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Save stores rec, assigning an ID and timestamp if they are unset.
func (s *Store) Save(ctx context.Context,
	rec storage.Record) (storage.Record, error) {

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.EstimatedAt.IsZero() {
		rec.EstimatedAt = time.Now()
	}
	rec.EstimatedAt = rec.EstimatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `INSERT INTO estimates
		(id, pdga_num, estimated_at, current_rating, estimated_rating, counted, manual)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.PdgaNum, rec.EstimatedAt, rec.CurrentRating,
		rec.EstimatedRating, rec.Counted, rec.Manual)
	if err != nil {
		return storage.Record{}, fmt.Errorf("saving estimate for %v: %w",
			rec.PdgaNum, err)
	}
	return rec, nil
}

// List returns up to limit estimates for pdgaNum, newest first.
func (s *Store) List(ctx context.Context, pdgaNum int,
	limit int) ([]storage.Record, error) {

	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, pdga_num, estimated_at,
		current_rating, estimated_rating, counted, manual
		FROM estimates WHERE pdga_num = ?
		ORDER BY estimated_at DESC LIMIT ?`, pdgaNum, limit)
	if err != nil {
		return nil, fmt.Errorf("listing estimates for %v: %w", pdgaNum, err)
	}
	defer rows.Close()

	var out []storage.Record
	for rows.Next() {
		var rec storage.Record
		var id string
		if err := rows.Scan(&id, &rec.PdgaNum, &rec.EstimatedAt,
			&rec.CurrentRating, &rec.EstimatedRating, &rec.Counted,
			&rec.Manual); err != nil {
			return nil, err
		}
		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("bad estimate id %q: %w", id, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
