package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fieldline/dayboard/core/model"
)

// SQLiteStore keeps schedule documents in a single sqlite table, one JSON
// blob per date.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schedules (
		date TEXT PRIMARY KEY,
		doc  TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Put upserts the document for the date.
func (s *SQLiteStore) Put(ctx context.Context, date string, doc model.ScheduleDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO schedules(date, doc) VALUES(?, ?)
		 ON CONFLICT(date) DO UPDATE SET doc = excluded.doc`,
		date, string(data))
	if err != nil {
		return fmt.Errorf("store document: %w", err)
	}
	return nil
}

// Get reads the document for the date; ErrNotFound when absent.
func (s *SQLiteStore) Get(ctx context.Context, date string) (model.ScheduleDocument, error) {
	var doc model.ScheduleDocument
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM schedules WHERE date = ?`, date).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("load document: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return doc, fmt.Errorf("decode document %s: %w", date, err)
	}
	return doc, nil
}

// Dates lists stored dates ascending.
func (s *SQLiteStore) Dates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM schedules ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	defer rows.Close()
	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
