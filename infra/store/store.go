package store

import (
	"context"
	"errors"

	"github.com/fieldline/dayboard/core/model"
)

// ErrNotFound is returned when no schedule document exists for a date.
// Callers on the read-only path degrade it to an empty day.
var ErrNotFound = errors.New("schedule document not found")

// DocumentStore persists schedule documents keyed by calendar date
// ("YYYY-MM-DD"). The editor writes on finalize; the reconstruction service
// only reads.
type DocumentStore interface {
	Put(ctx context.Context, date string, doc model.ScheduleDocument) error
	Get(ctx context.Context, date string) (model.ScheduleDocument, error)
	Dates(ctx context.Context) ([]string, error)
	Close() error
}

// Config selects and locates the document store backend.
type Config struct {
	// Backend selects the store type: "file" or "sqlite".
	Backend string `json:"backend"`
	// Path is the root directory for the file backend, or the database
	// file for the sqlite backend.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "file"
	}
	if c.Path == "" {
		if c.Backend == "sqlite" {
			c.Path = "dayboard.db"
		} else {
			c.Path = "schedules"
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Backend != "file" && c.Backend != "sqlite" {
		return errors.New("unknown store backend " + c.Backend)
	}
	if c.Path == "" {
		return errors.New("store path is required")
	}
	return nil
}

// Open creates the configured backend.
func Open(cfg Config) (DocumentStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case "sqlite":
		return OpenSQLite(cfg.Path)
	default:
		return NewFileStore(cfg.Path)
	}
}
