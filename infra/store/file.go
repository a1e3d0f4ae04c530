package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/fieldline/dayboard/core/model"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FileStore keeps one JSON document per date under a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) path(date string) (string, error) {
	if !datePattern.MatchString(date) {
		return "", fmt.Errorf("invalid date %q", date)
	}
	return filepath.Join(s.root, date+".json"), nil
}

// Put writes the document atomically via a temp file rename.
func (s *FileStore) Put(ctx context.Context, date string, doc model.ScheduleDocument) error {
	path, err := s.path(date)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return os.Rename(tmp, path)
}

// Get reads the document for the date; ErrNotFound when absent.
func (s *FileStore) Get(ctx context.Context, date string) (model.ScheduleDocument, error) {
	var doc model.ScheduleDocument
	path, err := s.path(date)
	if err != nil {
		return doc, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, ErrNotFound
		}
		return doc, fmt.Errorf("read document: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode document %s: %w", date, err)
	}
	return doc, nil
}

// Dates lists the dates with a stored document, sorted ascending.
func (s *FileStore) Dates(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list store dir: %w", err)
	}
	var dates []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if datePattern.MatchString(date) {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
