package mqtt

import (
	"sync"

	"github.com/fieldline/dayboard/core/model"
	"github.com/fieldline/dayboard/core/rebuild"
)

// MockPublisher is a simple in-memory publisher used in tests.
type MockPublisher struct {
	mu        sync.Mutex
	Boards    map[string]model.ScheduleDocument
	Timelines map[string][]rebuild.Stop // keyed by crewID/date
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Boards:    make(map[string]model.ScheduleDocument),
		Timelines: make(map[string][]rebuild.Stop),
	}
}

// PublishBoard records the document under its date.
func (m *MockPublisher) PublishBoard(date string, doc model.ScheduleDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Boards[date] = doc
	return nil
}

// PublishTimeline records the stops under crewID/date.
func (m *MockPublisher) PublishTimeline(date, crewID string, stops []rebuild.Stop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Timelines[crewID+"/"+date] = stops
	return nil
}

// Close is a no-op.
func (m *MockPublisher) Close() {}
