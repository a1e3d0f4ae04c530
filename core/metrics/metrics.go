package metrics

import "time"

// AssignmentResult represents one job placed by the planner, to be recorded
// for observability purposes.
type AssignmentResult struct {
	Date      string
	JobID     string
	JobNumber string
	JobType   string
	CrewID    string
	Zone      string
	Hours     float64
	Score     float64
	ZoneMatch bool
	Time      time.Time
}

// MetricsSink records assignment results.
type MetricsSink interface {
	RecordAssignments(results []AssignmentResult) error
}

// PublishEvent captures a finalized schedule document being written.
type PublishEvent struct {
	Date  string
	Lanes int
	Jobs  int
	Time  time.Time
}

// PublishRecorder records finalize/publish events.
type PublishRecorder interface {
	RecordPublish(ev PublishEvent) error
}

// PoolSizeRecorder is implemented by sinks able to track the unassigned
// pool size after a planner pass.
type PoolSizeRecorder interface {
	RecordPoolSize(size int) error
}

// UtilizationRecorder records per-crew utilization.
type UtilizationRecorder interface {
	RecordUtilization(crewID string, scheduled, capacity float64) error
}

// NopSink implements all recorder interfaces with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssignments([]AssignmentResult) error       { return nil }
func (NopSink) RecordPublish(PublishEvent) error                 { return nil }
func (NopSink) RecordPoolSize(int) error                         { return nil }
func (NopSink) RecordUtilization(string, float64, float64) error { return nil }
