package metrics

import coremetrics "github.com/fieldline/dayboard/core/metrics"

// MultiSink fans board events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignments forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordAssignments(res []coremetrics.AssignmentResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignments(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordPublish forwards publish events to sinks that support them.
func (m *MultiSink) RecordPublish(ev coremetrics.PublishEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.PublishRecorder); ok {
			if err := rec.RecordPublish(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordPoolSize forwards the pool gauge to sinks that support it.
func (m *MultiSink) RecordPoolSize(size int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.PoolSizeRecorder); ok {
			if err := rec.RecordPoolSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordUtilization forwards per-crew utilization to sinks that support it.
func (m *MultiSink) RecordUtilization(crewID string, scheduled, capacity float64) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.UtilizationRecorder); ok {
			if err := rec.RecordUtilization(crewID, scheduled, capacity); err != nil {
				return err
			}
		}
	}
	return nil
}
