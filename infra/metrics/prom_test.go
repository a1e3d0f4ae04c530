package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/fieldline/dayboard/core/metrics"
)

func newTestPromSink(t *testing.T) *PromSink {
	t.Helper()
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	return sink.(*PromSink)
}

func TestPromSinkRecordsAssignments(t *testing.T) {
	sink := newTestPromSink(t)
	err := sink.RecordAssignments([]coremetrics.AssignmentResult{
		{CrewID: "crew-1", JobType: "install", Hours: 4, ZoneMatch: true},
		{CrewID: "crew-1", JobType: "install", Hours: 4, ZoneMatch: true},
		{CrewID: "crew-2", JobType: "service", Hours: 1.5, ZoneMatch: false},
	})
	require.NoError(t, err)

	got := testutil.ToFloat64(sink.assignments.WithLabelValues("crew-1", "install", "true"))
	require.Equal(t, 2.0, got)
	got = testutil.ToFloat64(sink.assignments.WithLabelValues("crew-2", "service", "false"))
	require.Equal(t, 1.0, got)
}

func TestPromSinkGauges(t *testing.T) {
	sink := newTestPromSink(t)
	require.NoError(t, sink.RecordPoolSize(3))
	require.Equal(t, 3.0, testutil.ToFloat64(sink.pool))

	require.NoError(t, sink.RecordUtilization("crew-1", 6.5, 8))
	require.Equal(t, 6.5, testutil.ToFloat64(sink.utilization.WithLabelValues("crew-1")))

	require.NoError(t, sink.RecordPublish(coremetrics.PublishEvent{Date: "2026-03-02"}))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.publishes))
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	// The second sink must reuse the registered collectors, so what it
	// records is visible through the scraped instances.
	require.NoError(t, second.RecordAssignments([]coremetrics.AssignmentResult{
		{CrewID: "crew-1", JobType: "install", Hours: 4, ZoneMatch: true},
	}))
	got := testutil.ToFloat64(first.(*PromSink).assignments.WithLabelValues("crew-1", "install", "true"))
	require.Equal(t, 1.0, got)
}
