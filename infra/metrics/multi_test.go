package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	coremetrics "github.com/fieldline/dayboard/core/metrics"
)

// fakeSink records everything it receives.
type fakeSink struct {
	assignments [][]coremetrics.AssignmentResult
	publishes   []coremetrics.PublishEvent
	poolSizes   []int
	err         error
}

func (f *fakeSink) RecordAssignments(res []coremetrics.AssignmentResult) error {
	f.assignments = append(f.assignments, res)
	return f.err
}

func (f *fakeSink) RecordPublish(ev coremetrics.PublishEvent) error {
	f.publishes = append(f.publishes, ev)
	return f.err
}

func (f *fakeSink) RecordPoolSize(size int) error {
	f.poolSizes = append(f.poolSizes, size)
	return f.err
}

// narrowSink only implements the base MetricsSink interface.
type narrowSink struct {
	calls int
}

func (n *narrowSink) RecordAssignments([]coremetrics.AssignmentResult) error {
	n.calls++
	return nil
}

func TestMultiSinkFansOut(t *testing.T) {
	a, b := &fakeSink{}, &fakeSink{}
	multi := NewMultiSink(a, b)

	res := []coremetrics.AssignmentResult{{CrewID: "crew-1", JobType: "install"}}
	require.NoError(t, multi.RecordAssignments(res))
	require.Len(t, a.assignments, 1)
	require.Len(t, b.assignments, 1)

	require.NoError(t, multi.RecordPublish(coremetrics.PublishEvent{Date: "2026-03-02"}))
	require.Len(t, a.publishes, 1)
	require.Len(t, b.publishes, 1)

	require.NoError(t, multi.RecordPoolSize(4))
	require.Equal(t, []int{4}, a.poolSizes)
	require.Equal(t, []int{4}, b.poolSizes)
}

func TestMultiSinkSkipsNarrowSinks(t *testing.T) {
	narrow := &narrowSink{}
	full := &fakeSink{}
	multi := NewMultiSink(narrow, full)

	require.NoError(t, multi.RecordPublish(coremetrics.PublishEvent{}))
	require.NoError(t, multi.RecordPoolSize(1))
	require.Len(t, full.publishes, 1)
	require.Equal(t, []int{1}, full.poolSizes)

	require.NoError(t, multi.RecordAssignments(nil))
	require.Equal(t, 1, narrow.calls)
}

func TestMultiSinkReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	failing := &fakeSink{err: boom}
	after := &fakeSink{}
	multi := NewMultiSink(failing, after)

	err := multi.RecordAssignments([]coremetrics.AssignmentResult{{}})
	require.ErrorIs(t, err, boom)
	require.Empty(t, after.assignments)
}
