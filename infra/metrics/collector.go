package metrics

import (
	"context"

	"github.com/fieldline/dayboard/core/board"
	coremetrics "github.com/fieldline/dayboard/core/metrics"
	"github.com/fieldline/dayboard/core/model"
	"github.com/fieldline/dayboard/internal/eventbus"
)

// StartBoardCollector subscribes to board events and keeps the utilization
// and pool gauges current after every mutation. It stops when the context
// is canceled.
func StartBoardCollector(ctx context.Context, bus *eventbus.TypedBus[board.Event], reg *model.Registry, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				record(ev, reg, sink)
			}
		}
	}()
}

func record(ev board.Event, reg *model.Registry, sink coremetrics.MetricsSink) {
	if pr, ok := sink.(coremetrics.PoolSizeRecorder); ok {
		_ = pr.RecordPoolSize(len(ev.Snapshot.Pool))
	}
	ur, ok := sink.(coremetrics.UtilizationRecorder)
	if !ok {
		return
	}
	for crewID, queue := range ev.Snapshot.Queues {
		total := 0.0
		for _, e := range queue {
			total += e.Duration()
		}
		capacity := 0.0
		if reg != nil {
			if c, ok := reg.Get(crewID); ok {
				capacity = c.MaxDailyHours
			}
		}
		_ = ur.RecordUtilization(crewID, total, capacity)
	}
}
