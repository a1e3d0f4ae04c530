package rebuild

import (
	"context"
	"errors"
	"math"

	"github.com/fieldline/dayboard/core/board"
	"github.com/fieldline/dayboard/core/logger"
	"github.com/fieldline/dayboard/core/model"
	"github.com/fieldline/dayboard/infra/store"
)

// Stop is one job on a technician's reconstructed route, annotated with its
// absolute start time and the drive that precedes it.
type Stop struct {
	Entry            model.JobEntry
	StartHours       float64
	DriveTimeMinutes int
	RouteOrder       int
}

// Service is the read-only consumer of persisted schedule documents. It
// rebuilds absolute appointment times for the technician-facing timeline
// using the same accumulation routine and the same per-crew day starts as
// the interactive board, so a published day can never disagree with what
// the planner saw.
type Service struct {
	store    store.DocumentStore
	reg      *model.Registry
	dayStart float64
	log      logger.Logger
}

// New creates a reconstruction service. Lane day starts are resolved from
// the roster; dayStart (hours since midnight, zero selects the shared
// default) covers lanes the roster no longer knows. reg may be nil.
func New(st store.DocumentStore, reg *model.Registry, dayStart float64, log logger.Logger) *Service {
	if dayStart == 0 {
		dayStart = model.DefaultDayStartHours
	}
	return &Service{store: st, reg: reg, dayStart: dayStart, log: log}
}

// laneStart returns the day start for one lane: the crew's own when the
// lane is still in the roster, the service fallback otherwise.
func (s *Service) laneStart(laneID string) float64 {
	if s.reg != nil {
		if c, ok := s.reg.Get(laneID); ok {
			return c.DayStartHours
		}
	}
	return s.dayStart
}

// Day loads the document for the date and reconstructs every lane. A date
// with no published schedule yields an empty map, not an error.
func (s *Service) Day(ctx context.Context, date string) (map[string][]Stop, error) {
	doc, err := s.store.Get(ctx, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.Debugf("no schedule published for %s", date)
			return map[string][]Stop{}, nil
		}
		return nil, err
	}
	out := make(map[string][]Stop, len(doc.Lanes))
	for _, lane := range doc.Lanes {
		out[lane.ID] = s.lane(doc, lane.ID)
	}
	return out, nil
}

// Lane reconstructs a single crew's route. An unpublished date or an absent
// lane yields an empty route.
func (s *Service) Lane(ctx context.Context, date, laneID string) ([]Stop, error) {
	doc, err := s.store.Get(ctx, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.lane(doc, laneID), nil
}

// lane walks one lane's stored queue with the shared accumulator: drive leg
// first, then the job. Missing or short leg arrays read as zero drive.
// Finalized documents carry no custom-start overrides on this path.
func (s *Service) lane(doc model.ScheduleDocument, laneID string) []Stop {
	jobs := doc.LaneJobs(laneID)
	legs := doc.LaneLegs(laneID)

	durations := make([]float64, len(jobs))
	legHours := make([]float64, len(jobs))
	for i, j := range jobs {
		durations[i] = j.Duration()
		legHours[i] = float64(legs.Leg(i)) / 3600
	}
	slots := board.Accumulate(s.laneStart(laneID), durations, legHours, nil)

	stops := make([]Stop, len(jobs))
	for i, j := range jobs {
		stops[i] = Stop{
			Entry:            j,
			StartHours:       slots[i].Start,
			DriveTimeMinutes: int(math.Round(float64(legs.Leg(i)) / 60)),
			RouteOrder:       i + 1,
		}
	}
	return stops
}
