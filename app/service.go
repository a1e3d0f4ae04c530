package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldline/dayboard/config"
	"github.com/fieldline/dayboard/core/board"
	coremetrics "github.com/fieldline/dayboard/core/metrics"
	"github.com/fieldline/dayboard/core/model"
	"github.com/fieldline/dayboard/core/rebuild"
	"github.com/fieldline/dayboard/infra/logger"
	"github.com/fieldline/dayboard/infra/metrics"
	"github.com/fieldline/dayboard/infra/mqtt"
	"github.com/fieldline/dayboard/infra/store"
	"github.com/fieldline/dayboard/internal/eventbus"
)

// Service wires the board, its collaborators and the downstream surfaces.
type Service struct {
	cfg       *config.Config
	reg       *model.Registry
	catalog   model.Catalog
	store     store.DocumentStore
	sink      coremetrics.MetricsSink
	bus       *eventbus.TypedBus[board.Event]
	publisher mqtt.Publisher
	rebuild   *rebuild.Service
	log       logger.Logger

	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	reg, err := cfg.BuildRegistry()
	if err != nil {
		return nil, fmt.Errorf("build roster: %w", err)
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub mqtt.Publisher
	if cfg.Publish.Enabled {
		pub, err = mqtt.NewPahoPublisher(cfg.Publish)
		if err != nil {
			return nil, fmt.Errorf("schedule publisher: %w", err)
		}
	}

	svc := &Service{
		cfg:         cfg,
		reg:         reg,
		catalog:     cfg.BuildCatalog(),
		store:       st,
		sink:        sink,
		bus:         eventbus.NewTyped[board.Event](),
		publisher:   pub,
		rebuild:     rebuild.New(st, reg, cfg.Board.DayStartHours(), logger.New("rebuild")),
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}
	return svc, nil
}

// Start launches the background surfaces: the metrics collector and, when
// enabled, the Prometheus server. It returns immediately.
func (s *Service) Start(ctx context.Context) {
	metrics.StartBoardCollector(ctx, s.bus, s.reg, s.sink)
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
}

// Registry returns the crew roster.
func (s *Service) Registry() *model.Registry { return s.reg }

// Board loads the board for a date, starting from the persisted document
// when one exists and from an empty board otherwise.
func (s *Service) Board(ctx context.Context, date string) (*board.Board, error) {
	doc, err := s.store.Get(ctx, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return board.New(date, s.reg, s.catalog, s.bus, s.log), nil
		}
		return nil, err
	}
	return board.FromDocument(date, doc, s.reg, s.catalog, s.bus, s.log), nil
}

// AutoAssign runs the planner on the board and records the placements.
func (s *Service) AutoAssign(b *board.Board) board.PlanResult {
	res := b.AutoAssign()
	if len(res.Placements) > 0 {
		results := make([]coremetrics.AssignmentResult, len(res.Placements))
		now := time.Now()
		for i, p := range res.Placements {
			results[i] = coremetrics.AssignmentResult{
				Date:      b.Date(),
				JobID:     p.Entry.ID,
				JobNumber: p.Entry.JobNumber,
				JobType:   p.Entry.JobType,
				CrewID:    p.CrewID,
				Zone:      p.Entry.ZoneHint,
				Hours:     p.Entry.Duration(),
				Score:     p.Score,
				ZoneMatch: p.ZoneMatch,
				Time:      now,
			}
		}
		if err := s.sink.RecordAssignments(results); err != nil {
			s.log.Errorf("record assignments: %v", err)
		}
	}
	return res
}

// Publish finalizes the board into a document, stores it, and pushes it to
// technician devices when a publisher is configured.
func (s *Service) Publish(ctx context.Context, b *board.Board, driveTime map[string][]int) (model.ScheduleDocument, error) {
	doc := b.Finalize(driveTime)
	if err := s.store.Put(ctx, b.Date(), doc); err != nil {
		return doc, fmt.Errorf("store document: %w", err)
	}

	jobs := 0
	for _, q := range doc.Schedule {
		jobs += len(q)
	}
	if pr, ok := s.sink.(coremetrics.PublishRecorder); ok {
		if err := pr.RecordPublish(coremetrics.PublishEvent{
			Date: b.Date(), Lanes: len(doc.Lanes), Jobs: jobs, Time: time.Now(),
		}); err != nil {
			s.log.Errorf("record publish: %v", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishBoard(b.Date(), doc); err != nil {
			return doc, fmt.Errorf("push board: %w", err)
		}
		for _, lane := range doc.Lanes {
			stops, err := s.rebuild.Lane(ctx, b.Date(), lane.ID)
			if err != nil {
				return doc, err
			}
			if err := s.publisher.PublishTimeline(b.Date(), lane.ID, stops); err != nil {
				return doc, fmt.Errorf("push timeline %s: %w", lane.ID, err)
			}
		}
	}
	s.log.Infof("published schedule for %s: %d lane(s), %d job(s)", b.Date(), len(doc.Lanes), jobs)
	return doc, nil
}

// Timelines reconstructs every crew's route for the date.
func (s *Service) Timelines(ctx context.Context, date string) (map[string][]rebuild.Stop, error) {
	return s.rebuild.Day(ctx, date)
}

// Timeline reconstructs one crew's route for the date.
func (s *Service) Timeline(ctx context.Context, date, crewID string) ([]rebuild.Stop, error) {
	return s.rebuild.Lane(ctx, date, crewID)
}

// Bus exposes the board event bus for observers.
func (s *Service) Bus() *eventbus.TypedBus[board.Event] { return s.bus }

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	s.bus.Close()
	return s.store.Close()
}
