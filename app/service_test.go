package app

import (
	"context"
	"math"
	"testing"

	"github.com/fieldline/dayboard/config"
	"github.com/fieldline/dayboard/core/board"
	coremetrics "github.com/fieldline/dayboard/core/metrics"
	"github.com/fieldline/dayboard/core/model"
	"github.com/fieldline/dayboard/core/rebuild"
	"github.com/fieldline/dayboard/infra/logger"
	"github.com/fieldline/dayboard/infra/mqtt"
	"github.com/fieldline/dayboard/infra/store"
	"github.com/fieldline/dayboard/internal/eventbus"
)

func testService(t *testing.T) (*Service, *mqtt.MockPublisher) {
	t.Helper()
	cfg := &config.Config{
		Board: config.BoardConfig{},
		Crews: []config.CrewConfig{
			{ID: "crew-1", Name: "Alpha", Zone: "Zone 1"},
			{ID: "crew-2", Name: "Bravo", Zone: "Zone 2"},
		},
	}
	cfg.Board.SetDefaults()
	reg, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	pub := mqtt.NewMockPublisher()
	log := logger.NopLogger{}
	svc := &Service{
		cfg:       cfg,
		reg:       reg,
		catalog:   cfg.BuildCatalog(),
		store:     st,
		sink:      coremetrics.NopSink{},
		bus:       eventbus.NewTyped[board.Event](),
		publisher: pub,
		rebuild:   rebuild.New(st, reg, cfg.Board.DayStartHours(), log),
		log:       log,
	}
	t.Cleanup(func() { svc.Close() })
	return svc, pub
}

func TestBoardStartsEmptyForNewDate(t *testing.T) {
	svc, _ := testService(t)
	b, err := svc.Board(context.Background(), "2026-03-02")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(b.Queue("crew-1")) != 0 || len(b.Pool()) != 0 {
		t.Fatalf("new board not empty")
	}
}

func TestPublishAndReload(t *testing.T) {
	svc, pub := testService(t)
	ctx := context.Background()
	b, err := svc.Board(ctx, "2026-03-02")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	id, err := b.AddEntry("crew-1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := b.PopulateEntry(id, "install"); err != nil {
		t.Fatalf("populate: %v", err)
	}

	doc, err := svc.Publish(ctx, b, map[string][]int{"crew-1": {900}})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(doc.Lanes) != 2 {
		t.Fatalf("lanes = %d", len(doc.Lanes))
	}
	if _, ok := pub.Boards["2026-03-02"]; !ok {
		t.Fatalf("board not pushed to publisher")
	}
	if _, ok := pub.Timelines["crew-1/2026-03-02"]; !ok {
		t.Fatalf("crew timeline not pushed")
	}

	// The reloaded board carries the persisted queue.
	reloaded, err := svc.Board(ctx, "2026-03-02")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Queue("crew-1"); len(got) != 1 || got[0].Hours != 4.0 {
		t.Fatalf("reloaded queue = %+v", got)
	}
}

func TestTimelineReconstruction(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	b, _ := svc.Board(ctx, "2026-03-02")
	id, _ := b.AddEntry("crew-1")
	if err := b.PopulateEntry(id, "service"); err != nil {
		t.Fatalf("populate: %v", err)
	}
	id2, _ := b.AddEntry("crew-1")
	if err := b.PopulateEntry(id2, "maintenance"); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if _, err := svc.Publish(ctx, b, map[string][]int{"crew-1": {600, 300}}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	stops, err := svc.Timeline(ctx, "2026-03-02", "crew-1")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("stops = %d", len(stops))
	}
	// 08:00 + 10m drive = 08:10; + 1.5h service + 5m drive = 09:45.
	if math.Abs(stops[0].StartHours-(8.0+600.0/3600)) > 1e-9 {
		t.Fatalf("stop 0 start = %v", stops[0].StartHours)
	}
	if math.Abs(stops[1].StartHours-9.75) > 1e-9 {
		t.Fatalf("stop 1 start = %v", stops[1].StartHours)
	}

	day, err := svc.Timelines(ctx, "2026-03-02")
	if err != nil {
		t.Fatalf("timelines: %v", err)
	}
	if len(day["crew-1"]) != 2 || len(day["crew-2"]) != 0 {
		t.Fatalf("day = %v", day)
	}
}

func TestPublishedTimelineMatchesEditorWithCrewDayStart(t *testing.T) {
	svc, _ := testService(t)
	svc.cfg.Crews[0].DayStart = "07:00"
	reg, err := svc.cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	svc.reg = reg
	svc.rebuild = rebuild.New(svc.store, reg, svc.cfg.Board.DayStartHours(), logger.NopLogger{})

	ctx := context.Background()
	b, err := svc.Board(ctx, "2026-03-02")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	id, _ := b.AddEntry("crew-1")
	if err := b.PopulateEntry(id, "install"); err != nil {
		t.Fatalf("populate: %v", err)
	}

	tl, err := b.CrewTimeline("crew-1")
	if err != nil {
		t.Fatalf("editor timeline: %v", err)
	}
	if _, err := svc.Publish(ctx, b, nil); err != nil {
		t.Fatalf("publish: %v", err)
	}
	stops, err := svc.Timeline(ctx, "2026-03-02", "crew-1")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if math.Abs(stops[0].StartHours-7.0) > 1e-9 {
		t.Fatalf("published start = %v, want 7.0", stops[0].StartHours)
	}
	if math.Abs(stops[0].StartHours-tl[0].Slot.Start) > 1e-9 {
		t.Fatalf("published start %v disagrees with editor %v", stops[0].StartHours, tl[0].Slot.Start)
	}
}

func TestAutoAssignRecordsPlacements(t *testing.T) {
	svc, _ := testService(t)
	rec := &recordingSink{}
	svc.sink = rec

	b, _ := svc.Board(context.Background(), "2026-03-02")
	e := model.NewJobEntry()
	e.Populate("service", b.Catalog())
	b.AddToPool(e)

	res := svc.AutoAssign(b)
	if res.Assigned != 1 {
		t.Fatalf("assigned = %d", res.Assigned)
	}
	if len(rec.results) != 1 || rec.results[0].JobType != "service" {
		t.Fatalf("sink results = %+v", rec.results)
	}
	if rec.results[0].Date != "2026-03-02" {
		t.Fatalf("result date = %q", rec.results[0].Date)
	}
}

type recordingSink struct {
	results []coremetrics.AssignmentResult
}

func (r *recordingSink) RecordAssignments(res []coremetrics.AssignmentResult) error {
	r.results = append(r.results, res...)
	return nil
}
