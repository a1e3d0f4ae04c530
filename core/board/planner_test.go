package board

import (
	"testing"

	"github.com/fieldline/dayboard/core/model"
)

func newTestBoard(t *testing.T, crews ...model.Crew) *Board {
	t.Helper()
	return New("2026-03-02", testRegistry(t, crews...), model.DefaultCatalog(), nil, nil)
}

func pooled(hours float64, jobType, zone string) model.JobEntry {
	e := model.NewJobEntry()
	e.JobType = jobType
	e.Hours = hours
	e.ZoneHint = zone
	return e
}

func TestPlanningOrder(t *testing.T) {
	cat := model.DefaultCatalog()
	pool := []model.JobEntry{
		pooled(1, "service", ""),
		pooled(4, "install", ""),
		pooled(2, "emergency", ""),
		pooled(3, "install", ""),
	}
	order := orderForPlanning(pool, cat)
	// Emergency first, then by duration descending.
	want := []int{2, 1, 3, 0}
	for i, idx := range order {
		if idx != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestAutoAssignRespectsRunningCapacity(t *testing.T) {
	// One crew with 5h free. Two 3h jobs arrive: the second must see the
	// capacity the first consumed mid-pass, not the snapshot.
	b := newTestBoard(t, model.Crew{ID: "a", MaxDailyHours: 5})
	b.AddToPool(pooled(3, "install", ""))
	b.AddToPool(pooled(3, "install", ""))

	res := b.AutoAssign()
	if res.Assigned != 1 || res.Unassigned != 1 {
		t.Fatalf("assigned=%d unassigned=%d, want 1/1", res.Assigned, res.Unassigned)
	}
	if len(b.Queue("a")) != 1 {
		t.Fatalf("queue has %d jobs, want 1", len(b.Queue("a")))
	}
	if len(b.Pool()) != 1 {
		t.Fatalf("pool has %d jobs, want 1", len(b.Pool()))
	}
}

func TestAutoAssignNeverOverbooks(t *testing.T) {
	b := newTestBoard(t,
		model.Crew{ID: "a", MaxDailyHours: 4},
		model.Crew{ID: "b", MaxDailyHours: 6},
	)
	for _, h := range []float64{3, 2.5, 2, 1.5, 1, 1} {
		b.AddToPool(pooled(h, "service", ""))
	}
	b.AutoAssign()

	for _, c := range b.Registry().All() {
		l := Load(c, b.Queue(c.ID))
		if l.Available < 0 {
			t.Fatalf("crew %s overbooked: %.2fh over", c.ID, -l.Available)
		}
	}
}

func TestAutoAssignPrefersZoneMatch(t *testing.T) {
	b := newTestBoard(t,
		model.Crew{ID: "north", Zone: "Zone 1", MaxDailyHours: 8},
		model.Crew{ID: "south", Zone: "Zone 2", MaxDailyHours: 8},
	)
	b.AddToPool(pooled(2, "service", "Zone 2"))

	res := b.AutoAssign()
	if res.Assigned != 1 {
		t.Fatalf("assigned = %d", res.Assigned)
	}
	// south: 8*2+50=66 beats north: 16.
	if res.Placements[0].CrewID != "south" {
		t.Fatalf("placed on %s, want south", res.Placements[0].CrewID)
	}
	if !res.Placements[0].ZoneMatch {
		t.Fatalf("placement should record the zone match")
	}
}

func TestAutoAssignHardCapacityFilter(t *testing.T) {
	// Unlike single-job recommendations, the batch pass never places a
	// job a crew cannot fit, zone match or not.
	b := newTestBoard(t,
		model.Crew{ID: "match", Zone: "Zone 1", MaxDailyHours: 1},
		model.Crew{ID: "other", Zone: "Zone 2", MaxDailyHours: 8},
	)
	b.AddToPool(pooled(4, "install", "Zone 1"))

	res := b.AutoAssign()
	if res.Assigned != 1 || res.Placements[0].CrewID != "other" {
		t.Fatalf("placements = %+v, want other", res.Placements)
	}
}

func TestAutoAssignClearsCustomStart(t *testing.T) {
	b := newTestBoard(t, model.Crew{ID: "a", MaxDailyHours: 8})
	e := pooled(2, "service", "")
	e.CustomStart = "13:00"
	b.AddToPool(e)

	b.AutoAssign()
	q := b.Queue("a")
	if len(q) != 1 || q[0].CustomStart != "" {
		t.Fatalf("queue = %+v, want one auto-timed entry", q)
	}
}

func TestAutoAssignUnplaceableStaysPooled(t *testing.T) {
	b := newTestBoard(t, model.Crew{ID: "a", MaxDailyHours: 2})
	keep := pooled(5, "install", "")
	b.AddToPool(keep)
	b.AddToPool(pooled(1, "service", ""))

	res := b.AutoAssign()
	if res.Assigned != 1 || res.Unassigned != 1 {
		t.Fatalf("assigned=%d unassigned=%d", res.Assigned, res.Unassigned)
	}
	pool := b.Pool()
	if len(pool) != 1 || pool[0].ID != keep.ID {
		t.Fatalf("pool = %+v, want the oversized job", pool)
	}
}

func TestAutoAssignEmptyPool(t *testing.T) {
	b := newTestBoard(t, model.Crew{ID: "a"})
	res := b.AutoAssign()
	if res.Assigned != 0 || res.Unassigned != 0 || len(res.Placements) != 0 {
		t.Fatalf("result = %+v, want zeroes", res)
	}
}
