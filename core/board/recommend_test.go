package board

import (
	"math"
	"testing"

	"github.com/fieldline/dayboard/core/model"
)

func loadWith(id, zone string, available float64) CrewLoad {
	max := 8.0
	return CrewLoad{
		Crew:      model.Crew{ID: id, Name: id, Zone: zone, MaxDailyHours: max, DayStartHours: 8},
		Scheduled: max - available,
		Available: available,
	}
}

func TestRecommendRanking(t *testing.T) {
	// Job 3.0h, zone hint "Zone 2"; Bravo fits with 5h free, Charlie is
	// full. Bravo: 50+30+10=90. Charlie stays listed at 50-100=-50.
	e := job(3.0)
	e.ZoneHint = "Zone 2"
	loads := []CrewLoad{
		loadWith("charlie", "Zone 2", 0),
		loadWith("bravo", "Zone 2", 5),
	}
	recs := Recommend(e, loads)
	if recs[0].Crew.ID != "bravo" || math.Abs(recs[0].Score-90) > 1e-9 {
		t.Fatalf("top = %s score %v, want bravo 90", recs[0].Crew.ID, recs[0].Score)
	}
	if recs[1].Crew.ID != "charlie" || math.Abs(recs[1].Score-(-50)) > 1e-9 {
		t.Fatalf("second = %s score %v, want charlie -50", recs[1].Crew.ID, recs[1].Score)
	}
}

func TestRecommendAvailabilityBonusCapped(t *testing.T) {
	e := job(1.0)
	loads := []CrewLoad{loadWith("a", "", 15)}
	recs := Recommend(e, loads)
	// 30 for fitting plus the capped 20 bonus.
	if math.Abs(recs[0].Score-50) > 1e-9 {
		t.Fatalf("score = %v, want 50", recs[0].Score)
	}
}

func TestRecommendSoftPenaltyKeepsCrewListed(t *testing.T) {
	e := job(6.0)
	loads := []CrewLoad{
		loadWith("a", "", 2),
		loadWith("b", "", 1),
	}
	recs := Recommend(e, loads)
	if len(recs) != 2 {
		t.Fatalf("crews excluded from ranking: %d", len(recs))
	}
	for _, r := range recs {
		if r.Fits {
			t.Fatalf("%s should not fit a 6h job", r.Crew.ID)
		}
	}
}

func TestBestCrewPrefersFit(t *testing.T) {
	e := job(4.0)
	e.ZoneHint = "north"
	loads := []CrewLoad{
		loadWith("close", "north", 2), // zone match but cannot fit
		loadWith("far", "south", 6),   // fits
	}
	crew, noCapacity, ok := BestCrew(e, loads)
	if !ok || noCapacity {
		t.Fatalf("ok=%v noCapacity=%v", ok, noCapacity)
	}
	if crew.ID != "far" {
		t.Fatalf("best = %s, want far", crew.ID)
	}
}

func TestBestCrewFallbackWhenNothingFits(t *testing.T) {
	e := job(8.0)
	e.ZoneHint = "north"
	loads := []CrewLoad{
		loadWith("a", "north", 1),
		loadWith("b", "south", 2),
	}
	crew, noCapacity, ok := BestCrew(e, loads)
	if !ok || !noCapacity {
		t.Fatalf("ok=%v noCapacity=%v, want true/true", ok, noCapacity)
	}
	// a: 50-100+2=-48, b: -100+4=-96. Top scorer wins the fallback.
	if crew.ID != "a" {
		t.Fatalf("fallback = %s, want a", crew.ID)
	}
}

func TestBestCrewEmptyRoster(t *testing.T) {
	if _, _, ok := BestCrew(job(1), nil); ok {
		t.Fatalf("expected ok=false with no crews")
	}
}
