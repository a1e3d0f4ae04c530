package board

import (
	"sort"

	"github.com/fieldline/dayboard/core/model"
)

// Scoring weights for matching an unassigned job against crews. Capacity is
// a soft penalty here: a crew that cannot fit the job stays in the ranked
// list, heavily disfavored, so the operator still sees it as an option.
const (
	zoneMatchScore = 50.0
	fitsScore      = 30.0
	noFitPenalty   = -100.0
	availWeight    = 2.0
	availBonusCap  = 20.0
)

// Recommendation scores one crew for one unassigned job.
type Recommendation struct {
	Crew      model.Crew
	Score     float64
	Available float64
	Fits      bool
	ZoneMatch bool
}

// Recommend ranks every crew for the given job, best first. The sort is
// stable so equally scored crews keep roster order.
func Recommend(job model.JobEntry, loads []CrewLoad) []Recommendation {
	recs := make([]Recommendation, 0, len(loads))
	for _, l := range loads {
		r := Recommendation{
			Crew:      l.Crew,
			Available: l.Available,
			Fits:      l.Available >= job.Duration(),
			ZoneMatch: l.Crew.Zone != "" && l.Crew.Zone == job.ZoneHint,
		}
		if r.ZoneMatch {
			r.Score += zoneMatchScore
		}
		if r.Fits {
			r.Score += fitsScore
		} else {
			r.Score += noFitPenalty
		}
		bonus := l.Available * availWeight
		if bonus > availBonusCap {
			bonus = availBonusCap
		}
		if bonus > 0 {
			r.Score += bonus
		}
		recs = append(recs, r)
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	return recs
}

// BestCrew picks the highest-scoring crew that can actually fit the job.
// When no crew fits, it falls back to the absolute top scorer and reports
// noCapacity so the caller can surface the state explicitly.
func BestCrew(job model.JobEntry, loads []CrewLoad) (crew model.Crew, noCapacity bool, ok bool) {
	recs := Recommend(job, loads)
	if len(recs) == 0 {
		return model.Crew{}, false, false
	}
	for _, r := range recs {
		if r.Fits {
			return r.Crew, false, true
		}
	}
	return recs[0].Crew, true, true
}
