package board

import (
	"sort"

	"github.com/fieldline/dayboard/core/model"
)

// Placement records one job committed by the planner.
type Placement struct {
	Entry     model.JobEntry
	CrewID    string
	Score     float64
	ZoneMatch bool
}

// PlanResult summarizes a batch auto-assignment pass.
type PlanResult struct {
	Assigned   int
	Unassigned int
	Placements []Placement
}

// plan is the running state of a single auto-assignment pass: the capacity
// left per crew after every placement committed so far. Later jobs in the
// pass see hours already consumed by earlier ones; the original queue
// snapshot is never re-read.
type plan struct {
	available map[string]float64
	crews     []model.Crew
}

func newPlan(reg *model.Registry, queues map[string][]model.JobEntry) *plan {
	crews := reg.All()
	p := &plan{available: make(map[string]float64, len(crews)), crews: crews}
	for _, c := range crews {
		p.available[c.ID] = Load(c, queues[c.ID]).Available
	}
	return p
}

// place finds the winning crew for one job. Capacity is a hard filter on
// this path: a crew that cannot fit the job is not scored at all.
func (p *plan) place(job model.JobEntry) (model.Crew, float64, bool) {
	var best model.Crew
	bestScore := 0.0
	found := false
	for _, c := range p.crews {
		avail := p.available[c.ID]
		if avail < job.Duration() {
			continue
		}
		score := avail * availWeight
		if c.Zone != "" && c.Zone == job.ZoneHint {
			score += zoneMatchScore
		}
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	if !found {
		return model.Crew{}, 0, false
	}
	p.available[best.ID] -= job.Duration()
	return best, bestScore, true
}

// orderForPlanning returns pool indices in planning order: urgent job types
// first, the rest by duration descending so large loads are seated before
// small ones fragment the day. The sort is stable to keep pool order among
// equals.
func orderForPlanning(pool []model.JobEntry, cat model.Catalog) []int {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ja, jb := pool[idx[a]], pool[idx[b]]
		ua, ub := cat.Urgent(ja.JobType), cat.Urgent(jb.JobType)
		if ua != ub {
			return ua
		}
		return ja.Duration() > jb.Duration()
	})
	return idx
}

// AutoAssign runs the greedy single-pass planner over the unassigned pool,
// committing each placed job into its crew's queue with the custom start
// cleared. Jobs no crew can fit stay in the pool. No backtracking.
func (b *Board) AutoAssign() PlanResult {
	p := newPlan(b.reg, b.queues)
	order := orderForPlanning(b.pool, b.catalog)

	var res PlanResult
	placed := make(map[int]bool, len(b.pool))
	for _, i := range order {
		job := b.pool[i]
		crew, score, ok := p.place(job)
		if !ok {
			continue
		}
		job.CustomStart = ""
		b.queues[crew.ID] = append(b.queues[crew.ID], job)
		placed[i] = true
		res.Placements = append(res.Placements, Placement{
			Entry:     job,
			CrewID:    crew.ID,
			Score:     score,
			ZoneMatch: crew.Zone != "" && crew.Zone == job.ZoneHint,
		})
	}

	remaining := b.pool[:0]
	for i, job := range b.pool {
		if !placed[i] {
			remaining = append(remaining, job)
		}
	}
	b.pool = remaining

	res.Assigned = len(placed)
	res.Unassigned = len(b.pool)
	b.log.Infof("auto-assign placed %d job(s), %d left unassigned", res.Assigned, res.Unassigned)
	b.publish("auto_assign")
	return res
}
