package board

import (
	"github.com/fieldline/dayboard/core/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Status buckets a crew's remaining capacity.
type Status int

const (
	StatusOpen Status = iota
	StatusLimited
	StatusFull
)

// limitedThresholdHours is the remaining capacity below which a crew is
// reported as LIMITED rather than OPEN.
const limitedThresholdHours = 3.0

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusLimited:
		return "LIMITED"
	case StatusFull:
		return "FULL"
	}
	return "UNKNOWN"
}

// CrewLoad summarizes one crew's scheduled hours against its daily capacity.
type CrewLoad struct {
	Crew      model.Crew
	Jobs      int
	Scheduled float64
	Available float64
	Status    Status
}

// Load computes the capacity summary for one crew queue.
func Load(crew model.Crew, queue []model.JobEntry) CrewLoad {
	durations := make([]float64, len(queue))
	for i, e := range queue {
		durations[i] = e.Duration()
	}
	total := floats.Sum(durations)
	avail := crew.MaxDailyHours - total
	st := StatusOpen
	switch {
	case avail <= 0:
		st = StatusFull
	case avail < limitedThresholdHours:
		st = StatusLimited
	}
	return CrewLoad{Crew: crew, Jobs: len(queue), Scheduled: total, Available: avail, Status: st}
}

// Report aggregates per-crew loads with utilization statistics across the
// roster. Utilization is scheduled/capacity per crew; the spread indicates
// how evenly the day is packed.
type Report struct {
	Loads           []CrewLoad
	MeanUtilization float64
	UtilizationStd  float64
}

// BuildReport computes loads for every crew in roster order.
func BuildReport(reg *model.Registry, queues map[string][]model.JobEntry) Report {
	crews := reg.All()
	loads := make([]CrewLoad, 0, len(crews))
	utils := make([]float64, 0, len(crews))
	for _, c := range crews {
		l := Load(c, queues[c.ID])
		loads = append(loads, l)
		if c.MaxDailyHours > 0 {
			utils = append(utils, l.Scheduled/c.MaxDailyHours)
		}
	}
	rep := Report{Loads: loads}
	if len(utils) > 0 {
		rep.MeanUtilization = stat.Mean(utils, nil)
	}
	if len(utils) > 1 {
		rep.UtilizationStd = stat.StdDev(utils, nil)
	}
	return rep
}
