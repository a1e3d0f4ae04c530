package board

import "github.com/fieldline/dayboard/core/model"

// GapThresholdHours is the smallest idle period worth flagging between a
// custom-start entry and its predecessor's end. Five minutes.
const GapThresholdHours = 5.0 / 60.0

// Slot is one computed timeline position. Values are hours since midnight.
type Slot struct {
	Start      float64
	End        float64
	DriveHours float64
}

// Accumulate is the single time-accumulation routine shared by the
// interactive board and the schedule reconstruction path. It walks the queue
// with a running cursor starting at dayStart: each step first advances past
// the drive leg, then applies the entry's start override if one is present,
// then advances past the work itself.
//
// durations, legs and overrides are aligned by index. legs and overrides may
// be nil or shorter than durations; missing values read as zero drive and
// no override. A nil override means "start where the cursor is".
//
// Both call sites must go through this function. The published schedule and
// the editor diverge silently otherwise.
func Accumulate(dayStart float64, durations []float64, legs []float64, overrides []*float64) []Slot {
	slots := make([]Slot, len(durations))
	cursor := dayStart
	for i, d := range durations {
		drive := 0.0
		if i < len(legs) {
			drive = legs[i]
		}
		cursor += drive
		if i < len(overrides) && overrides[i] != nil {
			cursor = *overrides[i]
		}
		slots[i] = Slot{Start: cursor, End: cursor + d, DriveHours: drive}
		cursor += d
	}
	return slots
}

// queueSlots computes the timeline for a crew queue. It is evaluated fresh
// on every call; nothing is memoized, so an edit to any entry is reflected
// in every later entry's time on the next evaluation.
func queueSlots(dayStart float64, queue []model.JobEntry) []Slot {
	durations := make([]float64, len(queue))
	overrides := make([]*float64, len(queue))
	for i, e := range queue {
		durations[i] = e.Duration()
		if h, ok := e.StartOverride(); ok {
			v := h
			overrides[i] = &v
		}
	}
	return Accumulate(dayStart, durations, nil, overrides)
}

// StartHours returns entry i's computed start: the custom override when set,
// dayStart for the first entry, otherwise the predecessor's end.
func StartHours(dayStart float64, queue []model.JobEntry, i int) float64 {
	if i < 0 || i >= len(queue) {
		return dayStart
	}
	return queueSlots(dayStart, queue)[i].Start
}

// EndHours returns entry i's computed end time.
func EndHours(dayStart float64, queue []model.JobEntry, i int) float64 {
	if i < 0 || i >= len(queue) {
		return dayStart
	}
	return queueSlots(dayStart, queue)[i].End
}

// Gap reports the idle time before entry i. Only entries with a custom start
// are considered, and only gaps above GapThresholdHours are reported. A
// custom start earlier than the predecessor's end is accepted silently; the
// overlap is not flagged.
func Gap(dayStart float64, queue []model.JobEntry, i int) (float64, bool) {
	if i <= 0 || i >= len(queue) {
		return 0, false
	}
	custom, ok := queue[i].StartOverride()
	if !ok {
		return 0, false
	}
	gap := custom - EndHours(dayStart, queue, i-1)
	if gap <= GapThresholdHours {
		return 0, false
	}
	return gap, true
}

// TimelineEntry pairs a queue entry with its computed slot and gap report.
type TimelineEntry struct {
	Entry    model.JobEntry
	Slot     Slot
	GapHours float64
	HasGap   bool
}

// Timeline computes the full display timeline for one crew queue.
func Timeline(crew model.Crew, queue []model.JobEntry) []TimelineEntry {
	slots := queueSlots(crew.DayStartHours, queue)
	out := make([]TimelineEntry, len(queue))
	for i, e := range queue {
		gap, has := Gap(crew.DayStartHours, queue, i)
		out[i] = TimelineEntry{Entry: e, Slot: slots[i], GapHours: gap, HasGap: has}
	}
	return out
}
