package board

import (
	"fmt"

	"github.com/fieldline/dayboard/core/logger"
	"github.com/fieldline/dayboard/core/model"
	"github.com/fieldline/dayboard/internal/eventbus"
)

// Board is the in-memory schedule aggregate for one calendar date: one
// ordered queue per crew plus the unassigned pool. It is the single owner of
// that state; observers receive immutable snapshots over the bus and never
// mutate. One operator edits a board at a time, so no locking happens here.
type Board struct {
	date    string
	reg     *model.Registry
	catalog model.Catalog
	queues  map[string][]model.JobEntry
	pool    []model.JobEntry
	bus     *eventbus.TypedBus[Event]
	log     logger.Logger
}

// Event is published on every board mutation so UI fragments can re-render
// from the snapshot without reaching into board state.
type Event struct {
	Date     string
	Op       string
	Snapshot Snapshot
}

// Snapshot is a deep copy of board state at one point in time.
type Snapshot struct {
	Date   string
	Queues map[string][]model.JobEntry
	Pool   []model.JobEntry
}

// New creates an empty board for the date. bus and log may be nil; a nil
// bus publishes nothing.
func New(date string, reg *model.Registry, cat model.Catalog, bus *eventbus.TypedBus[Event], log logger.Logger) *Board {
	if log == nil {
		log = nopLogger{}
	}
	if cat == nil {
		cat = model.DefaultCatalog()
	}
	queues := make(map[string][]model.JobEntry, len(reg.IDs()))
	for _, id := range reg.IDs() {
		queues[id] = nil
	}
	return &Board{date: date, reg: reg, catalog: cat, queues: queues, bus: bus, log: log}
}

// FromDocument rebuilds an editable board from a previously persisted
// document. Lanes unknown to the roster are dropped with a warning. Entry
// ids are not part of the document shape, so reloaded entries get fresh ones.
func FromDocument(date string, doc model.ScheduleDocument, reg *model.Registry, cat model.Catalog, bus *eventbus.TypedBus[Event], log logger.Logger) *Board {
	b := New(date, reg, cat, bus, log)
	for laneID, entries := range doc.Schedule {
		if _, ok := reg.Get(laneID); !ok {
			b.log.Warnf("dropping lane %s: not in roster", laneID)
			continue
		}
		q := model.CloneEntries(entries)
		for i := range q {
			if q[i].ID == "" {
				q[i].ID = model.NewJobEntry().ID
			}
		}
		b.queues[laneID] = q
	}
	return b
}

// Date returns the calendar date this board plans.
func (b *Board) Date() string { return b.date }

// Registry returns the crew roster the board plans against.
func (b *Board) Registry() *model.Registry { return b.reg }

// Catalog returns the job-type catalog in effect.
func (b *Board) Catalog() model.Catalog { return b.catalog }

// Snapshot returns a deep copy of the current state.
func (b *Board) Snapshot() Snapshot {
	queues := make(map[string][]model.JobEntry, len(b.queues))
	for id, q := range b.queues {
		queues[id] = model.CloneEntries(q)
	}
	return Snapshot{Date: b.date, Queues: queues, Pool: model.CloneEntries(b.pool)}
}

// Queue returns a copy of one crew's queue.
func (b *Board) Queue(crewID string) []model.JobEntry {
	return model.CloneEntries(b.queues[crewID])
}

// Pool returns a copy of the unassigned pool.
func (b *Board) Pool() []model.JobEntry { return model.CloneEntries(b.pool) }

func (b *Board) publish(op string) {
	if b.bus == nil {
		return
	}
	b.bus.Publish(Event{Date: b.date, Op: op, Snapshot: b.Snapshot()})
}

// AddEntry appends a new empty entry to a crew's queue and returns its id.
func (b *Board) AddEntry(crewID string) (string, error) {
	if _, ok := b.reg.Get(crewID); !ok {
		return "", fmt.Errorf("unknown crew %s", crewID)
	}
	e := model.NewJobEntry()
	b.queues[crewID] = append(b.queues[crewID], e)
	b.publish("add_entry")
	return e.ID, nil
}

// AddToPool appends a job entry to the unassigned pool.
func (b *Board) AddToPool(e model.JobEntry) {
	if e.ID == "" {
		e.ID = model.NewJobEntry().ID
	}
	b.pool = append(b.pool, e)
	b.publish("add_to_pool")
}

// find locates an entry by id in any queue or the pool.
func (b *Board) find(entryID string) (*model.JobEntry, bool) {
	for id := range b.queues {
		q := b.queues[id]
		for i := range q {
			if q[i].ID == entryID {
				return &q[i], true
			}
		}
	}
	for i := range b.pool {
		if b.pool[i].ID == entryID {
			return &b.pool[i], true
		}
	}
	return nil, false
}

// PopulateEntry applies the catalog defaults for jobType to the entry.
func (b *Board) PopulateEntry(entryID, jobType string) error {
	e, ok := b.find(entryID)
	if !ok {
		return fmt.Errorf("no entry %s", entryID)
	}
	e.Populate(jobType, b.catalog)
	b.publish("populate")
	return nil
}

// SetHours overrides the entry's duration. No validation: zero and negative
// durations are accepted as-is.
func (b *Board) SetHours(entryID string, hours float64) error {
	e, ok := b.find(entryID)
	if !ok {
		return fmt.Errorf("no entry %s", entryID)
	}
	e.Hours = hours
	b.publish("set_hours")
	return nil
}

// SetCustomStart sets or clears ("") the entry's start override.
func (b *Board) SetCustomStart(entryID, clock string) error {
	if clock != "" {
		if _, err := model.ParseClock(clock); err != nil {
			return err
		}
	}
	e, ok := b.find(entryID)
	if !ok {
		return fmt.Errorf("no entry %s", entryID)
	}
	e.CustomStart = clock
	b.publish("set_custom_start")
	return nil
}

// SetDetails updates the descriptive fields of an entry.
func (b *Board) SetDetails(entryID, jobNumber, customer, address string) error {
	e, ok := b.find(entryID)
	if !ok {
		return fmt.Errorf("no entry %s", entryID)
	}
	e.JobNumber, e.Customer, e.Address = jobNumber, customer, address
	b.publish("set_details")
	return nil
}

// ToggleChecklist flips one checklist item on an entry.
func (b *Board) ToggleChecklist(entryID string, item int) error {
	e, ok := b.find(entryID)
	if !ok {
		return fmt.Errorf("no entry %s", entryID)
	}
	if item < 0 || item >= len(e.Checklist) {
		return fmt.Errorf("entry %s has no checklist item %d", entryID, item)
	}
	e.Checklist[item].Checked = !e.Checklist[item].Checked
	b.publish("toggle_checklist")
	return nil
}

// Remove takes the entry at index out of the crew's queue and re-homes it
// into the unassigned pool: the custom start is cleared and, if the entry
// had no zone hint, the crew's zone is adopted. Entries are never deleted.
func (b *Board) Remove(crewID string, index int) error {
	crew, ok := b.reg.Get(crewID)
	if !ok {
		return fmt.Errorf("unknown crew %s", crewID)
	}
	q := b.queues[crewID]
	if index < 0 || index >= len(q) {
		return fmt.Errorf("crew %s has no entry at %d", crewID, index)
	}
	e := q[index]
	b.queues[crewID] = append(q[:index], q[index+1:]...)
	e.CustomStart = ""
	if e.ZoneHint == "" {
		e.ZoneHint = crew.Zone
	}
	b.pool = append(b.pool, e)
	b.publish("remove")
	return nil
}

// CrewTimeline returns the computed display timeline for one crew.
func (b *Board) CrewTimeline(crewID string) ([]TimelineEntry, error) {
	crew, ok := b.reg.Get(crewID)
	if !ok {
		return nil, fmt.Errorf("unknown crew %s", crewID)
	}
	return Timeline(crew, b.queues[crewID]), nil
}

// Report returns the capacity report across the roster.
func (b *Board) Report() Report {
	return BuildReport(b.reg, b.queues)
}

// RecommendFor ranks crews for one pooled job against current loads.
func (b *Board) RecommendFor(entryID string) ([]Recommendation, error) {
	for _, e := range b.pool {
		if e.ID == entryID {
			return Recommend(e, b.Report().Loads), nil
		}
	}
	return nil, fmt.Errorf("no pooled entry %s", entryID)
}

// Finalize serializes the current state into a persisted schedule document.
// driveTime supplies the per-lane legs in seconds, aligned to queue order;
// lanes without legs get an empty array. Custom-start overrides are not
// carried into the document.
func (b *Board) Finalize(driveTime map[string][]int) model.ScheduleDocument {
	doc := model.ScheduleDocument{
		Schedule:  make(map[string][]model.JobEntry, len(b.queues)),
		DriveTime: make(map[string]model.DriveLegs, len(b.queues)),
	}
	for _, c := range b.reg.All() {
		doc.Lanes = append(doc.Lanes, model.Lane{ID: c.ID, Name: c.Name, Type: "crew"})
		entries := model.CloneEntries(b.queues[c.ID])
		for i := range entries {
			entries[i].CustomStart = ""
		}
		if entries == nil {
			entries = []model.JobEntry{}
		}
		doc.Schedule[c.ID] = entries
		doc.DriveTime[c.ID] = model.DriveLegs{Legs: driveTime[c.ID]}
	}
	return doc
}

// nopLogger keeps Board usable without wiring a logger in tests.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
