package model

import "github.com/google/uuid"

// ChecklistItem is one task line on a job's checklist.
type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// JobEntry is one unit of scheduled work. An entry never stores a computed
// start time: its displayed time is always derived from queue order. The
// only stored time is CustomStart, an explicit "HH:MM" override; empty means
// auto-compute from the predecessor.
type JobEntry struct {
	ID          string          `json:"-"`
	JobType     string          `json:"jobType"`
	Hours       float64         `json:"hours"`
	JobNumber   string          `json:"jobNumber"`
	Customer    string          `json:"customer"`
	Address     string          `json:"address"`
	Checklist   []ChecklistItem `json:"checklist"`
	CustomStart string          `json:"-"`
	ZoneHint    string          `json:"-"`
}

// NewJobEntry creates an empty entry. It carries no type, duration or
// checklist until Populate is called.
func NewJobEntry() JobEntry {
	return JobEntry{ID: uuid.NewString()}
}

// Populate applies the catalog defaults for the chosen job type: the default
// duration and a fresh checklist from the template. An unknown type leaves
// the entry typed but with zero hours and no checklist.
func (e *JobEntry) Populate(jobType string, cat Catalog) {
	e.JobType = jobType
	spec, ok := cat[jobType]
	if !ok {
		e.Hours = 0
		e.Checklist = nil
		return
	}
	e.Hours = spec.Hours
	e.Checklist = make([]ChecklistItem, len(spec.Checklist))
	for i, text := range spec.Checklist {
		e.Checklist[i] = ChecklistItem{Text: text}
	}
}

// Duration returns the entry's scheduled length in hours. Zero and negative
// values are passed through untouched.
func (e JobEntry) Duration() float64 { return e.Hours }

// StartOverride parses the custom start time. ok is false when the entry is
// auto-timed or the stored value does not parse.
func (e JobEntry) StartOverride() (float64, bool) {
	if e.CustomStart == "" {
		return 0, false
	}
	h, err := ParseClock(e.CustomStart)
	if err != nil {
		return 0, false
	}
	return h, true
}

// Clone returns a deep copy of the entry.
func (e JobEntry) Clone() JobEntry {
	cp := e
	if e.Checklist != nil {
		cp.Checklist = make([]ChecklistItem, len(e.Checklist))
		copy(cp.Checklist, e.Checklist)
	}
	return cp
}

// CloneEntries deep-copies a queue.
func CloneEntries(entries []JobEntry) []JobEntry {
	if entries == nil {
		return nil
	}
	out := make([]JobEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// JobTypeSpec describes a catalog entry: the default duration, the checklist
// template applied on populate, and whether the type is seated first during
// auto-assignment.
type JobTypeSpec struct {
	Hours     float64
	Urgent    bool
	Checklist []string
}

// Catalog maps job type names to their specs. It is read-only configuration
// shared by the empty-entry constructor and the planner.
type Catalog map[string]JobTypeSpec

// DefaultCatalog returns the built-in job type catalog used when the
// configuration does not provide one.
func DefaultCatalog() Catalog {
	return Catalog{
		"install": {
			Hours:     4.0,
			Checklist: []string{"Verify site access", "Stage equipment", "Install unit", "Commission and test", "Customer walkthrough"},
		},
		"service": {
			Hours:     1.5,
			Checklist: []string{"Diagnose reported issue", "Perform repair", "Test operation"},
		},
		"maintenance": {
			Hours:     1.0,
			Checklist: []string{"Inspect unit", "Replace filters", "Log readings"},
		},
		"inspection": {
			Hours:     0.5,
			Checklist: []string{"Walk site", "Record findings"},
		},
		"emergency": {
			Hours:     2.0,
			Urgent:    true,
			Checklist: []string{"Assess hazard", "Stabilize", "Repair or isolate", "Report"},
		},
	}
}

// Urgent reports whether the given job type is flagged urgent in the catalog.
func (c Catalog) Urgent(jobType string) bool {
	spec, ok := c[jobType]
	return ok && spec.Urgent
}
