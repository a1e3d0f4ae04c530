package model

// Lane identifies one crew's queue inside a persisted schedule document.
type Lane struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DriveLegs holds the drive-time segments for one lane. Legs are seconds and
// aligned by index with the lane's job entries: legs[i] is the drive that
// precedes job i. Short or missing arrays are valid; absent legs read as 0.
type DriveLegs struct {
	Legs []int `json:"legs"`
}

// Leg returns the drive seconds preceding job i, 0 when absent.
func (d DriveLegs) Leg(i int) int {
	if i < 0 || i >= len(d.Legs) {
		return 0
	}
	return d.Legs[i]
}

// ScheduleDocument is the persisted snapshot of one day's board, written on
// finalize and read back by the reconstruction service. Finalized documents
// carry no custom-start overrides.
type ScheduleDocument struct {
	Lanes     []Lane                `json:"lanes"`
	Schedule  map[string][]JobEntry `json:"schedule"`
	DriveTime map[string]DriveLegs  `json:"driveTimeByCrew"`
}

// LaneJobs returns the stored queue for a lane, nil when the lane is absent.
func (d ScheduleDocument) LaneJobs(laneID string) []JobEntry {
	if d.Schedule == nil {
		return nil
	}
	return d.Schedule[laneID]
}

// LaneLegs returns the drive legs for a lane; an absent lane yields empty
// legs so every drive time reads as 0.
func (d ScheduleDocument) LaneLegs(laneID string) DriveLegs {
	if d.DriveTime == nil {
		return DriveLegs{}
	}
	return d.DriveTime[laneID]
}
