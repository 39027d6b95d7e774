package models

// StatusMeta is the display metadata of a status column.
type StatusMeta struct {
	Status Status
	Label  string
	Style  string
}

// PriorityMeta is the display metadata of a priority badge.
type PriorityMeta struct {
	Priority Priority
	Label    string
	Style    string
	Color    string
	// Rank orders priorities for sorting. TBD ranks last.
	Rank int
}

// statuses is the fixed column order of every board and list.
var statuses = []StatusMeta{
	{Status: StatusOnBoard, Label: "On Board", Style: "status-on-board"},
	{Status: StatusOnProgress, Label: "On Progress", Style: "status-on-progress"},
	{Status: StatusPending, Label: "Pending", Style: "status-pending"},
	{Status: StatusCanceled, Label: "Canceled", Style: "status-canceled"},
	{Status: StatusDone, Label: "Done", Style: "status-done"},
}

var priorities = []PriorityMeta{
	{Priority: PriorityLow, Label: "Low", Style: "priority-low", Color: "#22c55e", Rank: 0},
	{Priority: PriorityNormal, Label: "Normal", Style: "priority-normal", Color: "#3b82f6", Rank: 1},
	{Priority: PriorityHigh, Label: "High", Style: "priority-high", Color: "#f59e0b", Rank: 2},
	{Priority: PriorityUrgent, Label: "Urgent", Style: "priority-urgent", Color: "#f97316", Rank: 3},
	{Priority: PriorityCritical, Label: "Critical", Style: "priority-critical", Color: "#ef4444", Rank: 4},
	{Priority: PriorityTBD, Label: "TBD", Style: "priority-tbd", Color: "#9ca3af", Rank: 5},
}

// Statuses returns the ordered status columns. The returned slice is a copy.
func Statuses() []StatusMeta {
	out := make([]StatusMeta, len(statuses))
	copy(out, statuses)
	return out
}

func Priorities() []PriorityMeta {
	out := make([]PriorityMeta, len(priorities))
	copy(out, priorities)
	return out
}

func (s Status) Valid() bool {
	_, ok := s.Meta()
	return ok
}

func (s Status) Meta() (StatusMeta, bool) {
	for _, m := range statuses {
		if m.Status == s {
			return m, true
		}
	}
	return StatusMeta{}, false
}

func (s Status) Label() string {
	m, ok := s.Meta()
	if !ok {
		return string(s)
	}
	return m.Label
}

func (p Priority) Valid() bool {
	_, ok := p.Meta()
	return ok
}

func (p Priority) Meta() (PriorityMeta, bool) {
	for _, m := range priorities {
		if m.Priority == p {
			return m, true
		}
	}
	return PriorityMeta{}, false
}

// Rank returns the sort rank of p; unknown priorities rank after TBD.
func (p Priority) Rank() int {
	m, ok := p.Meta()
	if !ok {
		return len(priorities)
	}
	return m.Rank
}
