package models

import "time"

type Status string

const (
	StatusOnBoard    Status = "on-board"
	StatusOnProgress Status = "on-progress"
	StatusPending    Status = "pending"
	StatusCanceled   Status = "canceled"
	StatusDone       Status = "done"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityUrgent   Priority = "urgent"
	PriorityCritical Priority = "critical"
	PriorityTBD      Priority = "tbd"
)

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	AssignTo    []string
	StartDate   *time.Time
	DueDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a deep copy so callers can never reach the store's record.
func (t *Task) Clone() *Task {
	c := *t
	if t.AssignTo != nil {
		c.AssignTo = make([]string, len(t.AssignTo))
		copy(c.AssignTo, t.AssignTo)
	}
	if t.StartDate != nil {
		start := *t.StartDate
		c.StartDate = &start
	}
	return &c
}

func (t *Task) IsAssignedTo(memberID string) bool {
	for _, id := range t.AssignTo {
		if id == memberID {
			return true
		}
	}
	return false
}

// IsOverdue reports whether the due date lies before the day of now and the
// task is still open.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusDone || t.Status == StatusCanceled {
		return false
	}
	return t.DueDate.Before(StartOfDay(now))
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
