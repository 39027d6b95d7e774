package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatuses_Order(t *testing.T) {
	want := []Status{StatusOnBoard, StatusOnProgress, StatusPending, StatusCanceled, StatusDone}

	got := Statuses()
	if assert.Len(t, got, len(want)) {
		for i, meta := range got {
			assert.Equal(t, want[i], meta.Status)
		}
	}
	assert.Equal(t, "On Board", got[0].Label)
	assert.Equal(t, "status-done", got[4].Style)

	got[0].Label = "changed"
	assert.Equal(t, "On Board", Statuses()[0].Label)
}

func TestStatus_Valid(t *testing.T) {
	for _, meta := range Statuses() {
		assert.True(t, meta.Status.Valid(), meta.Status)
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("archived").Valid())
	assert.Equal(t, "archived", Status("archived").Label())
	assert.Equal(t, "On Progress", StatusOnProgress.Label())
}

func TestPriority_Rank(t *testing.T) {
	order := []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent, PriorityCritical, PriorityTBD}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1].Rank(), order[i].Rank())
	}
	assert.Greater(t, Priority("someday").Rank(), PriorityTBD.Rank())
	assert.False(t, Priority("someday").Valid())
	assert.Len(t, Priorities(), 6)
}

func TestTask_Clone(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{ID: "t1", AssignTo: []string{"a"}, StartDate: &start}

	c := task.Clone()
	c.AssignTo[0] = "b"
	*c.StartDate = start.AddDate(0, 0, 1)

	assert.Equal(t, []string{"a"}, task.AssignTo)
	assert.Equal(t, start, *task.StartDate)
	assert.Nil(t, (&Task{}).Clone().AssignTo)
}

func TestTask_IsAssignedTo(t *testing.T) {
	task := &Task{AssignTo: []string{"usr-1", "usr-2"}}
	assert.True(t, task.IsAssignedTo("usr-2"))
	assert.False(t, task.IsAssignedTo("usr-3"))
	assert.False(t, (&Task{}).IsAssignedTo("usr-1"))
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := StartOfDay(now).AddDate(0, 0, -1)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past open", Task{Status: StatusOnProgress, DueDate: yesterday}, true},
		{"due today", Task{Status: StatusOnBoard, DueDate: StartOfDay(now)}, false},
		{"past done", Task{Status: StatusDone, DueDate: yesterday}, false},
		{"past canceled", Task{Status: StatusCanceled, DueDate: yesterday}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("guest").Valid())
}
