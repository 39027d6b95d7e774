package services

import "github.com/adanyl0v/go-taskboard/internal/models"

// StatusGroup is the slice of a project's visible tasks sharing one status.
type StatusGroup struct {
	Meta  models.StatusMeta
	Tasks []*models.Task
}

func (g StatusGroup) Count() int {
	return len(g.Tasks)
}

// Board is the partition both the board and list renderings draw from.
type Board struct {
	Project models.Project
	Viewer  models.Viewer
	Groups  []StatusGroup
}

// Total is the number of tasks across all groups.
func (b *Board) Total() int {
	n := 0
	for _, g := range b.Groups {
		n += g.Count()
	}
	return n
}

func (b *Board) Group(status models.Status) (StatusGroup, bool) {
	for _, g := range b.Groups {
		if g.Meta.Status == status {
			return g, true
		}
	}
	return StatusGroup{}, false
}

// NarrowForViewer keeps the tasks the viewer is allowed to see, preserving
// order.
func NarrowForViewer(viewer models.Viewer, tasks []*models.Task) []*models.Task {
	if ResolveCapabilities(viewer).ViewAll {
		return tasks
	}
	narrowed := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if CanSee(viewer, t) {
			narrowed = append(narrowed, t)
		}
	}
	return narrowed
}

// PartitionByStatus splits tasks into the five status groups in column order.
// All five groups are returned even when empty; a task with a status outside
// the taxonomy lands in none of them.
func PartitionByStatus(tasks []*models.Task) []StatusGroup {
	metas := models.Statuses()
	groups := make([]StatusGroup, len(metas))
	for i, meta := range metas {
		groups[i] = StatusGroup{Meta: meta, Tasks: []*models.Task{}}
		for _, t := range tasks {
			if t.Status == meta.Status {
				groups[i].Tasks = append(groups[i].Tasks, t)
			}
		}
	}
	return groups
}
