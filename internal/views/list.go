package views

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

var ErrInvalidSortKey = errors.New("invalid sort key")

type SortKey string

const (
	SortNone     SortKey = ""
	SortName     SortKey = "name"
	SortDue      SortKey = "due"
	SortPriority SortKey = "priority"
)

func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortNone, SortName, SortDue, SortPriority:
		return key, nil
	default:
		return SortNone, ErrInvalidSortKey
	}
}

type Row struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Assignees []Assignee    `json:"assignees"`
	DueDate   time.Time     `json:"due_date"`
	Priority  PriorityBadge `json:"priority"`
	Status    models.Status `json:"status"`
	Overdue   bool          `json:"overdue"`
	Lifted    bool          `json:"lifted"`
}

type Table struct {
	Status        models.Status `json:"status"`
	Label         string        `json:"label"`
	Style         string        `json:"style"`
	Count         int           `json:"count"`
	Expanded      bool          `json:"expanded"`
	DropCandidate bool          `json:"drop_candidate"`
	Rows          []Row         `json:"rows"`
}

type ListView struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Sort        SortKey `json:"sort,omitempty"`
	Dragging    string  `json:"dragging,omitempty"`
	Tables      []Table `json:"tables"`
}

// RenderList renders one table per status group. Sorting reorders rows
// inside a table only.
func RenderList(ctx context.Context, board *services.Board, opts Options, sort SortKey) ListView {
	now := opts.now()
	view := ListView{
		ProjectID:   board.Project.ID,
		ProjectName: board.Project.Name,
		Sort:        sort,
		Dragging:    opts.Drag.TaskID,
		Tables:      make([]Table, 0, len(board.Groups)),
	}

	for _, g := range board.Groups {
		table := Table{
			Status:        g.Meta.Status,
			Label:         g.Meta.Label,
			Style:         g.Meta.Style,
			Count:         g.Count(),
			Expanded:      opts.expanded(g.Meta.Status),
			DropCandidate: candidate(opts.Drag, g.Meta.Status),
			Rows:          []Row{},
		}
		if table.Expanded {
			for _, t := range sortTasks(g.Tasks, sort) {
				table.Rows = append(table.Rows, Row{
					ID:        t.ID,
					Name:      t.Title,
					Assignees: resolveAssignees(ctx, opts.Resolver, t.AssignTo),
					DueDate:   t.DueDate,
					Priority:  newPriorityBadge(t.Priority),
					Status:    t.Status,
					Overdue:   t.IsOverdue(now),
					Lifted:    opts.Drag.Lifted == t.ID,
				})
			}
		}
		view.Tables = append(view.Tables, table)
	}
	return view
}

func sortTasks(tasks []*models.Task, key SortKey) []*models.Task {
	if key == SortNone {
		return tasks
	}
	sorted := slices.Clone(tasks)
	// A Collator is not safe for concurrent use.
	names := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(sorted, func(a, b *models.Task) int {
		switch key {
		case SortName:
			return names.CompareString(a.Title, b.Title)
		case SortDue:
			return a.DueDate.Compare(b.DueDate)
		case SortPriority:
			return a.Priority.Rank() - b.Priority.Rank()
		}
		return 0
	})
	return sorted
}
