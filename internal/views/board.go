package views

import (
	"context"
	"time"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

type Card struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Priority  PriorityBadge `json:"priority"`
	Assignees []Assignee    `json:"assignees"`
	DueDate   time.Time     `json:"due_date"`
	Overdue   bool          `json:"overdue"`
	// Lifted is set on the card being dragged.
	Lifted bool `json:"lifted"`
}

type Column struct {
	Status        models.Status `json:"status"`
	Label         string        `json:"label"`
	Style         string        `json:"style"`
	Count         int           `json:"count"`
	Expanded      bool          `json:"expanded"`
	DropCandidate bool          `json:"drop_candidate"`
	// Cards is empty when the column is collapsed; Count still holds.
	Cards []Card `json:"cards"`
}

type BoardView struct {
	ProjectID   string   `json:"project_id"`
	ProjectName string   `json:"project_name"`
	Dragging    string   `json:"dragging,omitempty"`
	Columns     []Column `json:"columns"`
}

func RenderBoard(ctx context.Context, board *services.Board, opts Options) BoardView {
	now := opts.now()
	view := BoardView{
		ProjectID:   board.Project.ID,
		ProjectName: board.Project.Name,
		Dragging:    opts.Drag.TaskID,
		Columns:     make([]Column, 0, len(board.Groups)),
	}

	for _, g := range board.Groups {
		col := Column{
			Status:        g.Meta.Status,
			Label:         g.Meta.Label,
			Style:         g.Meta.Style,
			Count:         g.Count(),
			Expanded:      opts.expanded(g.Meta.Status),
			DropCandidate: candidate(opts.Drag, g.Meta.Status),
			Cards:         []Card{},
		}
		if col.Expanded {
			for _, t := range g.Tasks {
				col.Cards = append(col.Cards, Card{
					ID:        t.ID,
					Title:     t.Title,
					Priority:  newPriorityBadge(t.Priority),
					Assignees: resolveAssignees(ctx, opts.Resolver, t.AssignTo),
					DueDate:   t.DueDate,
					Overdue:   t.IsOverdue(now),
					Lifted:    opts.Drag.Lifted == t.ID,
				})
			}
		}
		view.Columns = append(view.Columns, col)
	}
	return view
}
