// Package views turns a partitioned board into the two presentations of it:
// status columns of cards, and collapsible per-status tables of rows. Both
// read the same services.Board and never regroup tasks themselves.
package views

import (
	"context"
	"time"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

type AssigneeResolver interface {
	ResolveAssignees(ctx context.Context, ids []string) []*models.Member
}

type ExpandState interface {
	Expanded(status models.Status) bool
}

type Options struct {
	Resolver AssigneeResolver
	// Expand defaults to every group expanded when nil.
	Expand ExpandState
	Drag   services.DragState
	Now    time.Time
}

func (o Options) expanded(status models.Status) bool {
	if o.Expand == nil {
		return true
	}
	return o.Expand.Expanded(status)
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

type Assignee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type PriorityBadge struct {
	Value models.Priority `json:"value"`
	Label string          `json:"label"`
	Style string          `json:"style"`
	Color string          `json:"color"`
}

func newPriorityBadge(p models.Priority) PriorityBadge {
	meta, ok := p.Meta()
	if !ok {
		return PriorityBadge{Value: p, Label: string(p)}
	}
	return PriorityBadge{
		Value: p,
		Label: meta.Label,
		Style: meta.Style,
		Color: meta.Color,
	}
}

func resolveAssignees(ctx context.Context, r AssigneeResolver, ids []string) []Assignee {
	out := []Assignee{}
	if r == nil {
		return out
	}
	for _, m := range r.ResolveAssignees(ctx, ids) {
		out = append(out, Assignee{ID: m.ID, Name: m.Name, Avatar: m.Avatar})
	}
	return out
}

func candidate(drag services.DragState, status models.Status) bool {
	for _, s := range drag.Candidates {
		if s == status {
			return true
		}
	}
	return false
}
