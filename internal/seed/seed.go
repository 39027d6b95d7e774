// Package seed holds the fixture workspace every process starts from.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

const (
	ProjectWebsite = "prj-website"
	ProjectMobile  = "prj-mobile"

	MemberAlice = "usr-alice"
	MemberBruno = "usr-bruno"
	MemberChen  = "usr-chen"
	MemberDara  = "usr-dara"
)

func Projects() []*models.Project {
	return []*models.Project{
		{ID: ProjectWebsite, Name: "Website Redesign"},
		{ID: ProjectMobile, Name: "Mobile App"},
	}
}

// Members returns the demo team. Every member shares password, hashed with
// params.
func Members(password string, params *argon2id.Params) ([]*models.Member, error) {
	hash, err := argon2id.CreateHash(password, params)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	return []*models.Member{
		{ID: MemberAlice, Name: "Alice Moreau", Email: "alice@taskboard.local", Avatar: "/avatars/alice.png", Role: models.RoleAdmin, PasswordHash: hash},
		{ID: MemberBruno, Name: "Bruno Sato", Email: "bruno@taskboard.local", Avatar: "/avatars/bruno.png", Role: models.RoleAdmin, PasswordHash: hash},
		{ID: MemberChen, Name: "Chen Wei", Email: "chen@taskboard.local", Avatar: "/avatars/chen.png", Role: models.RoleMember, PasswordHash: hash},
		{ID: MemberDara, Name: "Dara Okafor", Email: "dara@taskboard.local", Avatar: "/avatars/dara.png", Role: models.RoleMember, PasswordHash: hash},
	}, nil
}

// Tasks returns the seed tasks with dates relative to now.
func Tasks(now time.Time) []services.TaskInput {
	day := models.StartOfDay(now)
	in := func(days int) time.Time { return day.AddDate(0, 0, days) }
	startAt := func(days int) *time.Time {
		t := in(days)
		return &t
	}

	return []services.TaskInput{
		{
			ProjectID:   ProjectWebsite,
			Title:       "Audit current landing page",
			Description: "Collect analytics and heatmaps for the existing page.",
			Status:      models.StatusDone,
			Priority:    models.PriorityNormal,
			AssignTo:    []string{MemberChen},
			StartDate:   startAt(-14),
			DueDate:     in(-7),
		},
		{
			ProjectID:   ProjectWebsite,
			Title:       "Wireframe new navigation",
			Description: "Low fidelity wireframes for header and footer.",
			Status:      models.StatusOnProgress,
			Priority:    models.PriorityHigh,
			AssignTo:    []string{MemberChen, MemberBruno},
			StartDate:   startAt(-3),
			DueDate:     in(4),
		},
		{
			ProjectID: ProjectWebsite,
			Title:     "Pick typography scale",
			Status:    models.StatusOnBoard,
			Priority:  models.PriorityLow,
			AssignTo:  []string{MemberDara},
			DueDate:   in(10),
		},
		{
			ProjectID:   ProjectWebsite,
			Title:       "Legal review of cookie banner",
			Description: "Waiting on counsel feedback.",
			Status:      models.StatusPending,
			Priority:    models.PriorityUrgent,
			AssignTo:    []string{MemberAlice},
			DueDate:     in(-1),
		},
		{
			ProjectID: ProjectWebsite,
			Title:     "Migrate blog to new CMS",
			Status:    models.StatusCanceled,
			Priority:  models.PriorityTBD,
			DueDate:   in(30),
		},
		{
			ProjectID:   ProjectMobile,
			Title:       "Crash on login with SSO",
			Description: "Reproducible on Android 14 only.",
			Status:      models.StatusOnProgress,
			Priority:    models.PriorityCritical,
			AssignTo:    []string{MemberDara},
			StartDate:   startAt(-1),
			DueDate:     in(1),
		},
		{
			ProjectID: ProjectMobile,
			Title:     "Offline mode spike",
			Status:    models.StatusOnBoard,
			Priority:  models.PriorityNormal,
			AssignTo:  []string{MemberChen, MemberDara},
			DueDate:   in(21),
		},
		{
			ProjectID: ProjectMobile,
			Title:     "App store screenshots",
			Status:    models.StatusPending,
			Priority:  models.PriorityLow,
			AssignTo:  []string{MemberBruno},
			DueDate:   in(12),
		},
		{
			ProjectID:   ProjectMobile,
			Title:       "Release 2.3 notes",
			Description: "Changelog for the store listing.",
			Status:      models.StatusDone,
			Priority:    models.PriorityNormal,
			AssignTo:    []string{MemberAlice},
			DueDate:     in(-2),
		},
		{
			ProjectID: ProjectMobile,
			Title:     "Push notification opt-in flow",
			Status:    models.StatusOnBoard,
			Priority:  models.PriorityHigh,
			DueDate:   in(7),
		},
	}
}

// Load adds every seed task to store in order.
func Load(ctx context.Context, store services.TaskStore, now time.Time) error {
	for _, input := range Tasks(now) {
		if _, err := store.AddTask(ctx, input); err != nil {
			return fmt.Errorf("failed to add seed task %q: %w", input.Title, err)
		}
	}
	return nil
}
