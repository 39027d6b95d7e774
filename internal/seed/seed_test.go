package seed

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

func TestTasks_CoverTaxonomy(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	projects := map[string]bool{}
	for _, p := range Projects() {
		projects[p.ID] = true
	}

	statuses := map[models.Status]bool{}
	priorities := map[models.Priority]bool{}
	for _, input := range Tasks(now) {
		norm, err := services.NormalizeTaskInput(input)
		require.NoError(t, err, input.Title)
		assert.Equal(t, input, norm, "seed task %q is not normalized", input.Title)
		assert.True(t, projects[input.ProjectID], input.Title)
		statuses[input.Status] = true
		priorities[input.Priority] = true
	}
	assert.Len(t, statuses, len(models.Statuses()))
	assert.Len(t, priorities, len(models.Priorities()))
}

func TestMembers(t *testing.T) {
	params := &argon2id.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	members, err := Members("demo-password", params)
	require.NoError(t, err)
	require.Len(t, members, 4)

	roles := map[models.Role]int{}
	for _, m := range members {
		roles[m.Role]++
		match, err := argon2id.ComparePasswordAndHash("demo-password", m.PasswordHash)
		require.NoError(t, err)
		assert.True(t, match, m.ID)
	}
	assert.Equal(t, 2, roles[models.RoleAdmin])
	assert.Equal(t, 2, roles[models.RoleMember])
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := services.NewTaskStore(zerolog.Nop())

	require.NoError(t, Load(ctx, store, now))

	website, err := store.GetTasksByProject(ctx, ProjectWebsite)
	require.NoError(t, err)
	mobile, err := store.GetTasksByProject(ctx, ProjectMobile)
	require.NoError(t, err)
	assert.Equal(t, len(Tasks(now)), len(website)+len(mobile))
	assert.Equal(t, "Audit current landing page", website[0].Title)
}
