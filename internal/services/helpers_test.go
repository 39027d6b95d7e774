package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

var (
	testNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

	admin  = models.Viewer{ID: "usr-admin", Role: models.RoleAdmin}
	member = models.Viewer{ID: "usr-member", Role: models.RoleMember}
)

// testClock returns a clock that ticks one second per call, starting at
// testNow.
func testClock() func() time.Time {
	now := testNow
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("task-%d", n), nil
	}
}

func newTestStore(t *testing.T) TaskStore {
	t.Helper()
	return NewTaskStore(zerolog.Nop(), WithClock(testClock()), WithIDGenerator(sequentialIDs()))
}

func mustAdd(t *testing.T, store TaskStore, input TaskInput) *models.Task {
	t.Helper()
	task, err := store.AddTask(context.Background(), input)
	require.NoError(t, err)
	return task
}

func ptr[T any](v T) *T {
	return &v
}

// fakeStore lets a test replace individual store methods.
type fakeStore struct {
	TaskStore
	updateTask func(ctx context.Context, id string, patch TaskPatch) (*models.Task, error)
	updates    int
}

func (f *fakeStore) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	f.updates++
	if f.updateTask != nil {
		return f.updateTask(ctx, id, patch)
	}
	return f.TaskStore.UpdateTask(ctx, id, patch)
}
