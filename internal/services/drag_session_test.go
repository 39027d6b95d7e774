package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

func TestDragSession_Gesture(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	task := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "Move me", Status: models.StatusOnBoard})
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, task.ID))
	state := drag.State()
	assert.True(t, state.Dragging())
	assert.Equal(t, task.ID, state.TaskID)
	assert.Equal(t, task.ID, state.Lifted)

	highlighted, err := drag.Enter(models.StatusDone)
	require.NoError(t, err)
	assert.True(t, highlighted)
	_, err = drag.Enter(models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, []models.Status{models.StatusPending, models.StatusDone}, drag.State().Candidates)

	drag.Leave(models.StatusPending)
	assert.Equal(t, []models.Status{models.StatusDone}, drag.State().Candidates)
	assert.True(t, drag.Over(models.StatusDone))

	result, err := drag.Drop(ctx, models.StatusDone, task.ID)
	require.NoError(t, err)
	assert.Equal(t, DropResult{
		TaskID:  task.ID,
		From:    models.StatusOnBoard,
		To:      models.StatusDone,
		Updated: true,
		Task:    result.Task,
	}, result)
	assert.True(t, result.Changed())
	assert.Equal(t, models.StatusDone, result.Task.Status)

	// The marker and highlights are gone right after the drop; the card is
	// still lifted until the source side ends the gesture.
	state = drag.State()
	assert.False(t, state.Dragging())
	assert.Empty(t, state.Candidates)
	assert.Equal(t, task.ID, state.Lifted)

	drag.End()
	assert.Empty(t, drag.State().Lifted)

	got, err := store.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, got.Status)
}

func TestDragSession_DropSameColumn(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	task := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "Stay", Status: models.StatusPending})
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, task.ID))
	result, err := drag.Drop(ctx, models.StatusPending, "")
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.False(t, result.Changed())
}

func TestDragSession_DropFallsBackToMarker(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	task := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "Marker", Status: models.StatusOnBoard})
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, task.ID))
	result, err := drag.Drop(ctx, models.StatusOnProgress, "   ")
	require.NoError(t, err)
	assert.Equal(t, task.ID, result.TaskID)
	assert.Equal(t, models.StatusOnProgress, result.Task.Status)
}

func TestDragSession_DropPrefersPayload(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	dragged := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "Dragged", Status: models.StatusOnBoard})
	other := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "Payload", Status: models.StatusOnBoard})
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, dragged.ID))
	result, err := drag.Drop(ctx, models.StatusDone, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, result.TaskID)

	got, err := store.GetTask(ctx, dragged.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnBoard, got.Status)
}

func TestDragSession_DropWithoutDrag(t *testing.T) {
	store := &fakeStore{TaskStore: newTestStore(t)}
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	result, err := drag.Drop(context.Background(), models.StatusDone, "")
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.Zero(t, store.updates)
}

func TestDragSession_EnterWithoutDrag(t *testing.T) {
	drag := NewDragSession(zerolog.Nop(), newTestStore(t), admin, "prj-1")

	highlighted, err := drag.Enter(models.StatusDone)
	require.NoError(t, err)
	assert.False(t, highlighted)
	assert.Empty(t, drag.State().Candidates)

	_, err = drag.Enter("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.False(t, drag.Over("archived"))
}

func TestDragSession_StartRejectsEmptyPayload(t *testing.T) {
	drag := NewDragSession(zerolog.Nop(), newTestStore(t), admin, "prj-1")
	assert.ErrorIs(t, drag.Start(context.Background(), " "), ErrEmptyDragPayload)
	assert.False(t, drag.State().Dragging())
}

func TestDragSession_StartOffBoardTask(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	hidden := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "Hidden", Status: models.StatusOnBoard})
	foreign := mustAdd(t, store, TaskInput{ProjectID: "prj-2", Title: "Foreign", Status: models.StatusOnBoard})

	tests := []struct {
		name    string
		viewer  models.Viewer
		taskID  string
		wantErr error
	}{
		{name: "unknown", viewer: admin, taskID: "missing", wantErr: ErrTaskNotFound},
		{name: "other project", viewer: admin, taskID: foreign.ID, wantErr: ErrTaskNotFound},
		{name: "not visible", viewer: member, taskID: hidden.ID, wantErr: ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drag := NewDragSession(zerolog.Nop(), store, tt.viewer, "prj-1")
			assert.ErrorIs(t, drag.Start(ctx, tt.taskID), tt.wantErr)
			assert.Equal(t, DragState{}, drag.State())
		})
	}
}

func TestDragSession_StartDiscardsStaleDrag(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	first := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "First", Status: models.StatusOnBoard})
	second := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "Second", Status: models.StatusOnBoard})
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, first.ID))
	_, err := drag.Enter(models.StatusDone)
	require.NoError(t, err)

	require.NoError(t, drag.Start(ctx, second.ID))
	state := drag.State()
	assert.Equal(t, second.ID, state.TaskID)
	assert.Empty(t, state.Candidates)
}

func TestDragSession_Cancel(t *testing.T) {
	ctx := context.Background()
	inner := newTestStore(t)
	task := mustAdd(t, inner, TaskInput{ProjectID: "prj-1", Title: "Cancelled", Status: models.StatusOnBoard})
	store := &fakeStore{TaskStore: inner}
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, task.ID))
	_, err := drag.Enter(models.StatusDone)
	require.NoError(t, err)
	drag.Cancel()

	assert.Equal(t, DragState{}, drag.State())
	assert.Zero(t, store.updates)
}

func TestDragSession_DropFailuresClearState(t *testing.T) {
	tests := []struct {
		name       string
		updateTask func(context.Context, string, TaskPatch) (*models.Task, error)
		wantErr    string
	}{
		{
			name: "error",
			updateTask: func(context.Context, string, TaskPatch) (*models.Task, error) {
				return nil, errors.New("store unavailable")
			},
			wantErr: "store unavailable",
		},
		{
			name: "panic",
			updateTask: func(context.Context, string, TaskPatch) (*models.Task, error) {
				panic("boom")
			},
			wantErr: "status update panicked: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			inner := newTestStore(t)
			task := mustAdd(t, inner, TaskInput{ProjectID: "prj-1", Title: "Fragile", Status: models.StatusOnBoard})
			store := &fakeStore{TaskStore: inner, updateTask: tt.updateTask}
			drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

			require.NoError(t, drag.Start(ctx, task.ID))
			_, err := drag.Enter(models.StatusDone)
			require.NoError(t, err)

			result, err := drag.Drop(ctx, models.StatusDone, task.ID)
			assert.EqualError(t, err, tt.wantErr)
			assert.False(t, result.Updated)
			assert.Equal(t, 1, store.updates)

			state := drag.State()
			assert.False(t, state.Dragging())
			assert.Empty(t, state.Candidates)

			got, err := inner.GetTask(ctx, task.ID)
			require.NoError(t, err)
			assert.Equal(t, models.StatusOnBoard, got.Status)
		})
	}
}

func TestDragSession_DropInvalidStatus(t *testing.T) {
	ctx := context.Background()
	inner := newTestStore(t)
	task := mustAdd(t, inner, TaskInput{ProjectID: "prj-1", Title: "Nowhere", Status: models.StatusOnBoard})
	store := &fakeStore{TaskStore: inner}
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, task.ID))
	_, err := drag.Drop(ctx, "archived", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, store.updates)
	assert.False(t, drag.State().Dragging())
}

func TestDragSession_DropUnknownTask(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	task := mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "Gone", Status: models.StatusOnBoard})
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, task.ID))
	require.NoError(t, store.DeleteTask(ctx, task.ID))
	_, err := drag.Drop(ctx, models.StatusDone, "")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.False(t, drag.State().Dragging())
}

func TestDragSession_DropOtherProjectTask(t *testing.T) {
	ctx := context.Background()
	inner := newTestStore(t)
	local := mustAdd(t, inner, TaskInput{ProjectID: "prj-1", Title: "Local", Status: models.StatusOnBoard})
	foreign := mustAdd(t, inner, TaskInput{ProjectID: "prj-2", Title: "Foreign", Status: models.StatusOnBoard})
	store := &fakeStore{TaskStore: inner}
	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")

	require.NoError(t, drag.Start(ctx, local.ID))
	_, err := drag.Enter(models.StatusDone)
	require.NoError(t, err)

	result, err := drag.Drop(ctx, models.StatusDone, foreign.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.False(t, result.Updated)
	assert.Zero(t, store.updates)

	state := drag.State()
	assert.False(t, state.Dragging())
	assert.Empty(t, state.Candidates)

	got, err := inner.GetTask(ctx, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnBoard, got.Status)
}

func TestDragSession_MemberCanOnlyMoveAssigned(t *testing.T) {
	ctx := context.Background()
	inner := newTestStore(t)
	mine := mustAdd(t, inner, TaskInput{ProjectID: "prj-1", Title: "Mine", Status: models.StatusOnBoard, AssignTo: []string{member.ID}})
	theirs := mustAdd(t, inner, TaskInput{ProjectID: "prj-1", Title: "Theirs", Status: models.StatusOnBoard})
	store := &fakeStore{TaskStore: inner}
	drag := NewDragSession(zerolog.Nop(), store, member, "prj-1")

	assert.ErrorIs(t, drag.Start(ctx, theirs.ID), ErrForbidden)
	_, err := drag.Drop(ctx, models.StatusDone, theirs.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, store.updates)

	require.NoError(t, drag.Start(ctx, mine.ID))
	result, err := drag.Drop(ctx, models.StatusDone, mine.ID)
	require.NoError(t, err)
	assert.True(t, result.Changed())
	assert.Equal(t, 1, store.updates)
}
