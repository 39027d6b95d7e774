package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

func TestPartitionByStatus(t *testing.T) {
	tasks := []*models.Task{
		{ID: "1", Status: models.StatusDone},
		{ID: "2", Status: models.StatusOnBoard},
		{ID: "3", Status: models.StatusDone},
		{ID: "4", Status: models.Status("archived")},
		{ID: "5", Status: models.StatusPending},
	}

	groups := PartitionByStatus(tasks)
	require.Len(t, groups, 5)

	ids := func(g StatusGroup) []string {
		out := []string{}
		for _, task := range g.Tasks {
			out = append(out, task.ID)
		}
		return out
	}
	assert.Equal(t, models.StatusOnBoard, groups[0].Meta.Status)
	assert.Equal(t, []string{"2"}, ids(groups[0]))
	assert.Equal(t, []string{}, ids(groups[1]))
	assert.Equal(t, []string{"5"}, ids(groups[2]))
	assert.Equal(t, []string{}, ids(groups[3]))
	assert.Equal(t, []string{"1", "3"}, ids(groups[4]))

	// Every task with a known status lands in exactly one group.
	total := 0
	for _, g := range groups {
		assert.NotNil(t, g.Tasks)
		total += g.Count()
	}
	assert.Equal(t, 4, total)
}

func TestPartitionByStatus_Empty(t *testing.T) {
	groups := PartitionByStatus(nil)
	require.Len(t, groups, 5)
	for _, g := range groups {
		assert.NotNil(t, g.Tasks)
		assert.Zero(t, g.Count())
	}
}

func TestNarrowForViewer(t *testing.T) {
	tasks := []*models.Task{
		{ID: "1", AssignTo: []string{member.ID}},
		{ID: "2", AssignTo: []string{"usr-other"}},
		{ID: "3"},
		{ID: "4", AssignTo: []string{"usr-other", member.ID}},
	}

	assert.Equal(t, tasks, NarrowForViewer(admin, tasks))

	narrowed := NarrowForViewer(member, tasks)
	if assert.Len(t, narrowed, 2) {
		assert.Equal(t, "1", narrowed[0].ID)
		assert.Equal(t, "4", narrowed[1].ID)
	}
	for _, task := range narrowed {
		assert.True(t, task.IsAssignedTo(member.ID))
	}
}

func TestBoardService_Board(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	directory := NewDirectoryService(zerolog.Nop(), nil, []*models.Project{{ID: "prj-1", Name: "Website"}})
	boards := NewBoardService(zerolog.Nop(), store, directory)

	mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "mine", Status: models.StatusOnBoard, AssignTo: []string{member.ID}})
	mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "theirs", Status: models.StatusOnBoard})
	mustAdd(t, store, TaskInput{ProjectID: "prj-2", Title: "elsewhere", Status: models.StatusOnBoard, AssignTo: []string{member.ID}})

	board, err := boards.Board(ctx, admin, "prj-1")
	require.NoError(t, err)
	assert.Equal(t, "Website", board.Project.Name)
	assert.Equal(t, 2, board.Total())

	board, err = boards.Board(ctx, member, "prj-1")
	require.NoError(t, err)
	assert.Equal(t, 1, board.Total())
	group, ok := board.Group(models.StatusOnBoard)
	require.True(t, ok)
	assert.Equal(t, "mine", group.Tasks[0].Title)

	_, err = boards.Board(ctx, admin, "prj-missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, ok = board.Group(models.Status("archived"))
	assert.False(t, ok)
}

func TestBoardService_VisibleTasksByStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	boards := NewBoardService(zerolog.Nop(), store, NewDirectoryService(zerolog.Nop(), nil, nil))

	mustAdd(t, store, TaskInput{ProjectID: "prj-1", Title: "a", Status: models.StatusDone, AssignTo: []string{member.ID}})
	mustAdd(t, store, TaskInput{ProjectID: "prj-2", Title: "b", Status: models.StatusDone})

	tasks, err := boards.VisibleTasksByStatus(ctx, admin, models.StatusDone)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = boards.VisibleTasksByStatus(ctx, member, models.StatusDone)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	_, err = boards.VisibleTasksByStatus(ctx, admin, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

// The end-to-end flow: a task added to a project shows up in On Board, is
// dragged to Done, and the partition follows.
func TestBoard_AddThenDragToDone(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	directory := NewDirectoryService(zerolog.Nop(), nil, []*models.Project{{ID: "prj-1", Name: "Website"}})
	boards := NewBoardService(zerolog.Nop(), store, directory)

	input, err := NormalizeTaskInput(TaskInput{ProjectID: "prj-1", Title: "  Design Review  "})
	require.NoError(t, err)
	task := mustAdd(t, store, input)

	board, err := boards.Board(ctx, admin, "prj-1")
	require.NoError(t, err)
	onBoard, _ := board.Group(models.StatusOnBoard)
	assert.Equal(t, 1, onBoard.Count())
	assert.Equal(t, "Design Review", onBoard.Tasks[0].Title)

	drag := NewDragSession(zerolog.Nop(), store, admin, "prj-1")
	require.NoError(t, drag.Start(ctx, task.ID))
	result, err := drag.Drop(ctx, models.StatusDone, task.ID)
	require.NoError(t, err)
	assert.True(t, result.Changed())
	drag.End()

	board, err = boards.Board(ctx, admin, "prj-1")
	require.NoError(t, err)
	onBoard, _ = board.Group(models.StatusOnBoard)
	done, _ := board.Group(models.StatusDone)
	assert.Zero(t, onBoard.Count())
	if assert.Equal(t, 1, done.Count()) {
		assert.Equal(t, task.ID, done.Tasks[0].ID)
	}
}
