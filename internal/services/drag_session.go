package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

var ErrEmptyDragPayload = errors.New("drag payload is empty")

// DropResult describes what a drop did to the store.
type DropResult struct {
	TaskID string
	From   models.Status
	To     models.Status
	// Updated is true when the store accepted the status update.
	Updated bool
	Task    *models.Task
}

// Changed reports whether the drop moved the task to a different group.
func (r DropResult) Changed() bool {
	return r.Updated && r.From != r.To
}

// DragState is a read-only snapshot of a drag session.
type DragState struct {
	TaskID     string
	Lifted     string
	Candidates []models.Status
}

func (s DragState) Dragging() bool {
	return s.TaskID != ""
}

// DragSession tracks one pointer's drag gesture over one project's columns.
// A gesture goes Start, then any number of Enter/Over/Leave, then Drop
// and/or End. Only Drop writes to the store.
type DragSession struct {
	logger    zerolog.Logger
	store     TaskStore
	viewer    models.Viewer
	projectID string

	mu sync.Mutex
	// taskID is the in-progress marker read by columns deciding whether to
	// highlight and by Drop when the transfer payload is empty.
	taskID     string
	lifted     string
	candidates map[models.Status]bool
}

func NewDragSession(
	logger zerolog.Logger,
	store TaskStore,
	viewer models.Viewer,
	projectID string,
) *DragSession {
	return &DragSession{
		logger:     logger,
		store:      store,
		viewer:     viewer,
		projectID:  projectID,
		candidates: make(map[models.Status]bool),
	}
}

// Start begins a drag of taskID. A task of another project is reported as
// not found and one the viewer cannot see as forbidden. A leftover gesture
// is discarded.
func (d *DragSession) Start(ctx context.Context, taskID string) error {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return ErrEmptyDragPayload
	}

	task, err := d.store.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task.ProjectID != d.projectID {
		d.logger.Warn().
			Str("task_id", taskID).
			Str("project_id", task.ProjectID).
			Msg("task belongs to another project")
		return ErrTaskNotFound
	}
	if !CanSee(d.viewer, task) {
		d.logger.Warn().
			Str("task_id", taskID).
			Msg("viewer cannot see task")
		return ErrForbidden
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.taskID != "" {
		d.logger.Warn().
			Str("stale_task_id", d.taskID).
			Msg("discarding stale drag")
	}
	d.taskID = taskID
	d.lifted = taskID
	clear(d.candidates)

	d.logger.Debug().
		Str("task_id", taskID).
		Msg("drag started")
	return nil
}

// Enter marks the column as a drop candidate if a drag is in progress and
// reports whether it did.
func (d *DragSession) Enter(status models.Status) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidStatus
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.taskID == "" {
		return false, nil
	}
	d.candidates[status] = true
	return true, nil
}

// Over reports whether the column accepts drops.
func (d *DragSession) Over(status models.Status) bool {
	return status.Valid()
}

func (d *DragSession) Leave(status models.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.candidates, status)
}

// Drop moves the dragged task into the status column. The task id comes from
// payload, or from the in-progress marker when payload is empty. The marker
// and highlights are cleared whatever the outcome.
func (d *DragSession) Drop(ctx context.Context, status models.Status, payload string) (result DropResult, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.reset(false)

	taskID := strings.TrimSpace(payload)
	if taskID == "" {
		taskID = d.taskID
	}
	result = DropResult{TaskID: taskID, To: status}
	if taskID == "" {
		d.logger.Warn().Msg("drop without a dragged task")
		return result, nil
	}
	if !status.Valid() {
		d.logger.Error().
			Str("status", string(status)).
			Msg("drop on unknown status")
		return result, ErrInvalidStatus
	}

	task, from, err := d.move(ctx, taskID, status)
	if err != nil {
		d.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Str("status", string(status)).
			Msg("failed to drop task")
		return result, err
	}
	result.From = from
	result.Updated = true
	result.Task = task

	d.logger.Info().
		Str("task_id", taskID).
		Str("from", string(from)).
		Str("to", string(status)).
		Msg("dropped task")
	return result, nil
}

func (d *DragSession) move(ctx context.Context, taskID string, status models.Status) (task *models.Task, from models.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			task, err = nil, fmt.Errorf("status update panicked: %v", r)
		}
	}()

	current, err := d.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, "", err
	}
	if current.ProjectID != d.projectID {
		return nil, current.Status, ErrTaskNotFound
	}
	if !CanChangeStatus(d.viewer, current) {
		return nil, current.Status, ErrForbidden
	}

	task, err = d.store.UpdateTask(ctx, taskID, TaskPatch{Status: &status})
	if err != nil {
		return nil, current.Status, err
	}
	return task, current.Status, nil
}

// End finishes the gesture on the source side, with or without a drop.
func (d *DragSession) End() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reset(true)
	d.logger.Debug().Msg("drag ended")
}

// Cancel aborts the gesture without touching the store.
func (d *DragSession) Cancel() {
	d.End()
}

func (d *DragSession) State() DragState {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := DragState{
		TaskID: d.taskID,
		Lifted: d.lifted,
	}
	for _, meta := range models.Statuses() {
		if d.candidates[meta.Status] {
			state.Candidates = append(state.Candidates, meta.Status)
		}
	}
	return state
}

// reset must be called with d.mu held.
func (d *DragSession) reset(unlift bool) {
	d.taskID = ""
	clear(d.candidates)
	if unlift {
		d.lifted = ""
	}
}
