package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

// Editor buffers edits to one task until they are saved or discarded.
type Editor struct {
	logger zerolog.Logger
	store  TaskStore
	viewer models.Viewer
	taskID string

	mu              sync.Mutex
	snapshot        *models.Task
	draft           *models.Task
	deleteRequested bool
	deleted         bool
}

func newEditor(
	logger zerolog.Logger,
	store TaskStore,
	viewer models.Viewer,
	task *models.Task,
) *Editor {
	return &Editor{
		logger:   logger,
		store:    store,
		viewer:   viewer,
		taskID:   task.ID,
		snapshot: task.Clone(),
		draft:    task.Clone(),
	}
}

func (e *Editor) TaskID() string {
	return e.taskID
}

func (e *Editor) Capabilities() Capabilities {
	return ResolveCapabilities(e.viewer)
}

func (e *Editor) Draft() *models.Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.draft.Clone()
}

// Snapshot is the task as it was when opened or last committed.
func (e *Editor) Snapshot() *models.Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshot.Clone()
}

func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return !diffTasks(e.snapshot, e.draft).IsEmpty()
}

func (e *Editor) DeleteRequested() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.deleteRequested
}

// Edit applies patch to the draft only. Enum fields are checked here, the
// title is checked on Save.
func (e *Editor) Edit(patch TaskPatch) error {
	if !ResolveCapabilities(e.viewer).FullEdit {
		return ErrForbidden
	}
	if err := validatePatch(patch); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	applyPatch(e.draft, patch)
	return nil
}

// Save commits the draft with a single store update. A clean draft is not
// written.
func (e *Editor) Save(ctx context.Context) (*models.Task, error) {
	if !ResolveCapabilities(e.viewer).FullEdit {
		return nil, ErrForbidden
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	title, err := ValidateTitle(e.draft.Title)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("task_id", e.snapshot.ID).
			Msg("rejected task save")
		return nil, err
	}
	e.draft.Title = title

	patch := diffTasks(e.snapshot, e.draft)
	if patch.IsEmpty() {
		e.logger.Debug().
			Str("task_id", e.snapshot.ID).
			Msg("nothing to save")
		return e.snapshot.Clone(), nil
	}

	task, err := e.store.UpdateTask(ctx, e.snapshot.ID, patch)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("task_id", e.snapshot.ID).
			Msg("failed to save task")
		return nil, err
	}
	e.snapshot = task.Clone()
	e.draft = task.Clone()

	e.logger.Info().
		Str("task_id", task.ID).
		Msg("saved task")
	return task, nil
}

// QuickStatus writes a status change straight to the store, bypassing the
// draft. It is the only mutation open to restricted viewers and is gated on
// the task as it is now, not as it was when the editor opened.
func (e *Editor) QuickStatus(ctx context.Context, status models.Status) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.store.GetTask(ctx, e.taskID)
	if err != nil {
		return nil, err
	}
	if !CanChangeStatus(e.viewer, current) {
		e.logger.Warn().
			Str("task_id", e.taskID).
			Msg("viewer cannot change task status")
		return nil, ErrForbidden
	}

	task, err := e.store.UpdateTask(ctx, e.taskID, TaskPatch{Status: &status})
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("task_id", e.taskID).
			Msg("failed to update task status")
		return nil, err
	}
	e.snapshot.Status = task.Status
	e.snapshot.UpdatedAt = task.UpdatedAt
	e.draft.Status = task.Status
	e.draft.UpdatedAt = task.UpdatedAt

	e.logger.Info().
		Str("task_id", task.ID).
		Str("status", string(task.Status)).
		Msg("updated task status")
	return task, nil
}

// RequestDelete is the first step of deleting; ConfirmDelete performs it.
func (e *Editor) RequestDelete() error {
	if !ResolveCapabilities(e.viewer).Delete {
		return ErrForbidden
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.deleteRequested = true
	return nil
}

func (e *Editor) CancelDelete() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.deleteRequested = false
}

func (e *Editor) ConfirmDelete(ctx context.Context) error {
	if !ResolveCapabilities(e.viewer).Delete {
		return ErrForbidden
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.deleteRequested {
		return ErrDeleteNotRequested
	}
	e.deleteRequested = false

	err := e.store.DeleteTask(ctx, e.snapshot.ID)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("task_id", e.snapshot.ID).
			Msg("failed to delete task")
		return err
	}
	e.deleted = true

	e.logger.Info().
		Str("task_id", e.snapshot.ID).
		Msg("deleted task from editor")
	return nil
}

func (e *Editor) isDeleted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.deleted
}

// diffTasks returns the patch that turns from into to.
func diffTasks(from, to *models.Task) TaskPatch {
	var patch TaskPatch
	if from.ProjectID != to.ProjectID {
		patch.ProjectID = &to.ProjectID
	}
	if from.Title != to.Title {
		patch.Title = &to.Title
	}
	if from.Description != to.Description {
		patch.Description = &to.Description
	}
	if from.Status != to.Status {
		patch.Status = &to.Status
	}
	if from.Priority != to.Priority {
		patch.Priority = &to.Priority
	}
	if !slices.Equal(from.AssignTo, to.AssignTo) {
		assignTo := slices.Clone(to.AssignTo)
		patch.AssignTo = &assignTo
	}
	if !equalTimePtr(from.StartDate, to.StartDate) {
		start := to.StartDate
		patch.StartDate = &start
	}
	if !from.DueDate.Equal(to.DueDate) {
		patch.DueDate = &to.DueDate
	}
	return patch
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

type editorServiceImpl struct {
	logger zerolog.Logger
	store  TaskStore

	mu      sync.Mutex
	editors map[editorKey]*Editor
}

type editorKey struct {
	viewerID string
	role     models.Role
	taskID   string
}

func NewEditorService(
	logger zerolog.Logger,
	store TaskStore,
) EditorService {
	return &editorServiceImpl{
		logger:  logger,
		store:   store,
		editors: make(map[editorKey]*Editor),
	}
}

// Open starts a fresh editor on the task's current state, replacing any
// editor the viewer already had open on it.
func (s *editorServiceImpl) Open(ctx context.Context, viewer models.Viewer, taskID string) (*Editor, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanSee(viewer, task) {
		s.logger.Warn().
			Str("viewer_id", viewer.ID).
			Str("task_id", taskID).
			Msg("viewer cannot open task")
		return nil, ErrForbidden
	}

	editor := newEditor(
		s.logger.With().
			Str("viewer_id", viewer.ID).
			Logger(),
		s.store,
		viewer,
		task,
	)

	s.mu.Lock()
	s.editors[editorKey{viewerID: viewer.ID, role: viewer.Role, taskID: taskID}] = editor
	s.mu.Unlock()

	s.logger.Debug().
		Str("viewer_id", viewer.ID).
		Str("task_id", taskID).
		Msg("opened editor")
	return editor, nil
}

func (s *editorServiceImpl) Get(viewer models.Viewer, taskID string) (*Editor, error) {
	key := editorKey{viewerID: viewer.ID, role: viewer.Role, taskID: taskID}

	s.mu.Lock()
	defer s.mu.Unlock()

	editor, ok := s.editors[key]
	if !ok {
		return nil, ErrEditorNotFound
	}
	if editor.isDeleted() {
		delete(s.editors, key)
		return nil, ErrEditorNotFound
	}
	return editor, nil
}

// Close discards the editor and any unsaved edits.
func (s *editorServiceImpl) Close(viewer models.Viewer, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.editors, editorKey{viewerID: viewer.ID, role: viewer.Role, taskID: taskID})
}
