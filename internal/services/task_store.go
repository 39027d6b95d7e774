package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type taskStoreImpl struct {
	logger zerolog.Logger
	now    func() time.Time
	newID  func() (string, error)

	mu sync.RWMutex
	// tasks is replaced wholesale on every mutation and never modified in
	// place, so a snapshot taken under the read lock stays consistent.
	tasks []*models.Task
}

type TaskStoreOption func(*taskStoreImpl)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) TaskStoreOption {
	return func(s *taskStoreImpl) {
		s.now = now
	}
}

// WithIDGenerator overrides the id source used by AddTask.
func WithIDGenerator(newID func() (string, error)) TaskStoreOption {
	return func(s *taskStoreImpl) {
		s.newID = newID
	}
}

func NewTaskStore(
	logger zerolog.Logger,
	opts ...TaskStoreOption,
) TaskStore {
	s := &taskStoreImpl{
		logger: logger,
		now:    time.Now,
		newID:  newTaskID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate task id: %w", err)
	}
	return id.String(), nil
}

func (s *taskStoreImpl) AddTask(_ context.Context, input TaskInput) (*models.Task, error) {
	id, err := s.newID()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task id")
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		ID:          id,
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.AssignTo != nil {
		task.AssignTo = append([]string(nil), input.AssignTo...)
	}
	if input.StartDate != nil {
		start := *input.StartDate
		task.StartDate = &start
	}
	if task.DueDate.IsZero() {
		task.DueDate = models.StartOfDay(now)
	}

	s.mu.Lock()
	next := make([]*models.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.tasks = append(next, task)
	s.mu.Unlock()

	s.logger.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Str("status", string(task.Status)).
		Msg("added task")
	return task.Clone(), nil
}

func (s *taskStoreImpl) UpdateTask(_ context.Context, id string, patch TaskPatch) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	updated := s.tasks[idx].Clone()
	applyPatch(updated, patch)
	updated.UpdatedAt = s.now()

	next := make([]*models.Task, len(s.tasks))
	copy(next, s.tasks)
	next[idx] = updated
	s.tasks = next

	s.logger.Debug().
		Str("task_id", id).
		Time("updated_at", updated.UpdatedAt).
		Msg("merged task patch")

	s.logger.Info().
		Str("task_id", id).
		Str("status", string(updated.Status)).
		Msg("updated task")
	return updated.Clone(), nil
}

func applyPatch(task *models.Task, patch TaskPatch) {
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.AssignTo != nil {
		task.AssignTo = append([]string(nil), (*patch.AssignTo)...)
	}
	if patch.StartDate != nil {
		if *patch.StartDate == nil {
			task.StartDate = nil
		} else {
			start := **patch.StartDate
			task.StartDate = &start
		}
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
}

func (s *taskStoreImpl) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	next := make([]*models.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	s.tasks = next

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskStoreImpl) GetTask(_ context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Debug().
			Str("task_id", id).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}
	return s.tasks[idx].Clone(), nil
}

func (s *taskStoreImpl) GetTasksByProject(_ context.Context, projectID string) ([]*models.Task, error) {
	tasks := s.filter(func(t *models.Task) bool {
		return t.ProjectID == projectID
	})
	s.logger.Debug().
		Str("project_id", projectID).
		Int("count", len(tasks)).
		Msg("selected tasks by project")
	return tasks, nil
}

func (s *taskStoreImpl) GetTasksByStatus(_ context.Context, status models.Status) ([]*models.Task, error) {
	tasks := s.filter(func(t *models.Task) bool {
		return t.Status == status
	})
	s.logger.Debug().
		Str("status", string(status)).
		Int("count", len(tasks)).
		Msg("selected tasks by status")
	return tasks, nil
}

func (s *taskStoreImpl) filter(keep func(*models.Task) bool) []*models.Task {
	s.mu.RLock()
	snapshot := s.tasks
	s.mu.RUnlock()

	tasks := make([]*models.Task, 0, len(snapshot))
	for _, t := range snapshot {
		if keep(t) {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks
}

// indexOf must be called with s.mu held.
func (s *taskStoreImpl) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
