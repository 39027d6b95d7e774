package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type boardServiceImpl struct {
	logger    zerolog.Logger
	store     TaskStore
	directory DirectoryService
}

func NewBoardService(
	logger zerolog.Logger,
	store TaskStore,
	directory DirectoryService,
) BoardService {
	return &boardServiceImpl{
		logger:    logger,
		store:     store,
		directory: directory,
	}
}

func (s *boardServiceImpl) Board(ctx context.Context, viewer models.Viewer, projectID string) (*Board, error) {
	project, err := s.directory.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.VisibleTasks(ctx, viewer, projectID)
	if err != nil {
		return nil, err
	}

	board := &Board{
		Project: *project,
		Viewer:  viewer,
		Groups:  PartitionByStatus(tasks),
	}
	s.logger.Debug().
		Str("project_id", projectID).
		Str("viewer_id", viewer.ID).
		Int("total", board.Total()).
		Msg("partitioned board")
	return board, nil
}

func (s *boardServiceImpl) VisibleTasks(ctx context.Context, viewer models.Viewer, projectID string) ([]*models.Task, error) {
	tasks, err := s.store.GetTasksByProject(ctx, projectID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", projectID).
			Msg("failed to get tasks by project")
		return nil, err
	}
	return NarrowForViewer(viewer, tasks), nil
}

func (s *boardServiceImpl) VisibleTasksByStatus(ctx context.Context, viewer models.Viewer, status models.Status) ([]*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	tasks, err := s.store.GetTasksByStatus(ctx, status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("status", string(status)).
			Msg("failed to get tasks by status")
		return nil, err
	}
	return NarrowForViewer(viewer, tasks), nil
}
