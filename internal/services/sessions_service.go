package services

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

// ViewSession is the per-viewer state of one project's board: the collapse
// flags of its groups and the drag gesture in progress.
type ViewSession struct {
	ViewerID  string
	ProjectID string
	CreatedAt time.Time
	Drag      *DragSession

	mu        sync.Mutex
	collapsed map[models.Status]bool
}

// Expanded reports whether the group is shown. Groups start expanded.
func (v *ViewSession) Expanded(status models.Status) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return !v.collapsed[status]
}

// Toggle flips the group's collapse flag and returns whether it is now
// expanded.
func (v *ViewSession) Toggle(status models.Status) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidStatus
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.collapsed[status] = !v.collapsed[status]
	return !v.collapsed[status], nil
}

// SessionService hands out view sessions keyed by viewer and project.
type SessionService interface {
	GetViewSession(viewer models.Viewer, projectID string) *ViewSession
}

type sessionServiceImpl struct {
	logger zerolog.Logger
	store  TaskStore

	mu       sync.Mutex
	sessions map[sessionKey]*ViewSession
}

type sessionKey struct {
	viewerID  string
	role      models.Role
	projectID string
}

func NewSessionService(
	logger zerolog.Logger,
	store TaskStore,
) SessionService {
	return &sessionServiceImpl{
		logger:   logger,
		store:    store,
		sessions: make(map[sessionKey]*ViewSession),
	}
}

func (s *sessionServiceImpl) GetViewSession(viewer models.Viewer, projectID string) *ViewSession {
	key := sessionKey{viewerID: viewer.ID, role: viewer.Role, projectID: projectID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[key]; ok {
		return session
	}

	session := &ViewSession{
		ViewerID:  viewer.ID,
		ProjectID: projectID,
		CreatedAt: time.Now(),
		Drag: NewDragSession(
			s.logger.With().
				Str("viewer_id", viewer.ID).
				Str("project_id", projectID).
				Logger(),
			s.store,
			viewer,
			projectID,
		),
		collapsed: make(map[models.Status]bool),
	}
	s.sessions[key] = session

	s.logger.Debug().
		Str("viewer_id", viewer.ID).
		Str("project_id", projectID).
		Msg("created view session")
	return session
}
