package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrEditorNotFound     = errors.New("editor not found")
	ErrForbidden          = errors.New("operation not permitted for viewer")
	ErrInvalidTitle       = errors.New("title must be at least 3 characters")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrInvalidPriority    = errors.New("invalid task priority")
	ErrDeleteNotRequested = errors.New("delete was not requested")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type TaskStore interface {
	// AddTask appends a new task built from input. It generates the id and
	// stamps both timestamps with the current time. A zero due date becomes
	// the start of today.
	AddTask(ctx context.Context, input TaskInput) (*models.Task, error)

	// UpdateTask shallow-merges the non-nil fields of patch into the task and
	// refreshes UpdatedAt. The id and CreatedAt are never touched.
	//
	// It returns ErrTaskNotFound and leaves the collection untouched if no
	// task has the given id.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error)

	// DeleteTask removes the task with the given id. Deleting an absent task
	// leaves the collection untouched and returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id string) error

	GetTask(ctx context.Context, id string) (*models.Task, error)

	// GetTasksByProject returns the project's tasks in insertion order.
	GetTasksByProject(ctx context.Context, projectID string) ([]*models.Task, error)

	// GetTasksByStatus returns tasks of every project with the given status
	// in insertion order.
	GetTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error)
}

type DirectoryService interface {
	GetMember(ctx context.Context, id string) (*models.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	ListMembers(ctx context.Context) ([]*models.Member, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)

	// ResolveAssignees maps ids to members in input order, skipping unknown ids.
	ResolveAssignees(ctx context.Context, ids []string) []*models.Member
}

type AuthService interface {
	// Login waits for the simulated delay, checks the credentials against the
	// directory and issues a signed access token.
	//
	// It returns ErrInvalidCredentials if the email is unknown or the password
	// doesn't match.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// ParseToken validates the access token and returns the viewer it was
	// issued to or jwt.ErrTokenExpired if the token is expired.
	ParseToken(token string) (*models.Viewer, error)
}

type BoardService interface {
	// Board narrows the project's tasks to what the viewer may see and splits
	// them into the five status groups.
	Board(ctx context.Context, viewer models.Viewer, projectID string) (*Board, error)

	// VisibleTasks returns the project's tasks narrowed for the viewer.
	VisibleTasks(ctx context.Context, viewer models.Viewer, projectID string) ([]*models.Task, error)

	// VisibleTasksByStatus returns tasks of every project with the given
	// status, narrowed for the viewer.
	VisibleTasksByStatus(ctx context.Context, viewer models.Viewer, status models.Status) ([]*models.Task, error)
}

type EditorService interface {
	Open(ctx context.Context, viewer models.Viewer, taskID string) (*Editor, error)
	Get(viewer models.Viewer, taskID string) (*Editor, error)
	Close(viewer models.Viewer, taskID string)
}

type TaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      models.Status
	Priority    models.Priority
	AssignTo    []string
	StartDate   *time.Time
	DueDate     time.Time
}

// TaskPatch carries the fields to change. Nil fields are left as they are.
// The id and creation time have no patch field.
type TaskPatch struct {
	ProjectID   *string
	Title       *string
	Description *string
	Status      *models.Status
	Priority    *models.Priority
	AssignTo    *[]string
	StartDate   **time.Time
	DueDate     *time.Time
}

func (p TaskPatch) IsEmpty() bool {
	return p.ProjectID == nil && p.Title == nil && p.Description == nil &&
		p.Status == nil && p.Priority == nil && p.AssignTo == nil &&
		p.StartDate == nil && p.DueDate == nil
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	Viewer               models.Viewer
	AccessToken          string
	AccessTokenExpiresAt time.Time
}
