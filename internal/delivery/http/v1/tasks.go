package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

type getTaskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignTo    []string   `json:"assign_to"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     time.Time  `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	assignTo := task.AssignTo
	if assignTo == nil {
		assignTo = []string{}
	}
	return getTaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		AssignTo:    assignTo,
		StartDate:   task.StartDate,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func newGetTasksResponse(tasks []*models.Task) []getTaskResponse {
	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	return response
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	AssignTo    []string   `json:"assign_to,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}
	if !services.ResolveCapabilities(viewer).QuickAdd {
		h.logger.Warn().
			Str("viewer_id", viewer.ID).
			Msg("viewer cannot add tasks")
		abort(c, newServiceError(services.ErrForbidden))
		return
	}

	projectID := c.Param("projectId")
	_, err := h.directory.GetProject(c, projectID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("project_id", projectID).
			Msg("failed to get project")
		abort(c, newServiceError(err))
		return
	}

	var req createTaskRequest
	err = c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	input := services.TaskInput{
		ProjectID: projectID,
		Title:     req.Title,
		Status:    models.Status(req.Status),
		Priority:  models.Priority(req.Priority),
		AssignTo:  req.AssignTo,
		StartDate: req.StartDate,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.DueDate != nil {
		input.DueDate = *req.DueDate
	}

	input, err = services.NormalizeTaskInput(input)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("rejected task input")
		abort(c, newServiceError(err))
		return
	}

	task, err := h.tasks.AddTask(c, input)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to add task")
		abort(c, newServiceError(err))
		return
	}

	h.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c, c.Param("id"))
	if err != nil {
		abort(c, newServiceError(err))
		return
	}
	if !services.CanSee(viewer, task) {
		// Hidden tasks look absent.
		abort(c, newServiceError(services.ErrTaskNotFound))
		return
	}
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleGetProjectTasks(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}

	projectID := c.Param("projectId")
	_, err := h.directory.GetProject(c, projectID)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	tasks, err := h.boards.VisibleTasks(c, viewer, projectID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get project tasks")
		abort(c, newServiceError(err))
		return
	}
	h.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")

	c.JSON(http.StatusOK, newGetTasksResponse(tasks))
}

func (h *handlerImpl) HandleGetTasksByStatus(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status == "" {
		h.logger.Error().Msg("no status provided")
		abort(c, newBadRequestError("status query parameter required"))
		return
	}

	tasks, err := h.boards.VisibleTasksByStatus(c, viewer, models.Status(status))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("status", status).
			Msg("failed to get tasks by status")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newGetTasksResponse(tasks))
}

type updateTaskRequest struct {
	ProjectID   *string    `json:"project_id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssignTo    *[]string  `json:"assign_to,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	ClearStart  bool       `json:"clear_start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (r updateTaskRequest) patch() services.TaskPatch {
	patch := services.TaskPatch{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		AssignTo:    r.AssignTo,
		DueDate:     r.DueDate,
	}
	if r.Status != nil {
		status := models.Status(*r.Status)
		patch.Status = &status
	}
	if r.Priority != nil {
		priority := models.Priority(*r.Priority)
		patch.Priority = &priority
	}
	switch {
	case r.ClearStart:
		var none *time.Time
		patch.StartDate = &none
	case r.StartDate != nil:
		start := r.StartDate
		patch.StartDate = &start
	}
	return patch
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}
	if !services.ResolveCapabilities(viewer).FullEdit {
		abort(c, newServiceError(services.ErrForbidden))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	taskID := c.Param("id")
	patch, err := services.ValidatePatch(req.patch())
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("task_id", taskID).
			Msg("rejected task patch")
		abort(c, newServiceError(err))
		return
	}
	if patch.ProjectID != nil {
		if _, err = h.directory.GetProject(c, *patch.ProjectID); err != nil {
			abort(c, newServiceError(err))
			return
		}
	}

	current, err := h.tasks.GetTask(c, taskID)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}
	if patch.IsEmpty() {
		h.logger.Warn().Msg("no fields to update")
		c.JSON(http.StatusOK, newGetTaskResponse(current))
		return
	}

	task, err := h.tasks.UpdateTask(c, taskID, patch)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		abort(c, newServiceError(err))
		return
	}

	h.logger.Info().
		Str("task_id", taskID).
		Msg("updated task")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

type setTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}

	var req setTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	status := models.Status(req.Status)
	if !status.Valid() {
		h.logger.Error().
			Str("status", req.Status).
			Msg("invalid status")
		abort(c, newServiceError(services.ErrInvalidStatus))
		return
	}

	taskID := c.Param("id")
	current, err := h.tasks.GetTask(c, taskID)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}
	if !services.CanChangeStatus(viewer, current) {
		abort(c, newServiceError(services.ErrForbidden))
		return
	}

	task, err := h.tasks.UpdateTask(c, taskID, services.TaskPatch{Status: &status})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task status")
		abort(c, newServiceError(err))
		return
	}

	h.logger.Info().
		Str("task_id", taskID).
		Str("status", req.Status).
		Msg("updated task status")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}
	if !services.ResolveCapabilities(viewer).Delete {
		abort(c, newServiceError(services.ErrForbidden))
		return
	}

	taskID := c.Param("id")
	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abort(c, newServiceError(err))
		return
	}

	h.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	c.Status(http.StatusNoContent)
}
