package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

type dragStateResponse struct {
	Dragging   bool     `json:"dragging"`
	TaskID     string   `json:"task_id,omitempty"`
	Lifted     string   `json:"lifted,omitempty"`
	Candidates []string `json:"candidates"`
}

func newDragStateResponse(state services.DragState) dragStateResponse {
	candidates := make([]string, len(state.Candidates))
	for i, s := range state.Candidates {
		candidates[i] = string(s)
	}
	return dragStateResponse{
		Dragging:   state.Dragging(),
		TaskID:     state.TaskID,
		Lifted:     state.Lifted,
		Candidates: candidates,
	}
}

type dragStartRequest struct {
	TaskID string `json:"task_id" binding:"required"`
}

type dragColumnRequest struct {
	Status string `json:"status" binding:"required"`
}

type dropRequest struct {
	Status string `json:"status" binding:"required"`
	// Payload is the text the client put on the drag transfer. It may be
	// empty, in which case the session's marker is used.
	Payload string `json:"payload"`
}

type dropResponse struct {
	TaskID  string           `json:"task_id,omitempty"`
	From    string           `json:"from,omitempty"`
	To      string           `json:"to"`
	Updated bool             `json:"updated"`
	Changed bool             `json:"changed"`
	Task    *getTaskResponse `json:"task,omitempty"`
}

func (h *handlerImpl) HandleDragState(c *gin.Context) {
	session, ok := h.viewSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newDragStateResponse(session.Drag.State()))
}

func (h *handlerImpl) HandleDragStart(c *gin.Context) {
	session, ok := h.viewSession(c)
	if !ok {
		return
	}

	var req dragStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	if err := session.Drag.Start(c, req.TaskID); err != nil {
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newDragStateResponse(session.Drag.State()))
}

func (h *handlerImpl) HandleDragEnter(c *gin.Context) {
	session, ok := h.viewSession(c)
	if !ok {
		return
	}

	var req dragColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	if _, err := session.Drag.Enter(models.Status(req.Status)); err != nil {
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newDragStateResponse(session.Drag.State()))
}

// HandleDragOver answers whether the column accepts a drop.
func (h *handlerImpl) HandleDragOver(c *gin.Context) {
	session, ok := h.viewSession(c)
	if !ok {
		return
	}

	var req dragColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"accept": session.Drag.Over(models.Status(req.Status))})
}

func (h *handlerImpl) HandleDragLeave(c *gin.Context) {
	session, ok := h.viewSession(c)
	if !ok {
		return
	}

	var req dragColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	session.Drag.Leave(models.Status(req.Status))
	c.JSON(http.StatusOK, newDragStateResponse(session.Drag.State()))
}

func (h *handlerImpl) HandleDrop(c *gin.Context) {
	session, ok := h.viewSession(c)
	if !ok {
		return
	}

	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The gesture is over either way.
		session.Drag.End()
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := session.Drag.Drop(c, models.Status(req.Status), req.Payload)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	response := dropResponse{
		TaskID:  result.TaskID,
		From:    string(result.From),
		To:      string(result.To),
		Updated: result.Updated,
		Changed: result.Changed(),
	}
	if result.Task != nil {
		task := newGetTaskResponse(result.Task)
		response.Task = &task
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleDragEnd(c *gin.Context) {
	session, ok := h.viewSession(c)
	if !ok {
		return
	}

	session.Drag.End()
	c.JSON(http.StatusOK, newDragStateResponse(session.Drag.State()))
}
