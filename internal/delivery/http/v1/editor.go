package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

type editorResponse struct {
	TaskID          string          `json:"task_id"`
	Draft           getTaskResponse `json:"draft"`
	Dirty           bool            `json:"dirty"`
	ReadOnly        bool            `json:"read_only"`
	CanDelete       bool            `json:"can_delete"`
	DeleteRequested bool            `json:"delete_requested"`
}

func newEditorResponse(e *services.Editor) editorResponse {
	caps := e.Capabilities()
	return editorResponse{
		TaskID:          e.TaskID(),
		Draft:           newGetTaskResponse(e.Draft()),
		Dirty:           e.Dirty(),
		ReadOnly:        !caps.FullEdit,
		CanDelete:       caps.Delete,
		DeleteRequested: e.DeleteRequested(),
	}
}

func (h *handlerImpl) HandleOpenEditor(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	editor, err := h.editors.Open(c, viewer, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to open editor")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusCreated, newEditorResponse(editor))
}

// editor looks up the viewer's open editor for the :id task.
func (h *handlerImpl) editor(c *gin.Context) (*services.Editor, models.Viewer, bool) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return nil, models.Viewer{}, false
	}

	editor, err := h.editors.Get(viewer, c.Param("id"))
	if err != nil {
		abort(c, newServiceError(err))
		return nil, models.Viewer{}, false
	}
	return editor, viewer, true
}

func (h *handlerImpl) HandleGetEditor(c *gin.Context) {
	editor, _, ok := h.editor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newEditorResponse(editor))
}

func (h *handlerImpl) HandleEditDraft(c *gin.Context) {
	editor, _, ok := h.editor(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	if err := editor.Edit(req.patch()); err != nil {
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newEditorResponse(editor))
}

func (h *handlerImpl) HandleSaveEditor(c *gin.Context) {
	editor, _, ok := h.editor(c)
	if !ok {
		return
	}

	if _, err := editor.Save(c); err != nil {
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newEditorResponse(editor))
}

// HandleCloseEditor discards the draft.
func (h *handlerImpl) HandleCloseEditor(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}

	h.editors.Close(viewer, c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleEditorStatus(c *gin.Context) {
	editor, _, ok := h.editor(c)
	if !ok {
		return
	}

	var req setTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	if _, err := editor.QuickStatus(c, models.Status(req.Status)); err != nil {
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newEditorResponse(editor))
}

func (h *handlerImpl) HandleRequestDelete(c *gin.Context) {
	editor, _, ok := h.editor(c)
	if !ok {
		return
	}

	if err := editor.RequestDelete(); err != nil {
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newEditorResponse(editor))
}

func (h *handlerImpl) HandleCancelDelete(c *gin.Context) {
	editor, _, ok := h.editor(c)
	if !ok {
		return
	}

	editor.CancelDelete()
	c.JSON(http.StatusOK, newEditorResponse(editor))
}

func (h *handlerImpl) HandleConfirmDelete(c *gin.Context) {
	editor, viewer, ok := h.editor(c)
	if !ok {
		return
	}

	if err := editor.ConfirmDelete(c); err != nil {
		abort(c, newServiceError(err))
		return
	}
	h.editors.Close(viewer, editor.TaskID())
	c.Status(http.StatusNoContent)
}
