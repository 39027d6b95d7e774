package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

const (
	viewBoard = "board"
	viewList  = "list"
)

// HandleGetBoard renders the project as columns (?view=board, the default)
// or as tables (?view=list, optionally ?sort=name|due|priority).
func (h *handlerImpl) HandleGetBoard(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}

	projectID := c.Param("projectId")
	board, err := h.boards.Board(c, viewer, projectID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("project_id", projectID).
			Msg("failed to build board")
		abort(c, newServiceError(err))
		return
	}

	session := h.sessions.GetViewSession(viewer, projectID)
	opts := views.Options{
		Resolver: h.directory,
		Expand:   session,
		Drag:     session.Drag.State(),
		Now:      h.now(),
	}

	switch c.DefaultQuery("view", viewBoard) {
	case viewBoard:
		c.JSON(http.StatusOK, views.RenderBoard(c, board, opts))
	case viewList:
		sort, err := views.ParseSortKey(c.Query("sort"))
		if err != nil {
			abort(c, newServiceError(err))
			return
		}
		c.JSON(http.StatusOK, views.RenderList(c, board, opts, sort))
	default:
		abort(c, newBadRequestError("view must be board or list"))
	}
}

type toggleGroupResponse struct {
	Status   string `json:"status"`
	Expanded bool   `json:"expanded"`
}

func (h *handlerImpl) HandleToggleGroup(c *gin.Context) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return
	}

	projectID := c.Param("projectId")
	if _, err := h.directory.GetProject(c, projectID); err != nil {
		abort(c, newServiceError(err))
		return
	}

	status := models.Status(c.Param("status"))
	expanded, err := h.sessions.GetViewSession(viewer, projectID).Toggle(status)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	h.logger.Debug().
		Str("project_id", projectID).
		Str("status", string(status)).
		Bool("expanded", expanded).
		Msg("toggled group")
	c.JSON(http.StatusOK, toggleGroupResponse{Status: string(status), Expanded: expanded})
}

func (h *handlerImpl) viewSession(c *gin.Context) (*services.ViewSession, bool) {
	viewer, ok := h.mustViewer(c)
	if !ok {
		return nil, false
	}

	projectID := c.Param("projectId")
	if _, err := h.directory.GetProject(c, projectID); err != nil {
		abort(c, newServiceError(err))
		return nil, false
	}
	return h.sessions.GetViewSession(viewer, projectID), true
}
