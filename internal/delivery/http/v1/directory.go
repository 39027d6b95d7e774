package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type memberResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role"`
}

type projectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *handlerImpl) HandleListMembers(c *gin.Context) {
	members, err := h.directory.ListMembers(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list members")
		abort(c, newServiceError(err))
		return
	}

	response := make([]memberResponse, len(members))
	for i, m := range members {
		response[i] = memberResponse{
			ID:     m.ID,
			Name:   m.Name,
			Avatar: m.Avatar,
			Role:   string(m.Role),
		}
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleListProjects(c *gin.Context) {
	projects, err := h.directory.ListProjects(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list projects")
		abort(c, newServiceError(err))
		return
	}

	response := make([]projectResponse, len(projects))
	for i, p := range projects {
		response[i] = projectResponse{ID: p.ID, Name: p.Name}
	}
	c.JSON(http.StatusOK, response)
}
