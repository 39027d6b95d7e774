package v1

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

const viewerCtxKey = "viewer"

// HandleAuthMiddleware reads the access token from the Authorization header,
// falling back to the access token cookie, and puts the viewer on the context.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	accessToken, ok := bearerToken(c)
	if !ok {
		cookie, err := c.Cookie(accessTokenCookie)
		if err != nil || cookie == "" {
			h.logger.Error().Msg("access token required")
			abort(c, newUnauthorizedError("access token required"))
			return
		}
		accessToken = cookie
	}

	viewer, err := h.auth.ParseToken(accessToken)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse token")
		if errors.Is(err, jwt.ErrTokenExpired) {
			abort(c, newUnauthorizedError("access token expired"))
			return
		}
		abort(c, newUnauthorizedError("invalid access token"))
		return
	}

	c.Set(viewerCtxKey, *viewer)
	c.Next()
}

func bearerToken(c *gin.Context) (string, bool) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		return "", false
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func getViewer(c *gin.Context) (models.Viewer, bool) {
	value, exists := c.Get(viewerCtxKey)
	if !exists {
		return models.Viewer{}, false
	}
	viewer, ok := value.(models.Viewer)
	return viewer, ok
}

// mustViewer aborts with 401 when the middleware didn't run.
func (h *handlerImpl) mustViewer(c *gin.Context) (models.Viewer, bool) {
	viewer, ok := getViewer(c)
	if !ok {
		h.logger.Error().Msg(errMissingViewer.Error())
		abort(c, newUnauthorizedError(errMissingViewer.Error()))
		return models.Viewer{}, false
	}
	return viewer, true
}
