package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/services"
)

const accessTokenCookie = "access_token"

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=255"`
}

type loginResponse struct {
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		abort(c, newServiceError(err))
		return
	}

	setAccessTokenCookie(c, result.AccessToken, time.Until(result.AccessTokenExpiresAt))

	c.JSON(http.StatusOK, loginResponse{
		UserID:      result.Viewer.ID,
		Role:        string(result.Viewer.Role),
		AccessToken: result.AccessToken,
		ExpiresAt:   result.AccessTokenExpiresAt,
	})
}

// HandleLogout only drops the cookie; tokens are stateless.
func (h *handlerImpl) HandleLogout(c *gin.Context) {
	clearCookie(c, accessTokenCookie)
	h.logger.Info().Msg("logged out")
	c.Status(http.StatusNoContent)
}

func setAccessTokenCookie(c *gin.Context, token string, maxAge time.Duration) {
	// httpOnly must be false to allow client-side JavaScript
	// to read the cookie and send it in the Authorization header.
	const secure, httpOnly = false, false
	c.SetCookie(accessTokenCookie, token, int(maxAge.Seconds()),
		"/", "", secure, httpOnly)
}

func clearCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1,
		"/", "", false, false)
}
