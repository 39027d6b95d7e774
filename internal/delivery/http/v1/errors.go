package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/services"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errMissingViewer      = errors.New("no viewer in context")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

func newRequestTimeoutError(message string) apiError {
	return newAPIError(http.StatusRequestTimeout, message)
}

// newServiceError maps a services error onto the response it deserves.
func newServiceError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrEditorNotFound):
		return newNotFoundError(err.Error())
	case errors.Is(err, services.ErrForbidden):
		return newForbiddenError(err.Error())
	case errors.Is(err, services.ErrInvalidTitle),
		errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrEmptyDragPayload),
		errors.Is(err, views.ErrInvalidSortKey):
		return newBadRequestError(err.Error())
	case errors.Is(err, services.ErrDeleteNotRequested):
		return newConflictError(err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return newUnauthorizedError(err.Error())
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return newRequestTimeoutError("request canceled")
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
