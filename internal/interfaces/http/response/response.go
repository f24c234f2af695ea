package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "signals-hub.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error renders an error as JSON. AppErrors carry their own status;
// bare sentinels are mapped here so usecases can return them directly.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("Resource already exists")
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, "Invalid credentials", err)
	case errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.BadRequest("Token has expired")
	case errors.Is(err, domainerrors.ErrAccountNotActive):
		return domainerrors.NewAppError(http.StatusUnauthorized, "Your account is not active", err)
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("You are not logged in")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("Forbidden")
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		return domainerrors.BadRequest("Invalid request")
	default:
		return domainerrors.InternalError(err)
	}
}

// ValidationError renders a request-binding failure
func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    http.StatusBadRequest,
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
