package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/form-builder/internal/middleware"
	"github.com/noah-isme/form-builder/internal/models"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
)

// requestContext bounds a store round trip by the caller's deadline and the
// configured await timeout, whichever fires first.
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}

func claimsFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// failureToError maps the user-facing message carried by a failure action
// back onto a typed error so status codes survive the round trip through
// the store.
func failureToError(message string) *appErrors.Error {
	switch message {
	case appErrors.ErrTemplateNotFound.Message:
		return appErrors.ErrTemplateNotFound
	case appErrors.ErrInvalidCredentials.Message:
		return appErrors.ErrInvalidCredentials
	case appErrors.ErrSubmissionRejected.Message:
		return appErrors.ErrSubmissionRejected
	default:
		return appErrors.Clone(appErrors.ErrInternal, message)
	}
}
