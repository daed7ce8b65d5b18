package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpereira/storefront/internal/core/domain"
)

// statusOf maps the domain error taxonomy to client-facing status codes.
// Insufficient stock is a business-rule rejection, reported as 400 to order
// clients; the catalog's reserve endpoint overrides it with 409 so the
// orchestrator can tell a conflict from malformed input.
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidRequest, domain.KindInsufficientStock:
		return http.StatusBadRequest
	case domain.KindAccountNotFound, domain.KindItemNotFound, domain.KindOrderNotFound:
		return http.StatusNotFound
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": clientMessage(err)})
}

// clientMessage hides internal causes; only the taxonomy message leaves the
// process.
func clientMessage(err error) string {
	var e *domain.Error
	if errors.As(err, &e) && e.Kind != domain.KindInternal {
		return e.Message
	}
	return "internal error"
}
