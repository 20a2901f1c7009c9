package endpoints

import (
	"errors"
	"net/http"

	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/models"

	"github.com/gin-gonic/gin"
)

// statusForError maps engine errors onto HTTP statuses. Illegal transitions
// and lost compare-and-set races are conflicts, failed preconditions are
// unprocessable, anything unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPreconditionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrAlreadySigned),
		errors.Is(err, models.ErrVoided),
		errors.Is(err, models.ErrAlreadyConverted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), response.APIError{Message: err.Error()})
}
