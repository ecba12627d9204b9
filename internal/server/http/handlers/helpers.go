package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/dto"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/middleware"
)

// CurrentOperator extracts the authenticated operator login from context.
func CurrentOperator(c *gin.Context) string {
	val, ok := c.Get(middleware.OperatorContextKey)
	if !ok {
		return ""
	}
	login, _ := val.(string)
	return login
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrUnknownMigration):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrLocked):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidSteps):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func toOutcomes(outcomes []migration.Outcome) []dto.OutcomeResponse {
	resp := make([]dto.OutcomeResponse, 0, len(outcomes))
	for _, o := range outcomes {
		resp = append(resp, dto.OutcomeResponse{
			Name:       o.Name,
			Direction:  string(o.Direction),
			Success:    o.Result.Success,
			Message:    o.Result.Message,
			Counts:     o.Result.Counts,
			DurationMs: o.Duration.Milliseconds(),
		})
	}
	return resp
}
