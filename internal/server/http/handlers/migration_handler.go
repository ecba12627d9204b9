package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/dto"
)

// MigrationHandler exposes the runner to operators.
type MigrationHandler struct {
	facade MigrationFacade
	logger *slog.Logger
}

// NewMigrationHandler constructs MigrationHandler.
func NewMigrationHandler(facade MigrationFacade, logger *slog.Logger) *MigrationHandler {
	return &MigrationHandler{facade: facade, logger: logger}
}

// Status handles GET /api/migrations.
func (h *MigrationHandler) Status(c *gin.Context) {
	statuses, err := h.facade.Status(c.Request.Context())
	if err != nil {
		h.fail(c, err, nil)
		return
	}

	resp := make([]dto.StatusResponse, 0, len(statuses))
	for _, st := range statuses {
		resp = append(resp, dto.StatusResponse{Name: st.Name, Applied: st.Applied, AppliedAt: st.AppliedAt})
	}
	c.JSON(http.StatusOK, resp)
}

// Up handles POST /api/migrations/up. An empty body applies everything.
func (h *MigrationHandler) Up(c *gin.Context) {
	var req dto.UpRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	outcomes, err := h.facade.Up(c.Request.Context(), req.Target)
	if err != nil {
		h.fail(c, err, outcomes)
		return
	}
	h.logger.Info("migrations applied by operator",
		slog.String("operator", CurrentOperator(c)),
		slog.Int("applied", len(outcomes)),
	)
	c.JSON(http.StatusOK, toOutcomes(outcomes))
}

// Down handles POST /api/migrations/down.
func (h *MigrationHandler) Down(c *gin.Context) {
	var req dto.DownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "steps must be a positive integer"})
		return
	}

	outcomes, err := h.facade.Down(c.Request.Context(), req.Steps)
	if err != nil {
		h.fail(c, err, outcomes)
		return
	}
	h.logger.Info("migrations reverted by operator",
		slog.String("operator", CurrentOperator(c)),
		slog.Int("reverted", len(outcomes)),
	)
	c.JSON(http.StatusOK, toOutcomes(outcomes))
}

func (h *MigrationHandler) fail(c *gin.Context, err error, completed []migration.Outcome) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("migration request failed",
			slog.String("path", c.FullPath()),
			slog.Int("completed", len(completed)),
			slog.String("error", err.Error()),
		)
	}
	resp := dto.ErrorResponse{Error: err.Error()}
	if len(completed) > 0 {
		resp.Outcomes = toOutcomes(completed)
	}
	c.JSON(status, resp)
}
