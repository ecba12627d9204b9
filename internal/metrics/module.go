package metrics

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
)

// Module provides the migration metrics registry.
var Module = fx.Provide(func(cfg *config.Config, logger *slog.Logger) *Metrics {
	return New(cfg.PushgatewayURL, logger)
})
