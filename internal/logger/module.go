package logger

import "go.uber.org/fx"

// Module provides the JSON slog logger.
var Module = fx.Module("logger", fx.Provide(New))
