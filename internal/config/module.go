package config

import "go.uber.org/fx"

// Module loads the runner configuration once per process.
var Module = fx.Module("config", fx.Provide(Load))
