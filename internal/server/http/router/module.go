package router

import "go.uber.org/fx"

// Module provides the admin gin engine.
var Module = fx.Module("router", fx.Provide(Setup))
