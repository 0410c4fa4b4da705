package logger

import "go.uber.org/fx"

// Module provides the storefront logger to fx graphs.
var Module = fx.Provide(New)
