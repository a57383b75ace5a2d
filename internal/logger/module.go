package logger

import "go.uber.org/fx"

// Module provides the process *slog.Logger.
var Module = fx.Provide(New)
