package cellatlas

import (
	"io"
	"sync/atomic"
)

var (
	LogOutput io.Writer
	log       Logger
)

// Logger is the small structured logging surface used by the package.
// *slog.Logger satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// override holds a logger installed with SetLogger. It takes precedence
// over the build-tag selected default.
var override atomic.Pointer[Logger]

// SetLogger replaces the package logger. It is safe to call while atlas
// builds are running. Passing nil restores the build-tag default.
func SetLogger(l Logger) {
	if l == nil {
		override.Store(nil)
		return
	}
	override.Store(&l)
}

func logger() Logger {
	if l := override.Load(); l != nil {
		return *l
	}
	return log
}
