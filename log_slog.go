//go:build !lognone && !logprintln

package cellatlas

import (
	"log/slog"
	"os"
)

func init() {
	LogOutput = os.Stderr
	log = slog.New(slog.NewTextHandler(LogOutput, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
