package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/crapsim/internal/logging"
)

// CreateLogger configures the application logger. Debug forces debug
// level; otherwise the level comes from Settings.
func CreateLogger(debug bool, s Settings) *slog.Logger {
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWith(logging.Options{Level: level, JSON: s.LogJSON})
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, ">>> %s\n", fmt.Sprintf(format, args...))
}
