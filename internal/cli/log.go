// Package cli implements the texbox command-line interface.
//
// This package provides commands for typesetting formulas, inspecting
// their atom and box trees, editing them live in the terminal, serving
// the pipeline over HTTP and managing the render cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - render: Typeset a formula to SVG, PNG, PDF, JSON or DOT
//   - parse: Print the atom tree of a formula
//   - layout: Print the box tree and metrics of a formula
//   - edit: Interactive editor with live partial parsing
//   - symbols: List the symbol table
//   - serve: Run the HTTP API
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/texbox/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:]); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with short timestamps
// such as "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch times one command and logs its stages at debug level.
type stopwatch struct {
	logger *log.Logger
	op     string
	start  time.Time
}

func startStopwatch(l *log.Logger, op string) *stopwatch {
	return &stopwatch{logger: l, op: op, start: time.Now()}
}

// lap logs msg with the elapsed time and the given key/value pairs.
func (s *stopwatch) lap(msg string, kv ...any) {
	fields := append([]any{"op", s.op, "took", time.Since(s.start).Round(time.Millisecond)}, kv...)
	s.logger.Debug(msg, fields...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger stored by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
