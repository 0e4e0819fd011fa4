package tex2d

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/tex2d/recovery"
	"github.com/gogpu/tex2d/render"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so the caller skips message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for tex2d and its sub-packages.
// By default, tex2d produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by tex2d:
//   - [slog.LevelDebug]: format decisions and buffer sizes
//   - [slog.LevelInfo]: texture reload start and finish
//   - [slog.LevelWarn]: failed reload entries and rejected textures
//
// Example:
//
//	tex2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	render.SetLogger(l)
	recovery.SetLogger(l)
}

// Logger returns the current logger used by tex2d.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// sharedHandler forwards records to the logger installed by SetLogger at
// the time of each call, so loggers handed out before SetLogger still
// follow it.
type sharedHandler struct{}

func (sharedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return Logger().Handler().Enabled(ctx, level)
}

func (sharedHandler) Handle(ctx context.Context, r slog.Record) error {
	return Logger().Handler().Handle(ctx, r)
}

func (sharedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Logger().Handler().WithAttrs(attrs)
}

func (sharedHandler) WithGroup(name string) slog.Handler {
	return Logger().Handler().WithGroup(name)
}
