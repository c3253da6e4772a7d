package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/touchstone/pkg/observability"
)

// newLogger returns a timestamped ("15:04:05.00") logger writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times an operation from its creation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// debug logs the formatted message with the elapsed time appended, e.g.
// "Loaded 12 authors, 30 links from authors.json (4ms)".
func (p *progress) debug(format string, args ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Debugf("%s (%s)", fmt.Sprintf(format, args...), elapsed)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports view, render and cache activity at debug level.
// Failed renders are logged as warnings.
type logHooks struct {
	logger *log.Logger
}

// installHooks points every observability hook at the command's logger.
func installHooks(ctx context.Context) {
	h := logHooks{logger: loggerFromContext(ctx)}
	observability.SetViewHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnViewCreated(_ context.Context, viewID string) {
	h.logger.Debug("view created", "view", viewID)
}

func (h logHooks) OnViewClosed(_ context.Context, viewID string, expired bool) {
	h.logger.Debug("view closed", "view", viewID, "expired", expired)
}

func (h logHooks) OnEvent(_ context.Context, viewID, kind, nodeID string, d time.Duration) {
	h.logger.Debug("view event", "view", viewID, "event", kind, "node", nodeID, "elapsed", d)
}

func (h logHooks) OnRenderStart(_ context.Context, engine, format string, nodeCount int) {
	h.logger.Debug("render start", "engine", engine, "format", format, "nodes", nodeCount)
}

func (h logHooks) OnRenderComplete(_ context.Context, engine, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "engine", engine, "format", format, "err", err)
		return
	}
	h.logger.Debug("render complete", "engine", engine, "format", format, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
