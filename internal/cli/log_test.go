package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/touchstone/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
	}{
		{log.InfoLevel, false},
		{log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Debug("debug line")
			logger.Info("info line")

			out := buf.String()
			if !strings.Contains(out, "info line") {
				t.Errorf("info should always be logged, got %q", out)
			}
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestProgressDebug(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.DebugLevel))
	p.start = p.start.Add(-1500 * time.Millisecond)
	p.debug("Loaded %d authors", 3)

	out := buf.String()
	if !strings.Contains(out, "Loaded 3 authors (1.5") {
		t.Errorf("progress line = %q, want message with elapsed time", out)
	}

	buf.Reset()
	newProgress(newLogger(&buf, log.InfoLevel)).debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug progress should be filtered at info level, got %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should yield log.Default()")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("attached logger not returned")
	}
}

func TestInstallHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))
	installHooks(ctx)

	observability.View().OnViewCreated(ctx, "v9")
	observability.Cache().OnCacheHit(ctx, "artifact")
	if out := buf.String(); !strings.Contains(out, "v9") || !strings.Contains(out, "cache hit") {
		t.Errorf("hooks not routed to the context logger: %q", out)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnViewCreated(ctx, "v1")
	h.OnEvent(ctx, "v1", "click", "Borges", time.Millisecond)
	h.OnViewClosed(ctx, "v1", true)
	h.OnCacheMiss(ctx, "render")
	h.OnRenderStart(ctx, "neato", "svg", 3)
	h.OnRenderComplete(ctx, "neato", "svg", time.Second, nil)

	out := buf.String()
	for _, want := range []string{"view created", "view event", "Borges", "expired=true", "cache miss", "render complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	h.OnRenderComplete(ctx, "neato", "png", 0, errors.New("boom"))
	if !strings.Contains(buf.String(), "WARN") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("render failure should warn, got %q", buf.String())
	}
}
