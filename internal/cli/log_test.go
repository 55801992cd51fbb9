package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	emitDebug := func(l *log.Logger) { l.Debug("strategy attempt", "strategy", "vector") }
	emitInfo := func(l *log.Logger) { l.Info("exported look", "slide", "linen") }

	tests := []struct {
		level log.Level
		emit  func(*log.Logger)
		shown bool
	}{
		{log.InfoLevel, emitInfo, true},
		{log.InfoLevel, emitDebug, false},
		{log.DebugLevel, emitDebug, true},
		{log.WarnLevel, emitInfo, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.emit(newLogger(&buf, tt.level))
		if shown := buf.Len() > 0; shown != tt.shown {
			t.Errorf("level %s: shown = %v, want %v (%q)", tt.level, shown, tt.shown, buf.String())
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Loaded deck.toml")

	out := buf.String()
	if !strings.Contains(out, "Loaded deck.toml (") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnJobStart(ctx, "linen")
	h.OnRasterize(ctx, "vector", time.Millisecond, errors.New("no gpu"))
	h.OnRasterize(ctx, "basic", time.Millisecond, nil)
	h.OnDeliver(ctx, "download", nil)
	h.OnJobComplete(ctx, "linen", "success", time.Second, nil)
	h.OnCacheMiss(ctx, "file")

	out := buf.String()
	for _, want := range []string{"Job started", "slide=linen", "Strategy failed", "no gpu", "Strategy succeeded", "method=download", "outcome=success", "Asset cache miss"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnJobStart(context.Background(), "linen")
	h.OnCacheHit(context.Background(), "redis")
	if buf.Len() != 0 {
		t.Errorf("hooks logged at info level: %q", buf.String())
	}
}
