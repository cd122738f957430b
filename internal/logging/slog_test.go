package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLogger_LevelsWriteExpectedOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, s := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, s)
	}
}

func TestTextLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "warn")

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "info").With("module", "session")
	log.Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, s := range []string{`"module":"session"`, `"msg":"hello"`, `"k":"v"`} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDiscardLogger_DoesNotPanic(t *testing.T) {
	log := NewDiscardLogger()
	ctx := context.TODO()
	log.Debug(ctx, "x")
	log.Info(ctx, "x")
	log.Warn(ctx, "x")
	log.Error(ctx, "x")
	log.With("a", 1).Info(ctx, "y")
}

func TestLogger_MasksSensitiveAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "info").With(KeyPhone, "+919876543210")
	log.Info(context.Background(), "signed in", KeyToken, "jwt-abc", "code", "1234")

	out := buf.String()
	assert.Contains(t, out, `"phone":"*********3210"`)
	assert.Contains(t, out, `"token":"[redacted]"`)
	assert.Contains(t, out, `"code":"1234"`)
	assert.NotContains(t, out, "9876543210")
	assert.NotContains(t, out, "jwt-abc")
}

func TestMaskPhone(t *testing.T) {
	tests := map[string]string{
		"+919876543210": "*********3210",
		"3210":          "****",
		"12":            "**",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, MaskPhone(in), in)
	}
}
