package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// newTestLogger builds a standalone JSON logger writing to buf without
// touching the process-wide root
func newTestLogger(buf *bytes.Buffer, lvl zerolog.Level) Logger {
	return zerolog.New(buf).Level(lvl).With().Timestamp().Logger()
}

func TestParseLevel_Table(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"  INFO  ", zerolog.InfoLevel},
		{"", zerolog.DebugLevel},
		{"bogus", zerolog.DebugLevel},
	}
	for _, tc := range tests {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, zerolog.WarnLevel)

	l.Info().Msg("too quiet")
	l.Warn().Msg("loud enough")

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "loud enough") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestWithRequest_RoundTrip(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-123")
	if v := ctx.Value(keyRequestID); v != "req-123" {
		t.Fatalf("request id not stored, got %v", v)
	}

	// empty id must not stash anything
	ctx2 := WithRequest(context.Background(), "")
	if v := ctx2.Value(keyRequestID); v != nil {
		t.Fatalf("empty request id should not be stored, got %v", v)
	}
}

func TestC_EnrichesFromContext(t *testing.T) {
	Init(Options{Level: "debug", Format: "json"})

	ctx := WithRequest(context.Background(), "abc-1")
	child := C(ctx)
	if child == nil {
		t.Fatal("C returned nil logger")
	}
	// background ctx should also be safe
	if C(context.Background()) == nil {
		t.Fatal("C(background) returned nil logger")
	}
}

func TestNamedAndSource(t *testing.T) {
	if Named("") == nil || Named("search") == nil {
		t.Fatal("Named returned nil")
	}
	if Source("") == nil || Source("autoparts_direct") == nil {
		t.Fatal("Source returned nil")
	}
}
