package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		DebugLevel: zapcore.DebugLevel,
		"verbose":  zapcore.DebugLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, InfoLevel, JSONFormat)

	log.Debugw("hidden")
	log.Infow("ac_turned_on", "room_id", 3)
	_ = log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON entry, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "ac_turned_on" || entry["room_id"] != float64(3) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, WarnLevel, ConsoleFormat)

	log.Infow("hidden")
	log.Warnw("retrying", "attempt", 2)
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "WARN") || !strings.Contains(out, "retrying") {
		t.Fatalf("unexpected console output: %q", out)
	}
}
