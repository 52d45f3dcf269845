package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(&buf, zerolog.InfoLevel, false), "batch")

	log.Info().Str("file", "a.data").Msg("processed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "batch" {
		t.Errorf("component: got %v, want batch", entry["component"])
	}
	if entry["file"] != "a.data" {
		t.Errorf("file: got %v, want a.data", entry["file"])
	}
	if entry["message"] != "processed" {
		t.Errorf("message: got %v, want processed", entry["message"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry should carry a timestamp")
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel, false)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info event should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn event should be written")
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel, true)

	log.Info().Str("file", "x.png").Msg("saved")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Errorf("console output should not be JSON: %q", out)
	}
	if !strings.Contains(out, "saved") || !strings.Contains(out, "x.png") {
		t.Errorf("console output missing fields: %q", out)
	}
}
