package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ochairo/preflight/internal/domain/interfaces"
)

func TestLoggerEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf)

	logger.Info("resolved release",
		interfaces.F("tool", "cross"),
		interfaces.F("tag", "v0.1.16"),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}

	if entry["message"] != "resolved release" {
		t.Errorf("message = %v, want %q", entry["message"], "resolved release")
	}
	if entry["tool"] != "cross" {
		t.Errorf("tool = %v, want %q", entry["tool"], "cross")
	}
	if entry["tag"] != "v0.1.16" {
		t.Errorf("tag = %v, want %q", entry["tag"], "v0.1.16")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want %q", entry["level"], "info")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "info", wantDebug: false, wantInfo: true},
		{level: "warn", wantDebug: false, wantInfo: false},
		{level: "disabled", wantDebug: false, wantInfo: false},
		{level: "bogus-level", wantDebug: false, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(tt.level, &buf)

			logger.Debug("debug line")
			gotDebug := strings.Contains(buf.String(), "debug line")
			if gotDebug != tt.wantDebug {
				t.Errorf("debug emitted = %v, want %v", gotDebug, tt.wantDebug)
			}

			buf.Reset()
			logger.Info("info line")
			gotInfo := strings.Contains(buf.String(), "info line")
			if gotInfo != tt.wantInfo {
				t.Errorf("info emitted = %v, want %v", gotInfo, tt.wantInfo)
			}
		})
	}
}
