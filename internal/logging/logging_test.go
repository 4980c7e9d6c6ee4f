package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			l, err := New(tc.in, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l.GetLevel() != tc.want {
				t.Errorf("got %v, want %v", l.GetLevel(), tc.want)
			}
			if err := l.Close(); err != nil {
				t.Errorf("close: %v", err)
			}
		})
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, err := New("chatty", ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightimpact.log")

	l, err := New("debug", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.LogFile != path {
		t.Errorf("LogFile %q, want %q", l.LogFile, path)
	}
	l.WithField("mission", "EGLL-KBOS").Debug("great circle")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["mission"] != "EGLL-KBOS" || entry["msg"] != "great circle" || entry["level"] != "debug" {
		t.Errorf("unexpected entry %v", entry)
	}
}
