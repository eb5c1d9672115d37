package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestLevelFiltering tests that messages below the configured level are
// suppressed
func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLines []string
		dropLines []string
	}{
		{
			name:      "info drops debug and trace",
			level:     "info",
			wantLines: []string{"info msg", "warn msg", "error msg"},
			dropLines: []string{"trace msg", "debug msg"},
		},
		{
			name:      "error drops everything below",
			level:     "error",
			wantLines: []string{"error msg"},
			dropLines: []string{"trace msg", "debug msg", "info msg", "warn msg"},
		},
		{
			name:      "trace keeps everything",
			level:     "trace",
			wantLines: []string{"trace msg", "debug msg", "info msg", "warn msg", "error msg"},
		},
		{
			name:      "invalid level defaults to info",
			level:     "loud",
			wantLines: []string{"info msg"},
			dropLines: []string{"debug msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.level)

			log.Trace("trace msg")
			log.Debug("debug msg")
			log.Info("info msg")
			log.Warn("warn msg")
			log.Error("error msg")

			out := buf.String()
			for _, want := range tt.wantLines {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, drop := range tt.dropLines {
				if strings.Contains(out, drop) {
					t.Errorf("output should not contain %q:\n%s", drop, out)
				}
			}
		})
	}
}

// TestNilWriter tests that a nil writer discards silently
func TestNilWriter(t *testing.T) {
	log := New(nil, "info")
	log.Info("goes nowhere") // must not panic
}

// TestFormatArguments tests printf-style argument expansion
func TestFormatArguments(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.Info("found %d sequences in %s", 3, "/renders")

	if !strings.Contains(buf.String(), "found 3 sequences in /renders") {
		t.Errorf("output = %q", buf.String())
	}
}

// TestNoColorForBuffers tests that non-file writers get plain output
func TestNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	log.Warn("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("buffer output contains ANSI escapes: %q", buf.String())
	}
}
