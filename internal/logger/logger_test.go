// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"quiet", LevelQuiet},
		{"bogus", LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConsoleFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelWarn, &buf)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("careful %d", 1)
	l.Error("broken")

	if got, want := buf.String(), "careful 1\nbroken\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConsoleComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelDebug, &buf).WithComponent("engine")
	l.Debug("executing %q", "ls")

	if got, want := buf.String(), "[engine] executing \"ls\"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestQuietSuppressesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelQuiet, &buf)
	l.Error("nope")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}
