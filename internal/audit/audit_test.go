// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

const logPath = "/state/fsh/audit.jsonl"

func record(line string) Record {
	return Record{
		Line:     line,
		Verbs:    []string{"cat", "sort"},
		Tiers:    []string{"read", "read"},
		Duration: time.Millisecond,
		Cwd:      "/tmp",
	}
}

func TestLogAndVerify(t *testing.T) {
	fs := afero.NewMemMapFs()
	l, err := NewLogger(fs, logPath)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := l.Log(record("cat pipe.txt | sort")); err != nil {
			t.Fatalf("log entry %d: %v", i, err)
		}
	}
	if err := Verify(fs, logPath); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestLogRecordsFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	l, err := NewLogger(fs, logPath)
	if err != nil {
		t.Fatal(err)
	}
	rec := record("frob | sort")
	rec.Diagnostics = []string{"Unknown command: frob"}
	rec.Err = errors.New("boom")
	if err := l.Log(rec); err != nil {
		t.Fatal(err)
	}

	entries, err := Tail(fs, logPath, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Error != "boom" || len(e.Diagnostics) != 1 || e.Line != "frob | sort" {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	fs := afero.NewMemMapFs()
	l, err := NewLogger(fs, logPath)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		_ = l.Log(record("ls"))
	}

	data, err := afero.ReadFile(fs, logPath)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), `"cwd":"/tmp"`, `"cwd":"/etc"`, 1)
	if err := afero.WriteFile(fs, logPath, []byte(tampered), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Verify(fs, logPath); err == nil {
		t.Fatal("expected verify to detect tampering")
	}
}

func TestVerifyDetectsSequenceGap(t *testing.T) {
	fs := afero.NewMemMapFs()
	l, err := NewLogger(fs, logPath)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		_ = l.Log(record("pwd"))
	}

	data, err := afero.ReadFile(fs, logPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := splitLines(data)
	var out []byte
	for i, line := range lines {
		if i == 2 {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	if err := afero.WriteFile(fs, logPath, out, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Verify(fs, logPath); err == nil || !strings.Contains(err.Error(), "sequence gap") {
		t.Fatalf("expected sequence gap, got %v", err)
	}
}

func TestVerifyEmptyLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, logPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Verify(fs, logPath); err != nil {
		t.Fatalf("empty log should be valid: %v", err)
	}
}

func TestLoggerResumesChain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")
	fs := afero.NewOsFs()

	first, err := NewLogger(fs, path)
	if err != nil {
		t.Fatal(err)
	}
	_ = first.Log(record("mkdir a"))
	_ = first.Log(record("cd a"))

	// A new logger picks up where the previous process left off.
	second, err := NewLogger(fs, path)
	if err != nil {
		t.Fatal(err)
	}
	_ = second.Log(record("touch f"))

	if err := Verify(fs, path); err != nil {
		t.Fatalf("chain should be valid after restart: %v", err)
	}
	entries, err := Tail(fs, path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[2].Seq != 3 {
		t.Errorf("expected seq 3, got %d", entries[2].Seq)
	}
}
