// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package outbuf is the shell's output sink. Console output is capped at a
// fixed number of newlines; once a redirect is installed, output goes to the
// file verbatim.
package outbuf

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// DefaultLineLimit is the console newline cap.
const DefaultLineLimit = 8

// DefaultHeldLimit bounds the console text kept behind the cap for More.
// Text past it is dropped.
const DefaultHeldLimit = 64 << 10

// Marker is emitted once when the console cap is reached.
const Marker = "..."

// LineSeparator is the platform line separator used by WriteLine.
var LineSeparator = lineSeparator()

func lineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Buffer routes text to the console or to a redirect file. It is not safe
// for concurrent use.
type Buffer struct {
	fs      afero.Fs
	console io.Writer
	limit   int

	pending   []byte
	heldLimit int
	newlines  int
	marked    bool

	file     afero.File
	filePath string
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithHeldLimit bounds the bytes kept behind the console cap. Zero keeps
// nothing, for consoles with no pager.
func WithHeldLimit(n int) Option {
	return func(b *Buffer) {
		if n < 0 {
			n = 0
		}
		b.heldLimit = n
	}
}

// New returns a console buffer writing to console with the given newline
// cap. A limit <= 0 selects DefaultLineLimit. Redirect files are opened on
// fs.
func New(fs afero.Fs, console io.Writer, limit int, opts ...Option) *Buffer {
	if limit <= 0 {
		limit = DefaultLineLimit
	}
	b := &Buffer{fs: fs, console: console, limit: limit, heldLimit: DefaultHeldLimit}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Write emits text to the current sink.
func (b *Buffer) Write(text string) error {
	if b.file != nil {
		if _, err := io.WriteString(b.file, text); err != nil {
			return fmt.Errorf("write %s: %w", b.filePath, err)
		}
		return nil
	}
	if b.newlines >= b.limit {
		b.hold(text)
		return nil
	}
	b.pending = append(b.pending, text...)
	return b.flush()
}

// hold keeps suppressed console text for More, up to the held limit.
func (b *Buffer) hold(text string) {
	room := b.heldLimit - len(b.pending)
	if room <= 0 {
		return
	}
	if len(text) > room {
		text = text[:room]
	}
	b.pending = append(b.pending, text...)
}

// WriteLine emits text followed by the line separator.
func (b *Buffer) WriteLine(text string) error {
	return b.Write(text + LineSeparator)
}

// flush emits pending console text up to and including the newline that
// reaches the cap, then the marker.
func (b *Buffer) flush() error {
	i := 0
	for i < len(b.pending) && b.newlines < b.limit {
		if b.pending[i] == '\n' {
			b.newlines++
		}
		i++
	}
	out := string(b.pending[:i])
	rest := b.pending[i:]
	if len(rest) > b.heldLimit {
		rest = rest[:b.heldLimit]
	}
	b.pending = append(b.pending[:0], rest...)
	if b.newlines >= b.limit && !b.marked {
		out += Marker
		b.marked = true
	}
	if out == "" {
		return nil
	}
	_, err := io.WriteString(b.console, out)
	return err
}

// Held reports whether console text is waiting behind the cap.
func (b *Buffer) Held() bool {
	return b.file == nil && len(b.pending) > 0
}

// More lifts the console cap for another page and emits held text.
func (b *Buffer) More() error {
	if b.file != nil {
		return nil
	}
	b.newlines = 0
	b.marked = false
	if len(b.pending) > 0 && b.pending[0] != '\n' {
		// Continue on a fresh line after the marker.
		if _, err := io.WriteString(b.console, LineSeparator); err != nil {
			return err
		}
	}
	return b.flush()
}

// InstallRedirect opens path (absolute) and makes it the sink for all
// subsequent writes. The file is truncated unless appendMode is set. Any
// previous redirect file is closed; the console never is.
func (b *Buffer) InstallRedirect(path string, appendMode bool) error {
	flag := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}
	f, err := b.fs.OpenFile(path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := b.closeFile(); err != nil {
		f.Close()
		return err
	}
	b.file = f
	b.filePath = path
	b.pending = b.pending[:0]
	b.newlines = 0
	b.marked = false
	return nil
}

// Target returns the redirect path, or "" when writing to the console.
func (b *Buffer) Target() string {
	return b.filePath
}

// Close releases the redirect file, if any, and returns to the console.
func (b *Buffer) Close() error {
	return b.closeFile()
}

func (b *Buffer) closeFile() error {
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	b.filePath = ""
	if err != nil {
		return fmt.Errorf("close redirect: %w", err)
	}
	return nil
}
