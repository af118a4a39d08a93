// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// Console writes log lines to a stream, colored when it is a terminal.
type Console struct {
	level     Level
	component string
	color     bool
	out       io.Writer
}

// NewConsole logs to stderr so that command output on stdout stays clean.
func NewConsole(level Level) *Console {
	fd := os.Stderr.Fd()
	return &Console{
		level: level,
		color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		out:   os.Stderr,
	}
}

// NewWriter logs uncolored lines to w.
func NewWriter(level Level, w io.Writer) *Console {
	return &Console{level: level, out: w}
}

func (l *Console) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *Console) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *Console) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *Console) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

func (l *Console) WithComponent(component string) Logger {
	return &Console{
		level:     l.level,
		component: component,
		color:     l.color,
		out:       l.out,
	}
}

func (l *Console) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	line := l10n.F(msg, args...)
	if l.component != "" {
		if l.color {
			line = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, line)
		} else {
			line = fmt.Sprintf("[%s] %s", l.component, line)
		}
	}
	if l.color {
		switch level {
		case LevelDebug:
			line = colorGray + line + colorReset
		case LevelWarn:
			line = colorYellow + line + colorReset
		case LevelError:
			line = colorRed + line + colorReset
		}
	}
	fmt.Fprintln(l.out, line)
}
