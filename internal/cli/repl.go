// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/marcelocantos/fsh/internal/config"
	"github.com/marcelocantos/fsh/internal/logger"
	"github.com/marcelocantos/fsh/internal/pipeline"
)

// RunREPL reads command lines interactively until exit or end of input.
func RunREPL(ctx context.Context, engine *pipeline.Engine, shell config.ShellConfig, log logger.Logger, stdout, stderr io.Writer) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shell.Prompt,
		HistoryFile:     shell.History,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(stderr, "fsh: %v\n", err)
		return 1
	}
	defer rl.Close()

	next := func() (string, error) {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// ^C abandons the line being typed.
			return "", nil
		}
		return line, err
	}
	return loop(ctx, engine, next, stdout, stderr)
}

// loop drives the shell from next until exit, end of input or
// cancellation. An empty line pages held console output. help is handled
// here rather than as a verb so it never enters a pipeline.
func loop(ctx context.Context, engine *pipeline.Engine, next func() (string, error), stdout, stderr io.Writer) int {
	defer engine.Close()
	for {
		if ctx.Err() != nil {
			return resolveError(stderr, ctx.Err())
		}
		line, err := next()
		if errors.Is(err, io.EOF) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(stderr, "fsh: %v\n", err)
			return 1
		}

		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			if err := engine.Buffer().More(); err != nil {
				fmt.Fprintf(stderr, "fsh: %v\n", err)
			}
			moreHint(engine, stderr, false)
			continue
		case fields[0] == "help" && len(fields) <= 2:
			RunHelp(engine.Registry(), stdout, fields[1:])
			continue
		}

		held := engine.Buffer().Held()
		if _, err := engine.Run(ctx, line); err != nil {
			return resolveError(stderr, err)
		}
		moreHint(engine, stderr, held)
	}
}

// moreHint tells the user how to page when console text has just been held
// back by the line cap.
func moreHint(engine *pipeline.Engine, stderr io.Writer, wasHeld bool) {
	if !wasHeld && engine.Buffer().Held() {
		fmt.Fprintln(stderr, "(press Enter for more)")
	}
}
