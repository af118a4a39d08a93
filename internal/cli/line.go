// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/marcelocantos/fsh/internal/pipeline"
)

// RunLine executes a single command line and returns the process exit code.
// Stage diagnostics make the code 1; they have already been written.
func RunLine(ctx context.Context, engine *pipeline.Engine, stderr io.Writer, line string) int {
	res, err := engine.Run(ctx, line)
	if code := resolveError(stderr, err); code != 0 || err != nil {
		return code
	}
	if len(res.Diagnostics) > 0 {
		return 1
	}
	return 0
}

// resolveError maps an error to an exit code. ErrExit is a clean exit;
// anything else is reported on stderr.
func resolveError(stderr io.Writer, err error) int {
	if err == nil || errors.Is(err, pipeline.ErrExit) {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "fsh: interrupted")
		return 130
	}
	fmt.Fprintf(stderr, "fsh: %v\n", err)
	return 2
}
