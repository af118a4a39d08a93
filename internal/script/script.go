// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package script runs Starlark startup scripts against a shell session.
//
// A script sees one builtin, sh(line), which runs a command line exactly as
// if it had been typed and returns the line's output (None when there is
// none). Starlark's print goes to the logger at info level.
package script

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/marcelocantos/fsh/internal/logger"
	"github.com/marcelocantos/fsh/internal/pipeline"
)

// Runner executes one command line.
type Runner interface {
	Run(ctx context.Context, line string) (*pipeline.Result, error)
}

// Exec runs src, named filename in error messages, against r. ErrExit from
// a line stops the script and is returned as is.
func Exec(ctx context.Context, r Runner, log logger.Logger, filename string, src []byte) error {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Info("%s", msg)
		},
	}
	predeclared := starlark.StringDict{
		"sh": starlark.NewBuiltin("sh", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var line string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "line", &line); err != nil {
				return nil, err
			}
			res, err := r.Run(ctx, line)
			if err != nil {
				return nil, err
			}
			if !res.Output.Set {
				return starlark.None, nil
			}
			return starlark.String(res.Output.Value), nil
		}),
	}

	_, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, predeclared)
	if errors.Is(err, pipeline.ErrExit) {
		return pipeline.ErrExit
	}
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// ExecFile runs the script at path. A missing file is not an error.
func ExecFile(ctx context.Context, fsys afero.Fs, r Runner, log logger.Logger, path string) error {
	src, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read startup script: %w", err)
	}
	log.Debug("running startup script %s", path)
	return Exec(ctx, r, log, path, src)
}
