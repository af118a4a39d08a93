// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/marcelocantos/fsh/internal/audit"
	"github.com/marcelocantos/fsh/internal/cap"
	"github.com/marcelocantos/fsh/internal/cap/builtin"
	"github.com/marcelocantos/fsh/internal/config"
	"github.com/marcelocantos/fsh/internal/logger"
	"github.com/marcelocantos/fsh/internal/outbuf"
	"github.com/marcelocantos/fsh/internal/pipeline"
	"github.com/marcelocantos/fsh/internal/session"
)

// Options describes how to assemble a session.
type Options struct {
	Fs      afero.Fs // nil means the host filesystem
	Dir     string   // starting directory; empty means the process directory
	Config  *config.Config
	Log     logger.Logger
	Console io.Writer
	Diag    io.Writer

	// NoPager drops console text suppressed by the line cap instead of
	// holding it for paging.
	NoPager bool
}

// NewRegistry returns a registry holding every verb, with tiers and rules
// applied from cfg.
func NewRegistry(cfg *config.Config) *cap.Registry {
	reg := cap.NewRegistry()
	builtin.RegisterAll(reg)
	cfg.ApplyTiers(reg)
	cfg.ApplyRules(reg)
	return reg
}

// NewEngine assembles a session, its output buffer and the engine that
// drives them. A broken audit log is reported and skipped.
func NewEngine(o Options) (*pipeline.Engine, error) {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Dir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		o.Dir = dir
	}
	if o.Log == nil {
		o.Log = logger.NewNoop()
	}
	s, err := session.New(o.Fs, o.Dir)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	var bufOpts []outbuf.Option
	if o.NoPager {
		bufOpts = append(bufOpts, outbuf.WithHeldLimit(0))
	}
	buf := outbuf.New(s.Fs(), o.Console, o.Config.Console.LineLimit, bufOpts...)
	opts := []pipeline.Option{
		pipeline.WithDiagnostics(o.Diag),
		pipeline.WithLogger(o.Log),
	}
	if o.Config.Audit.Enabled && o.Config.Audit.Path != "" {
		a, err := audit.NewLogger(o.Fs, o.Config.Audit.Path)
		if err != nil {
			o.Log.Warn("audit log unavailable: %v", err)
		} else {
			opts = append(opts, pipeline.WithAudit(a))
		}
	}
	return pipeline.NewEngine(NewRegistry(o.Config), cap.NewEnv(s), buf, opts...), nil
}
