// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/marcelocantos/fsh/internal/audit"
	"github.com/marcelocantos/fsh/internal/cap"
	"github.com/marcelocantos/fsh/internal/logger"
	"github.com/marcelocantos/fsh/internal/outbuf"
)

// ErrExit is returned when a line asks the shell to terminate.
var ErrExit = errors.New("exit")

const verbExit = "exit"

// Result is the outcome of one command line.
type Result struct {
	// Output is the last stage's output, absent if that stage failed or
	// produced nothing.
	Output cap.Text

	// Diagnostics holds stage-local failures in the order they occurred.
	Diagnostics []string

	// Redirect is set when the line was a redirect. Output then holds the
	// text to send to the target.
	Redirect *Redirect

	// Verbs and Tiers record what ran, for auditing.
	Verbs []string
	Tiers []string
}

// diagnose records err, one diagnostic per line, translating known
// messages.
func (r *Result) diagnose(err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		if line != "" {
			r.Diagnostics = append(r.Diagnostics, l10n.T(line))
		}
	}
}

// Engine executes command lines against a session and routes their output
// through the session's output buffer.
type Engine struct {
	reg   *cap.Registry
	env   *cap.Env
	buf   *outbuf.Buffer
	diag  io.Writer
	log   logger.Logger
	audit *audit.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDiagnostics sets where Run writes diagnostics. The default discards
// them.
func WithDiagnostics(w io.Writer) Option {
	return func(e *Engine) { e.diag = w }
}

// WithLogger sets the engine's logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l.WithComponent("engine") }
}

// WithAudit records every line Run executes.
func WithAudit(a *audit.Logger) Option {
	return func(e *Engine) { e.audit = a }
}

// NewEngine creates an engine for one session.
func NewEngine(reg *cap.Registry, env *cap.Env, buf *outbuf.Buffer, opts ...Option) *Engine {
	e := &Engine{
		reg:  reg,
		env:  env,
		buf:  buf,
		diag: io.Discard,
		log:  logger.NewNoop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Env returns the session environment the engine operates on.
func (e *Engine) Env() *cap.Env { return e.env }

// Buffer returns the engine's output buffer.
func (e *Engine) Buffer() *outbuf.Buffer { return e.buf }

// Registry returns the verb registry.
func (e *Engine) Registry() *cap.Registry { return e.reg }

// Execute parses and evaluates line without routing its output. Stage
// failures become diagnostics on the result. The returned error is reserved
// for lines that cannot run at all: parse failures, ErrExit and context
// cancellation.
func (e *Engine) Execute(ctx context.Context, line string) (*Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		return nil, err
	}
	if cmd.Redirect != nil {
		return e.executeRedirect(ctx, cmd.Redirect)
	}
	return e.executePipeline(ctx, cmd.Pipeline)
}

func (e *Engine) executeRedirect(ctx context.Context, r *Redirect) (*Result, error) {
	res := &Result{Redirect: r}
	fields := strings.Fields(r.Source)
	if len(fields) > 0 && (e.reg.Has(fields[0]) || fields[0] == verbExit) {
		p, err := ParsePipeline(r.Source)
		if err != nil {
			return nil, err
		}
		res, err = e.executePipeline(ctx, p)
		if err != nil {
			return res, err
		}
		res.Redirect = r
		return res, nil
	}
	res.Output = cap.Some(r.Source)
	return res, nil
}

func (e *Engine) executePipeline(ctx context.Context, p *Pipeline) (*Result, error) {
	res := &Result{}
	prior := cap.None
	for i, st := range p.Stages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if st.Verb == verbExit {
			return res, ErrExit
		}
		res.Verbs = append(res.Verbs, st.Verb)

		out, err := e.runStage(ctx, st, prior, res)
		if err != nil {
			e.log.Debug("stage %d (%s) failed: %v", i, st.Verb, err)
			res.diagnose(err)
		}
		prior = out
	}
	res.Output = prior
	return res, nil
}

// runStage runs one stage. A failed stage yields no output.
func (e *Engine) runStage(ctx context.Context, st Stage, prior cap.Text, res *Result) (cap.Text, error) {
	c, err := e.reg.Lookup(st.Verb)
	if err != nil {
		return cap.None, err
	}
	res.Tiers = append(res.Tiers, c.Tier().String())

	if err := e.reg.CheckTier(c.Tier()); err != nil {
		return cap.None, fmt.Errorf("%s: %w", st.Verb, err)
	}
	ruleArgs := st.Args
	if len(ruleArgs) == 0 && prior.Set {
		ruleArgs = []string{strings.TrimSpace(prior.Value)}
	}
	if err := e.reg.CheckRules(st.Verb, ruleArgs); err != nil {
		return cap.None, err
	}
	if err := c.Validate(st.Args, prior.Set); err != nil {
		return cap.None, err
	}
	return c.Run(ctx, e.env, st.Args, prior)
}

// Run executes line and routes the result: diagnostics to the diagnostic
// writer, a redirect's text into its target file, and pipeline output to
// the buffer. Only ErrExit and context errors are returned; everything
// else is reported as a diagnostic. The result is returned even when
// diagnostics were produced.
func (e *Engine) Run(ctx context.Context, line string) (*Result, error) {
	start := time.Now()
	e.log.Debug("executing %q", line)

	res, err := e.Execute(ctx, line)
	if res == nil {
		res = &Result{}
	}
	switch {
	case errors.Is(err, ErrEmpty):
		return res, nil
	case err == nil, errors.Is(err, ErrExit), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	default:
		res.diagnose(err)
		err = nil
	}

	if err == nil {
		e.deliver(res)
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintln(e.diag, d)
	}
	e.record(line, res, err, time.Since(start))
	return res, err
}

func (e *Engine) deliver(res *Result) {
	if r := res.Redirect; r != nil {
		if err := e.reg.CheckTier(cap.TierWrite); err != nil {
			res.diagnose(fmt.Errorf("redirect %s: %w", r.Target, err))
			return
		}
		target := e.env.Session.Resolve(r.Target)
		if err := e.buf.InstallRedirect(target, r.Append); err != nil {
			e.log.Warn("redirect to %s failed: %v", target, err)
			res.diagnose(err)
			return
		}
		e.log.Info("output redirected to %s", target)
		if res.Output.Set {
			if err := e.buf.Write(res.Output.Value); err != nil {
				res.diagnose(err)
			}
		}
		return
	}
	if res.Output.Set && res.Output.Value != "" {
		if err := e.buf.WriteLine(res.Output.Value); err != nil {
			res.diagnose(err)
		}
	}
}

func (e *Engine) record(line string, res *Result, err error, d time.Duration) {
	if e.audit == nil {
		return
	}
	rec := audit.Record{
		Line:        line,
		Verbs:       res.Verbs,
		Tiers:       res.Tiers,
		Diagnostics: res.Diagnostics,
		Err:         err,
		Duration:    d,
		Cwd:         e.env.Session.Pwd(),
	}
	if res.Redirect != nil {
		rec.Redirect = e.env.Session.Resolve(res.Redirect.Target)
	}
	if err := e.audit.Log(rec); err != nil {
		e.log.Warn("audit write failed: %v", err)
	}
}

// Close releases the buffer's redirect target, returning output to the
// console.
func (e *Engine) Close() error {
	return e.buf.Close()
}
