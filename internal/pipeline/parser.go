// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned for a line with nothing to run.
var ErrEmpty = errors.New("empty command")

// Parse turns a raw command line into a Command. A line containing >> or >
// is a redirect, split once on the first >> (or, failing that, the first >).
// Anything else is a pipeline split on |.
func Parse(line string) (*Command, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrEmpty
	}

	if r, ok, err := parseRedirect(line); ok || err != nil {
		if err != nil {
			return nil, err
		}
		return &Command{Redirect: r}, nil
	}

	p, err := ParsePipeline(line)
	if err != nil {
		return nil, err
	}
	return &Command{Pipeline: p}, nil
}

func parseRedirect(line string) (*Redirect, bool, error) {
	op, appendMode := OpRedirectAppend, true
	i := strings.Index(line, OpRedirectAppend)
	if i < 0 {
		op, appendMode = OpRedirectOut, false
		i = strings.Index(line, OpRedirectOut)
	}
	if i < 0 {
		return nil, false, nil
	}
	target := strings.TrimSpace(line[i+len(op):])
	if target == "" {
		return nil, true, fmt.Errorf("%s requires a file path", op)
	}
	return &Redirect{
		Source: strings.TrimSpace(line[:i]),
		Target: target,
		Append: appendMode,
	}, true, nil
}

// ParsePipeline splits line on | into stages. Segments that are empty after
// trimming are skipped.
func ParsePipeline(line string) (*Pipeline, error) {
	p := &Pipeline{}
	for _, segment := range strings.Split(line, OpPipe) {
		fields := strings.Fields(segment)
		if len(fields) == 0 {
			continue
		}
		p.Stages = append(p.Stages, Stage{Verb: fields[0], Args: fields[1:]})
	}
	if len(p.Stages) == 0 {
		return nil, ErrEmpty
	}
	return p, nil
}

// String renders the pipeline in canonical form.
func (p *Pipeline) String() string {
	parts := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		parts[i] = strings.Join(append([]string{s.Verb}, s.Args...), " ")
	}
	return strings.Join(parts, " "+OpPipe+" ")
}
