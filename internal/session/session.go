// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package session holds the per-session working directory and resolves user
// paths against it.
package session

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/marcelocantos/fsh/internal/fserr"
)

// Session is one shell's view of the filesystem: the filesystem handle and
// the current directory. It is not safe for concurrent use; run one command
// line at a time.
type Session struct {
	fs  afero.Fs
	cwd string
}

// New creates a session rooted at dir, which must be an existing directory.
func New(fs afero.Fs, dir string) (*Session, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve start directory: %w", err)
	}
	info, err := fs.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("start directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("start directory %s: %w", abs, fserr.NotADirectory)
	}
	return &Session{fs: fs, cwd: abs}, nil
}

// Fs returns the filesystem the session operates on.
func (s *Session) Fs() afero.Fs { return s.fs }

// Pwd returns the working directory.
func (s *Session) Pwd() string { return s.cwd }

// Resolve returns the absolute, cleaned form of p. Relative paths are joined
// onto the working directory. It never touches the filesystem.
func (s *Session) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.cwd, p)
}

// Cd changes the working directory and returns the new one. An empty target
// or "~" moves to the parent directory. On failure the working directory is
// left unchanged.
func (s *Session) Cd(target string) (string, error) {
	var next string
	switch target {
	case "", "~", "..":
		parent := filepath.Dir(s.cwd)
		if parent == s.cwd {
			return "", fserr.Newf(fserr.AtRoot, "Already at the root directory.")
		}
		next = parent
	default:
		next = s.Resolve(target)
	}

	info, err := s.fs.Stat(next)
	if err != nil || !info.IsDir() {
		return "", &fserr.Error{Kind: fserr.NotADirectory, Op: "cd", Path: next, Msg: fserr.MsgNoSuchDirectory, Err: err}
	}
	s.cwd = next
	return s.cwd, nil
}
