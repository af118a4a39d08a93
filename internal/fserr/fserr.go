// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package fserr defines the failure kinds shared by the session, the file
// operations and the pipeline engine.
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
)

// MsgNoSuchDirectory is the user-facing text for a missing directory
// argument.
const MsgNoSuchDirectory = "This directory doesn't exist. Please try again."

// Kind classifies a failure.
type Kind int

const (
	NotFound Kind = iota + 1
	AlreadyExists
	NotADirectory
	IsADirectory
	AtRoot
	PermissionDenied
	IOFailure
	UnknownVerb
	DestinationIsFile
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case AlreadyExists:
		return "already exists"
	case NotADirectory:
		return "not a directory"
	case IsADirectory:
		return "is a directory"
	case AtRoot:
		return "at root"
	case PermissionDenied:
		return "permission denied"
	case IOFailure:
		return "i/o failure"
	case UnknownVerb:
		return "unknown verb"
	case DestinationIsFile:
		return "destination is a file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error implements error so that a bare Kind can be used as an errors.Is
// target: errors.Is(err, fserr.NotFound).
func (k Kind) Error() string { return k.String() }

// Error is a typed failure. Msg, when set, is the user-facing text and
// replaces the generated one.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	switch {
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a Kind target or another *Error of the same kind.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return e.Kind == t
	case *Error:
		return e.Kind == t.Kind
	}
	return false
}

// New returns an *Error of the given kind.
func New(kind Kind, op, path string) *Error {
	return &Error{Kind: kind, Op: op, Path: path}
}

// Newf returns an *Error carrying a user-facing message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies a filesystem error. A nil err yields nil.
func Wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Kind: classify(err), Op: op, Path: path, Err: err}
}

// KindOf reports the kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	default:
		return IOFailure
	}
}
