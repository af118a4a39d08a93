// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestWrapClassifies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not exist", fs.ErrNotExist, NotFound},
		{"exist", fs.ErrExist, AlreadyExists},
		{"permission", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, PermissionDenied},
		{"other", errors.New("disk on fire"), IOFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrap("op", "/p", tt.err)
			if got := KindOf(err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("wrapped cause lost: %v", err)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap("op", "/p", nil); err != nil {
		t.Fatalf("Wrap(nil) = %v", err)
	}
}

func TestWrapKeepsTypedError(t *testing.T) {
	orig := New(IsADirectory, "rm", "/d")
	if got := Wrap("other", "/x", orig); got != error(orig) {
		t.Fatalf("Wrap replaced typed error: %v", got)
	}
}

func TestMessages(t *testing.T) {
	if got := New(NotFound, "cat", "/a").Error(); got != "cat /a: not found" {
		t.Errorf("got %q", got)
	}
	if got := Newf(AtRoot, "Already at the root directory.").Error(); got != "Already at the root directory." {
		t.Errorf("got %q", got)
	}
}

func TestIsThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("stage 1: %w", New(DestinationIsFile, "mv", "/b"))
	if !errors.Is(err, DestinationIsFile) {
		t.Fatal("expected DestinationIsFile through fmt wrap")
	}
	if errors.Is(err, NotFound) {
		t.Fatal("unexpected NotFound match")
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatal("expected zero kind for plain error")
	}
}
