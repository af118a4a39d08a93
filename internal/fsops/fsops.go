// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package fsops implements the primitive file operations behind the shell
// verbs. Paths are resolved against a Resolver before use.
package fsops

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/afero"

	"github.com/marcelocantos/fsh/internal/fserr"
)

// Resolver turns a user path into an absolute one.
type Resolver interface {
	Resolve(p string) string
}

// Set is the catalogue of file operations bound to one filesystem and
// resolver.
type Set struct {
	fs  afero.Fs
	res Resolver
	now func() time.Time
}

// New returns an operation set over fs resolving paths with res.
func New(fs afero.Fs, res Resolver) *Set {
	return &Set{fs: fs, res: res, now: time.Now}
}

// List returns the entry names of dir sorted ascending, or descending when
// reverse is set. Dotfiles are omitted unless showHidden.
func (s *Set) List(dir string, showHidden, reverse bool) ([]string, error) {
	path := s.res.Resolve(dir)
	info, err := s.fs.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, &fserr.Error{Kind: fserr.NotADirectory, Op: "ls", Path: path, Msg: fserr.MsgNoSuchDirectory, Err: err}
	}

	entries, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return nil, fserr.Wrap("ls", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !showHidden && isHidden(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if reverse {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	return names, nil
}

// MakeDirectory creates path and any missing parents. It reports true when
// the directory exists afterwards, including when it already did.
func (s *Set) MakeDirectory(path string) (bool, error) {
	path = s.res.Resolve(path)
	if info, err := s.fs.Stat(path); err == nil && info.IsDir() {
		return true, nil
	}
	if err := s.fs.MkdirAll(path, 0755); err != nil {
		return false, fserr.Wrap("mkdir", path, err)
	}
	return true, nil
}

// RemoveDirectoryTree deletes path and everything beneath it, children
// first. The result is whether path itself was deleted; a missing path
// yields false.
func (s *Set) RemoveDirectoryTree(path string) bool {
	return s.removeTree(s.res.Resolve(path))
}

func (s *Set) removeTree(path string) bool {
	info, err := s.lstat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		entries, _ := afero.ReadDir(s.fs, path)
		for _, e := range entries {
			s.removeTree(filepath.Join(path, e.Name()))
		}
	}
	return s.fs.Remove(path) == nil
}

// Touch creates an empty file at path or, if it exists, sets its access and
// modification times to now. It reports false without creating anything
// when the parent directory is missing.
func (s *Set) Touch(path string) (bool, error) {
	path = s.res.Resolve(path)
	if _, err := s.fs.Stat(filepath.Dir(path)); err != nil {
		return false, nil
	}
	if _, err := s.fs.Stat(path); err == nil {
		now := s.now()
		if err := s.fs.Chtimes(path, now, now); err != nil {
			return false, fserr.Wrap("touch", path, err)
		}
		return true, nil
	}
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fserr.Wrap("touch", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fserr.Wrap("touch", path, err)
	}
	return true, nil
}

// Move renames src to dst. When dst is an existing directory, src moves
// inside it, replacing any entry of the same name. An existing plain file at
// dst is refused with DestinationIsFile.
func (s *Set) Move(src, dst string) (bool, error) {
	src = s.res.Resolve(src)
	dst = s.res.Resolve(dst)
	if _, err := s.fs.Stat(src); err != nil {
		return false, fserr.Wrap("mv", src, err)
	}

	target := dst
	info, err := s.fs.Stat(dst)
	switch {
	case err == nil && !info.IsDir():
		return false, fserr.New(fserr.DestinationIsFile, "mv", dst)
	case err == nil:
		target = filepath.Join(dst, filepath.Base(src))
		if target == src {
			return true, nil
		}
		if strings.HasPrefix(target, src+string(filepath.Separator)) {
			return false, fserr.Newf(fserr.IOFailure, "mv: cannot move %s into itself", src)
		}
		if _, err := s.lstat(target); err == nil {
			if err := s.fs.RemoveAll(target); err != nil {
				return false, fserr.Wrap("mv", target, err)
			}
		}
	}

	if err := s.fs.Rename(src, target); err != nil {
		return false, fserr.Wrap("mv", src, err)
	}
	return true, nil
}

// Remove deletes a single file. Directories are refused.
func (s *Set) Remove(path string) (bool, error) {
	path = s.res.Resolve(path)
	info, err := s.fs.Stat(path)
	if err != nil {
		return false, fserr.Wrap("rm", path, err)
	}
	if info.IsDir() {
		return false, fserr.New(fserr.IsADirectory, "rm", path)
	}
	if err := s.fs.Remove(path); err != nil {
		return false, &fserr.Error{Kind: fserr.IOFailure, Op: "rm", Path: path, Err: err}
	}
	return true, nil
}

// ReadFile returns the content of path without trailing whitespace.
func (s *Set) ReadFile(path string) (string, error) {
	path = s.res.Resolve(path)
	info, err := s.fs.Stat(path)
	if err != nil {
		return "", fserr.Wrap("cat", path, err)
	}
	if info.IsDir() {
		return "", fserr.New(fserr.IsADirectory, "cat", path)
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", fserr.Wrap("cat", path, err)
	}
	return strings.TrimRightFunc(string(data), unicode.IsSpace), nil
}

// AppendFile appends the bytes of src onto dst. Both must exist.
func (s *Set) AppendFile(src, dst string) (bool, error) {
	src = s.res.Resolve(src)
	dst = s.res.Resolve(dst)
	for _, p := range []string{src, dst} {
		if _, err := s.fs.Stat(p); err != nil {
			return false, fserr.Wrap("cat", p, err)
		}
	}

	in, err := s.fs.Open(src)
	if err != nil {
		return false, fserr.Wrap("cat", src, err)
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return false, fserr.Wrap("cat", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return false, fserr.Wrap("cat", dst, err)
	}
	if err := out.Close(); err != nil {
		return false, fserr.Wrap("cat", dst, err)
	}
	return true, nil
}

// lstat avoids following symlinks where the filesystem allows it, so tree
// removal never descends into a link target.
func (s *Set) lstat(path string) (os.FileInfo, error) {
	if l, ok := s.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return s.fs.Stat(path)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
