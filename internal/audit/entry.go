// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package audit

import "time"

// Entry is a single audit log record. One is written per executed command
// line.
type Entry struct {
	Seq         uint64    `json:"seq"`
	Time        time.Time `json:"ts"`
	PrevHash    string    `json:"prev_hash"`
	Line        string    `json:"line"`                  // raw command line
	Verbs       []string  `json:"verbs"`                 // verb of each stage
	Tiers       []string  `json:"tiers"`                 // tier of each known verb
	Redirect    string    `json:"redirect,omitempty"`    // target path for > and >>
	Diagnostics []string  `json:"diagnostics,omitempty"` // stage-local failures
	Error       string    `json:"error,omitempty"`       // line-level failure
	Duration    float64   `json:"duration_ms"`
	Cwd         string    `json:"cwd"`  // working directory after the line ran
	Hash        string    `json:"hash"` // SHA-256 of this entry with Hash empty
}

// Record is the caller-supplied part of an Entry.
type Record struct {
	Line        string
	Verbs       []string
	Tiers       []string
	Redirect    string
	Diagnostics []string
	Err         error
	Duration    time.Duration
	Cwd         string
}
