// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cap

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/marcelocantos/fsh/internal/fserr"
	"github.com/marcelocantos/fsh/internal/fsops"
	"github.com/marcelocantos/fsh/internal/rules"
	"github.com/marcelocantos/fsh/internal/session"
)

// Tier represents the safety level of a verb.
type Tier int

const (
	TierRead      Tier = iota // read-only operations (pwd, cd, ls, cat, sort)
	TierWrite                 // file mutations (mkdir, touch, mv)
	TierDangerous             // destructive operations (rm, rmdir)
)

func (t Tier) String() string {
	switch t {
	case TierRead:
		return "read"
	case TierWrite:
		return "write"
	case TierDangerous:
		return "dangerous"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier converts a string to a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "read":
		return TierRead, nil
	case "write":
		return TierWrite, nil
	case "dangerous":
		return TierDangerous, nil
	default:
		return 0, fmt.Errorf("unknown tier: %q", s)
	}
}

// Text is an optional piece of stage output. The zero value is absent.
type Text struct {
	Value string
	Set   bool
}

// Some returns a present Text.
func Some(s string) Text { return Text{Value: s, Set: true} }

// None is the absent Text.
var None = Text{}

// Env is what a verb operates on: the session and its file operations.
type Env struct {
	Session *session.Session
	Files   *fsops.Set
}

// NewEnv binds a file operation set to the session.
func NewEnv(s *session.Session) *Env {
	return &Env{Session: s, Files: fsops.New(s.Fs(), s)}
}

// Capability is the interface every verb must implement.
type Capability interface {
	// Name returns the verb as typed on the command line.
	Name() string

	// Description returns a human-readable summary for help output.
	Description() string

	// Tier returns the safety classification.
	Tier() Tier

	// Validate checks args before execution. prior reports whether the
	// previous stage produced output that may stand in for a missing
	// argument.
	Validate(args []string, prior bool) error

	// Run executes the verb. prior is the previous stage's output, absent
	// for the first stage or after a failed stage.
	Run(ctx context.Context, env *Env, args []string, prior Text) (Text, error)
}

// Registry maps verbs to implementations and controls tier access.
type Registry struct {
	mu    sync.RWMutex
	caps  map[string]Capability
	tiers map[Tier]bool
	rules *rules.RuleSet
}

// NewRegistry creates a registry with every tier enabled. Hardcoded safety
// rules are always active.
func NewRegistry() *Registry {
	return &Registry{
		caps: make(map[string]Capability),
		tiers: map[Tier]bool{
			TierRead:      true,
			TierWrite:     true,
			TierDangerous: true,
		},
		rules: rules.NewRuleSet(rules.Hardcoded()...),
	}
}

// Register adds a capability to the registry.
func (r *Registry) Register(c Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caps[c.Name()] = c
}

// Lookup returns a capability by name.
func (r *Registry) Lookup(name string) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caps[name]
	if !ok {
		return nil, &fserr.Error{Kind: fserr.UnknownVerb, Msg: "Unknown command: " + name}
	}
	return c, nil
}

// Has reports whether name is a registered verb.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.caps[name]
	return ok
}

// CheckTier returns an error if the given tier is not enabled.
func (r *Registry) CheckTier(t Tier) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.tiers[t] {
		return fmt.Errorf("tier %q is disabled", t)
	}
	return nil
}

// SetTier enables or disables a tier.
func (r *Registry) SetTier(t Tier, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiers[t] = enabled
}

// SetRules replaces the rule set. Config-driven rules are added on top of
// the hardcoded safety rules which are always present.
func (r *Registry) SetRules(rs *rules.RuleSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = rs
}

// CheckRules validates args against all rules for the named verb.
func (r *Registry) CheckRules(name string, args []string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.rules == nil {
		return nil
	}
	return r.rules.Check(name, args)
}

// All returns all registered capabilities sorted by name.
func (r *Registry) All() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	caps := make([]Capability, 0, len(r.caps))
	for _, c := range r.caps {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool {
		return caps[i].Name() < caps[j].Name()
	})
	return caps
}
