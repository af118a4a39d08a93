package rules

import (
	"fmt"
	"strings"
)

// CheckFunc validates arguments for a named verb.
// Returns a non-nil error to block execution.
type CheckFunc func(verb string, args []string) error

// RuleSet holds an ordered list of validation rules. Hardcoded rules run first
// and cannot be removed. Config rules are appended after.
type RuleSet struct {
	hardcoded []CheckFunc
	config    []CheckFunc
}

// NewRuleSet creates a RuleSet with the given hardcoded rules.
func NewRuleSet(hardcoded ...CheckFunc) *RuleSet {
	return &RuleSet{hardcoded: hardcoded}
}

// AddConfig appends a config-driven rule.
func (rs *RuleSet) AddConfig(fn CheckFunc) {
	rs.config = append(rs.config, fn)
}

// Check runs all rules against the given verb and args. Hardcoded rules
// always run first.
func (rs *RuleSet) Check(verb string, args []string) error {
	for _, fn := range rs.hardcoded {
		if err := fn(verb, args); err != nil {
			return err
		}
	}
	for _, fn := range rs.config {
		if err := fn(verb, args); err != nil {
			return err
		}
	}
	return nil
}

// DenyVerbs returns a rule refusing every listed verb outright.
func DenyVerbs(verbs ...string) CheckFunc {
	denied := make(map[string]bool, len(verbs))
	for _, v := range verbs {
		denied[v] = true
	}
	return func(verb string, _ []string) error {
		if denied[verb] {
			return fmt.Errorf("%s: disabled by configuration", verb)
		}
		return nil
	}
}

// hasAnyFlag checks whether any element in args matches one of the given flags.
// It handles:
//   - Exact match: "-a" matches "-a"
//   - Combined short flags: "-ar" matches "-a" and "-r"
//   - Long flag with =: "--flag=value" matches "--flag"
func hasAnyFlag(args []string, flags ...string) bool {
	for _, arg := range args {
		if arg == "" || arg[0] != '-' {
			continue
		}
		for _, flag := range flags {
			if arg == flag {
				return true
			}
			if len(flag) == 2 && flag[0] == '-' && flag[1] != '-' &&
				len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
				if strings.ContainsRune(arg[1:], rune(flag[1])) {
					return true
				}
			}
			if len(flag) > 2 && flag[0:2] == "--" && strings.HasPrefix(arg, flag+"=") {
				return true
			}
		}
	}
	return false
}
