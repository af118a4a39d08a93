package builtin

import (
	"fmt"
	"strings"

	"github.com/marcelocantos/fsh/internal/cap"
)

// operands returns the explicit args, or the previous stage's output as the
// single implicit operand when none were given.
func operands(args []string, prior cap.Text) []string {
	if len(args) > 0 {
		return args
	}
	if v := strings.TrimSpace(prior.Value); prior.Set && v != "" {
		return []string{v}
	}
	return nil
}

// requireOperand fails when neither args nor prior can supply an operand.
func requireOperand(name string, args []string, prior bool) error {
	if len(args) == 0 && !prior {
		return missingOperand(name)
	}
	return nil
}

// needOperands returns the operands for a verb that must act on something.
// A prior stage whose output is blank supplies nothing.
func needOperands(name string, args []string, prior cap.Text) ([]string, error) {
	ops := operands(args, prior)
	if len(ops) == 0 {
		return nil, missingOperand(name)
	}
	return ops, nil
}

func missingOperand(name string) error {
	return fmt.Errorf("%s: missing operand", name)
}
