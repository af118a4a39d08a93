package builtin

import (
	"context"
	"fmt"

	"github.com/marcelocantos/fsh/internal/cap"
)

// Cd changes the session directory. With no argument it takes the previous
// stage's output, and with neither it moves up one level.
type Cd struct{}

var _ cap.Capability = (*Cd)(nil)

func (c *Cd) Name() string        { return "cd" }
func (c *Cd) Description() string { return "change the current directory" }
func (c *Cd) Tier() cap.Tier      { return cap.TierRead }

func (c *Cd) Validate(args []string, prior bool) error {
	if len(args) > 1 {
		return fmt.Errorf("cd: too many arguments")
	}
	return nil
}

func (c *Cd) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	target := ""
	if ops := operands(args, prior); len(ops) > 0 {
		target = ops[0]
	}
	dir, err := env.Session.Cd(target)
	if err != nil {
		return cap.None, err
	}
	return cap.Some(dir), nil
}
