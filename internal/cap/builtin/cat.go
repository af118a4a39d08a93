package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcelocantos/fsh/internal/cap"
)

// Cat prints a file. Given no file it reads the file named by the previous
// stage's output. Given two files it appends the first onto the second.
type Cat struct{}

var _ cap.Capability = (*Cat)(nil)

var errNoCatFile = errors.New("No file specified for cat command.")

func (c *Cat) Name() string        { return "cat" }
func (c *Cat) Description() string { return "display a file, or append SRC onto DST" }
func (c *Cat) Tier() cap.Tier      { return cap.TierRead }

func (c *Cat) Validate(args []string, prior bool) error {
	switch {
	case len(args) > 2:
		return fmt.Errorf("cat: too many arguments")
	case len(args) == 0 && !prior:
		return errNoCatFile
	}
	return nil
}

func (c *Cat) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	if len(args) == 2 {
		if _, err := env.Files.AppendFile(args[0], args[1]); err != nil {
			return cap.None, err
		}
		return cap.None, nil
	}
	ops := operands(args, prior)
	if len(ops) == 0 {
		return cap.None, errNoCatFile
	}
	content, err := env.Files.ReadFile(ops[0])
	if err != nil {
		return cap.None, err
	}
	return cap.Some(content), nil
}
