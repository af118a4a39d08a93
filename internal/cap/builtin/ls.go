package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcelocantos/fsh/internal/cap"
)

// Ls lists a directory. Flags may appear anywhere: -a shows dotfiles, -r
// reverses the order. The directory defaults to the previous stage's output,
// then to the current directory.
type Ls struct{}

var _ cap.Capability = (*Ls)(nil)

func (l *Ls) Name() string        { return "ls" }
func (l *Ls) Description() string { return "list directory contents (-a all, -r reverse)" }
func (l *Ls) Tier() cap.Tier      { return cap.TierRead }

func (l *Ls) Validate(args []string, prior bool) error {
	_, _, _, err := parseLsArgs(args)
	return err
}

func (l *Ls) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	all, reverse, dirs, err := parseLsArgs(args)
	if err != nil {
		return cap.None, err
	}
	dir := "."
	if ops := operands(dirs, prior); len(ops) > 0 {
		dir = ops[0]
	}
	names, err := env.Files.List(dir, all, reverse)
	if err != nil {
		return cap.None, err
	}
	return cap.Some(strings.Join(names, "\n")), nil
}

func parseLsArgs(args []string) (all, reverse bool, dirs []string, err error) {
	for _, arg := range args {
		if len(arg) < 2 || arg[0] != '-' {
			dirs = append(dirs, arg)
			continue
		}
		for _, c := range arg[1:] {
			switch c {
			case 'a':
				all = true
			case 'r':
				reverse = true
			default:
				return false, false, nil, fmt.Errorf("ls: unknown option -%c", c)
			}
		}
	}
	if len(dirs) > 1 {
		return false, false, nil, fmt.Errorf("ls: too many arguments")
	}
	return all, reverse, dirs, nil
}
