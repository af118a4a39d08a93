package builtin

import (
	"context"
	"errors"

	"github.com/marcelocantos/fsh/internal/cap"
)

type Rm struct{}

var _ cap.Capability = (*Rm)(nil)

func (r *Rm) Name() string        { return "rm" }
func (r *Rm) Description() string { return "remove files (dangerous)" }
func (r *Rm) Tier() cap.Tier      { return cap.TierDangerous }

func (r *Rm) Validate(args []string, prior bool) error {
	return requireOperand("rm", args, prior)
}

func (r *Rm) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	ops, err := needOperands("rm", args, prior)
	if err != nil {
		return cap.None, err
	}
	var errs []error
	for _, file := range ops {
		if _, err := env.Files.Remove(file); err != nil {
			errs = append(errs, err)
		}
	}
	return cap.None, errors.Join(errs...)
}
