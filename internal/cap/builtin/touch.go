package builtin

import (
	"context"
	"errors"

	"github.com/marcelocantos/fsh/internal/cap"
	"github.com/marcelocantos/fsh/internal/fserr"
)

type Touch struct{}

var _ cap.Capability = (*Touch)(nil)

func (t *Touch) Name() string        { return "touch" }
func (t *Touch) Description() string { return "create an empty file or update its timestamp" }
func (t *Touch) Tier() cap.Tier      { return cap.TierWrite }

func (t *Touch) Validate(args []string, prior bool) error {
	return requireOperand("touch", args, prior)
}

func (t *Touch) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	ops, err := needOperands("touch", args, prior)
	if err != nil {
		return cap.None, err
	}
	var errs []error
	for _, file := range ops {
		ok, err := env.Files.Touch(file)
		switch {
		case err != nil:
			errs = append(errs, err)
		case !ok:
			errs = append(errs, fserr.Newf(fserr.NotFound, "touch: cannot touch %s: parent directory does not exist", file))
		}
	}
	return cap.None, errors.Join(errs...)
}
