package builtin

import (
	"context"
	"errors"

	"github.com/marcelocantos/fsh/internal/cap"
	"github.com/marcelocantos/fsh/internal/fserr"
)

// Rmdir removes directory trees, contents first.
type Rmdir struct{}

var _ cap.Capability = (*Rmdir)(nil)

func (r *Rmdir) Name() string        { return "rmdir" }
func (r *Rmdir) Description() string { return "remove directories and everything in them (dangerous)" }
func (r *Rmdir) Tier() cap.Tier      { return cap.TierDangerous }

func (r *Rmdir) Validate(args []string, prior bool) error {
	return requireOperand("rmdir", args, prior)
}

func (r *Rmdir) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	ops, err := needOperands("rmdir", args, prior)
	if err != nil {
		return cap.None, err
	}
	var errs []error
	for _, dir := range ops {
		if !env.Files.RemoveDirectoryTree(dir) {
			errs = append(errs, fserr.Newf(fserr.IOFailure, "rmdir: failed to remove %s", dir))
		}
	}
	return cap.None, errors.Join(errs...)
}
