package builtin

import (
	"context"
	"errors"

	"github.com/marcelocantos/fsh/internal/cap"
)

type Mkdir struct{}

var _ cap.Capability = (*Mkdir)(nil)

func (m *Mkdir) Name() string        { return "mkdir" }
func (m *Mkdir) Description() string { return "create directories, including missing parents" }
func (m *Mkdir) Tier() cap.Tier      { return cap.TierWrite }

func (m *Mkdir) Validate(args []string, prior bool) error {
	return requireOperand("mkdir", args, prior)
}

func (m *Mkdir) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	ops, err := needOperands("mkdir", args, prior)
	if err != nil {
		return cap.None, err
	}
	var errs []error
	for _, dir := range ops {
		if _, err := env.Files.MakeDirectory(dir); err != nil {
			errs = append(errs, err)
		}
	}
	return cap.None, errors.Join(errs...)
}
