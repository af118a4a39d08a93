package builtin

import (
	"context"

	"github.com/marcelocantos/fsh/internal/cap"
)

type Pwd struct{}

var _ cap.Capability = (*Pwd)(nil)

func (p *Pwd) Name() string                             { return "pwd" }
func (p *Pwd) Description() string                      { return "print the current directory path" }
func (p *Pwd) Tier() cap.Tier                           { return cap.TierRead }
func (p *Pwd) Validate(args []string, prior bool) error { return nil }

func (p *Pwd) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	return cap.Some(env.Session.Pwd()), nil
}
