package builtin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marcelocantos/fsh/internal/cap"
)

// Mv moves SRC to DST. With only SRC given, DST comes from the previous
// stage's output.
type Mv struct{}

var _ cap.Capability = (*Mv)(nil)

var errNoMvDestination = errors.New("mv: missing destination operand")

func (m *Mv) Name() string        { return "mv" }
func (m *Mv) Description() string { return "move or rename files and directories" }
func (m *Mv) Tier() cap.Tier      { return cap.TierWrite }

func (m *Mv) Validate(args []string, prior bool) error {
	switch {
	case len(args) > 2:
		return fmt.Errorf("mv: too many arguments")
	case len(args) == 2, len(args) == 1 && prior:
		return nil
	default:
		return errNoMvDestination
	}
}

func (m *Mv) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	if err := m.Validate(args, prior.Set); err != nil {
		return cap.None, err
	}
	src := args[0]
	dst := strings.TrimSpace(prior.Value)
	if len(args) == 2 {
		dst = args[1]
	}
	if dst == "" {
		return cap.None, errNoMvDestination
	}
	if _, err := env.Files.Move(src, dst); err != nil {
		return cap.None, err
	}
	return cap.None, nil
}
