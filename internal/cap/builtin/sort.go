package builtin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/marcelocantos/fsh/internal/cap"
)

// Sort orders lines case-insensitively. Input is the previous stage's
// output, or FILE when there is none.
type Sort struct{}

var _ cap.Capability = (*Sort)(nil)

var errNoSortInput = errors.New("No input provided for sort command.")

func (s *Sort) Name() string        { return "sort" }
func (s *Sort) Description() string { return "sort lines of text, ignoring case" }
func (s *Sort) Tier() cap.Tier      { return cap.TierRead }

func (s *Sort) Validate(args []string, prior bool) error {
	switch {
	case len(args) > 1:
		return fmt.Errorf("sort: too many arguments")
	case len(args) == 0 && !prior:
		return errNoSortInput
	}
	return nil
}

func (s *Sort) Run(ctx context.Context, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	var input string
	switch {
	case prior.Set:
		input = prior.Value
	case len(args) == 1:
		content, err := env.Files.ReadFile(args[0])
		if err != nil {
			return cap.None, err
		}
		input = content
	default:
		return cap.None, errNoSortInput
	}
	return cap.Some(SortLines(input)), nil
}

// SortLines sorts the newline-separated lines of text ignoring case. Lines
// equal under case folding keep their order.
func SortLines(text string) string {
	lines := strings.Split(text, "\n")
	sort.SliceStable(lines, func(i, j int) bool {
		return strings.ToLower(lines[i]) < strings.ToLower(lines[j])
	})
	return strings.Join(lines, "\n")
}
