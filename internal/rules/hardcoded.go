package rules

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Hardcoded returns the built-in safety rules that are always enforced
// regardless of configuration. They block tree removals that would take the
// shell's own ground away.
func Hardcoded() []CheckFunc {
	return []CheckFunc{
		checkRmdirCatastrophic,
	}
}

// checkRmdirCatastrophic blocks tree removal of root, home, or the current
// and parent directories.
func checkRmdirCatastrophic(verb string, args []string) error {
	if verb != "rmdir" {
		return nil
	}
	for _, arg := range args {
		if arg == "" || arg[0] == '-' {
			continue
		}
		cleaned := filepath.Clean(arg)
		if cleaned == "/" || cleaned == "." || cleaned == ".." {
			return fmt.Errorf("refusing to remove %q. This operation is permanently blocked", arg)
		}
		if arg == "~" || strings.HasPrefix(arg, "~/") {
			return fmt.Errorf("refusing to remove %q. This operation is permanently blocked", arg)
		}
	}
	return nil
}
