// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/marcelocantos/fsh/internal/cap"
)

// RunList lists verbs, optionally only those of one tier. Verbs whose tier
// is disabled are marked.
func RunList(reg *cap.Registry, w io.Writer, tierFilter string) int {
	var filter *cap.Tier
	if tierFilter != "" {
		t, err := cap.ParseTier(tierFilter)
		if err != nil {
			fmt.Fprintf(w, "fsh list: %v\n", err)
			return 1
		}
		filter = &t
	}

	for _, c := range reg.All() {
		if filter != nil && c.Tier() != *filter {
			continue
		}
		state := ""
		if reg.CheckTier(c.Tier()) != nil {
			state = " (disabled)"
		}
		fmt.Fprintf(w, "%-8s %-10s %s%s\n", c.Name(), c.Tier(), c.Description(), state)
	}
	return 0
}
