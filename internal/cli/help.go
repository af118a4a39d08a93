// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/marcelocantos/fsh/internal/cap"
	"github.com/marcelocantos/fsh/internal/pipeline"
)

var operators = []struct{ op, desc string }{
	{pipeline.OpPipe, "pipe: the output of one command becomes the input of the next"},
	{pipeline.OpRedirectOut, "redirect output to a file, overwriting it"},
	{pipeline.OpRedirectAppend, "redirect output to a file, appending to it"},
}

// RunHelp shows help for a verb or operator, or lists everything.
func RunHelp(reg *cap.Registry, w io.Writer, args []string) int {
	if len(args) == 0 {
		printGeneralHelp(reg, w)
		return 0
	}

	name := args[0]
	for _, o := range operators {
		if o.op == name {
			fmt.Fprintf(w, "%s: %s\n", o.op, o.desc)
			return 0
		}
	}
	c, err := reg.Lookup(name)
	if err != nil {
		fmt.Fprintf(w, "Command not found: %s\n", name)
		return 1
	}
	fmt.Fprintf(w, "%s: %s\n", c.Name(), c.Description())
	fmt.Fprintf(w, "tier: %s\n", c.Tier())
	return 0
}

func printGeneralHelp(reg *cap.Registry, w io.Writer) {
	fmt.Fprintln(w, "fsh: a small file shell")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  fsh                          interactive shell")
	fmt.Fprintln(w, "  fsh -c '<line>'              run one command line")
	fmt.Fprintln(w, "  fsh list [--tier <tier>]     list verbs")
	fmt.Fprintln(w, "  fsh help [<verb>]            show help")
	fmt.Fprintln(w, "  fsh audit <verify|show>      audit log operations")
	fmt.Fprintln(w, "  fsh mcp                      serve the shell as MCP tools on stdio")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available commands:")
	for _, c := range reg.All() {
		fmt.Fprintf(w, "  %-6s %s\n", c.Name(), c.Description())
	}
	fmt.Fprintf(w, "  %-6s %s\n", "exit", "leave the shell")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "operators:")
	for _, o := range operators {
		fmt.Fprintf(w, "  %-6s %s\n", o.op, o.desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "An empty line shows more of any output held back after the ... marker.")
}
