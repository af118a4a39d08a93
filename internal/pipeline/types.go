// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

// Operators recognised in a command line.
const (
	OpPipe           = "|"  // previous stage's output becomes the next stage's implicit argument
	OpRedirectOut    = ">"  // send output to a file, truncating it
	OpRedirectAppend = ">>" // send output to a file, appending
)

// Stage is one verb invocation within a pipeline.
type Stage struct {
	Verb string
	Args []string
}

// Pipeline is an ordered list of stages run left to right.
type Pipeline struct {
	Stages []Stage
}

// Redirect sends the text produced by Source to Target. Source is either a
// command line of its own or literal text.
type Redirect struct {
	Source string
	Target string
	Append bool
}

// Command is the parsed form of one command line. Exactly one of Pipeline
// and Redirect is set.
type Command struct {
	Pipeline *Pipeline
	Redirect *Redirect
}
