// Package executor abstracts running commands against the host. The
// install step runner only ever talks to the Executor interface, which
// keeps every step dry-runnable and testable.
package executor

import (
	"fmt"
	"strings"
)

// Command is one external program invocation.
type Command struct {
	Program string
	Args    []string
}

// Cmd builds a Command
func Cmd(program string, args ...string) Command {
	return Command{Program: program, Args: args}
}

// String renders the command the way a shell user would type it
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Executor runs commands. Implementations: System (real processes),
// DryRun (prints instead), Recording (tests).
type Executor interface {
	// Run executes the command, caring only about the exit status
	Run(cmd Command) error

	// RunWithInput pipes stdin to the command and waits for exit
	RunWithInput(cmd Command, stdin string) error

	// RunWithOutput captures combined stdout+stderr; non-zero exit is
	// an error carrying the captured output
	RunWithOutput(cmd Command) (string, error)
}

// dryRunLine normalizes a command for dry-run display
func dryRunLine(cmd Command) string {
	return fmt.Sprintf("[DRY RUN] %s", cmd)
}
