package executor

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DryRun prints normalized command lines instead of executing anything.
type DryRun struct {
	// Out receives the printed commands; defaults to stdout
	Out io.Writer
}

// NewDryRun creates a dry-run executor printing to stdout
func NewDryRun() *DryRun {
	return &DryRun{Out: os.Stdout}
}

func (e *DryRun) out() io.Writer {
	if e.Out != nil {
		return e.Out
	}
	return os.Stdout
}

// Run implements Executor
func (e *DryRun) Run(cmd Command) error {
	fmt.Fprintln(e.out(), dryRunLine(cmd))
	return nil
}

// RunWithInput implements Executor; the stdin block is printed indented
// below the command line
func (e *DryRun) RunWithInput(cmd Command, stdin string) error {
	fmt.Fprintln(e.out(), dryRunLine(cmd))
	for _, line := range strings.Split(strings.TrimRight(stdin, "\n"), "\n") {
		fmt.Fprintf(e.out(), "  | %s\n", line)
	}
	return nil
}

// RunWithOutput implements Executor; there is no real output to capture
func (e *DryRun) RunWithOutput(cmd Command) (string, error) {
	fmt.Fprintln(e.out(), dryRunLine(cmd))
	return "", nil
}

// ForcedDryRun reports whether the sentinel file forcing dry-run exists
func ForcedDryRun(sentinelPath string) bool {
	_, err := os.Stat(sentinelPath)
	return err == nil
}
