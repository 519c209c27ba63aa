package executor

import (
	"os"
	"os/exec"
	"strings"

	inserr "github.com/instantos/ins/pkg/errors"
	"github.com/instantos/ins/pkg/logging"
)

var log = logging.GetLogger("executor")

// System executes commands as real subprocesses attached to the
// terminal.
type System struct{}

// NewSystem creates the real executor
func NewSystem() *System {
	return &System{}
}

// Run implements Executor
func (e *System) Run(cmd Command) error {
	logging.LogCommand(cmd.Program, cmd.Args)
	c := exec.Command(cmd.Program, cmd.Args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return inserr.Wrapf(err, inserr.ErrExecFailed, "command failed: %s", cmd)
	}
	return nil
}

// RunWithInput implements Executor
func (e *System) RunWithInput(cmd Command, stdin string) error {
	logging.LogCommand(cmd.Program, cmd.Args)
	c := exec.Command(cmd.Program, cmd.Args...)
	c.Stdin = strings.NewReader(stdin)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return inserr.Wrapf(err, inserr.ErrExecFailed, "command failed: %s", cmd)
	}
	return nil
}

// RunWithOutput implements Executor
func (e *System) RunWithOutput(cmd Command) (string, error) {
	logging.LogCommand(cmd.Program, cmd.Args)
	out, err := exec.Command(cmd.Program, cmd.Args...).CombinedOutput()
	if err != nil {
		return string(out), inserr.Wrapf(err, inserr.ErrExecFailed, "command failed: %s", cmd).
			WithDetail("output", string(out))
	}
	return string(out), nil
}
