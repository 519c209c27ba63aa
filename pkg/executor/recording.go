package executor

import (
	"sync"

	inserr "github.com/instantos/ins/pkg/errors"
)

// Recording captures every command for test assertions. Optionally fails
// commands whose rendered form matches a registered string.
type Recording struct {
	mu       sync.Mutex
	Commands []Command
	Inputs   map[string]string
	// FailOn maps a Command.String() to the error it should produce
	FailOn map[string]error
	// Outputs maps a Command.String() to canned RunWithOutput output
	Outputs map[string]string
}

// NewRecording creates an empty recording executor
func NewRecording() *Recording {
	return &Recording{
		Inputs:  make(map[string]string),
		FailOn:  make(map[string]error),
		Outputs: make(map[string]string),
	}
}

func (e *Recording) record(cmd Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = append(e.Commands, cmd)
	if err, ok := e.FailOn[cmd.String()]; ok {
		return err
	}
	return nil
}

// Run implements Executor
func (e *Recording) Run(cmd Command) error {
	return e.record(cmd)
}

// RunWithInput implements Executor
func (e *Recording) RunWithInput(cmd Command, stdin string) error {
	if err := e.record(cmd); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Inputs[cmd.String()] = stdin
	return nil
}

// RunWithOutput implements Executor
func (e *Recording) RunWithOutput(cmd Command) (string, error) {
	if err := e.record(cmd); err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if out, ok := e.Outputs[cmd.String()]; ok {
		return out, nil
	}
	return "", nil
}

// CommandStrings returns every recorded command in rendered form
func (e *Recording) CommandStrings() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.Commands))
	for i, c := range e.Commands {
		out[i] = c.String()
	}
	return out
}

// Fail registers a failure for a rendered command
func (e *Recording) Fail(rendered string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.FailOn[rendered] = inserr.Newf(inserr.ErrExecFailed, "command failed: %s", rendered)
}
