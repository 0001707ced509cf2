package exec

import (
	"os"
	"os/exec"
	"strings"

	"github.com/rileyhilliard/gitstrap/internal/errors"
)

// Local is a Runner backed by os/exec on the current machine.
type Local struct{}

// NewLocal returns a Runner that executes commands on the local machine.
func NewLocal() *Local {
	return &Local{}
}

// LookPath reports whether the named tool is on PATH.
func (l *Local) LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

// Output runs a command and captures its combined output.
func (l *Local) Output(name string, args ...string) (Result, error) {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	result := Result{Output: strings.TrimSpace(string(out))}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't run '"+name+"'",
			"Make sure the command exists and is executable.")
	}

	return result, nil
}

// Run executes a command with the terminal attached.
func (l *Local) Run(name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't run '"+name+"'",
			"Make sure the command exists and is executable.")
	}

	return 0, nil
}
