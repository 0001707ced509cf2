// Package testing provides a scriptable fake Runner for unit tests.
package testing

import (
	"strings"

	"github.com/rileyhilliard/gitstrap/internal/exec"
)

// Call records a single command invocation made through the fake.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a single command line, for easy assertions.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// FakeRunner implements exec.Runner with canned responses.
//
// Responses are keyed by the rendered command line ("git config --global
// user.name"). Unmatched Output calls return an empty result with exit code
// 0 unless DefaultExit is set. Tools listed in Missing are reported absent
// by LookPath.
type FakeRunner struct {
	Responses   map[string]exec.Result
	Missing     map[string]bool
	DefaultExit int
	Calls       []Call
}

// NewFakeRunner creates an empty fake where every tool exists and every
// command succeeds with no output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: make(map[string]exec.Result),
		Missing:   make(map[string]bool),
	}
}

// Respond registers a canned result for the given command line.
func (f *FakeRunner) Respond(cmdline string, output string, exitCode int) {
	f.Responses[cmdline] = exec.Result{Output: output, ExitCode: exitCode}
}

// MarkMissing makes LookPath report the tool as absent.
func (f *FakeRunner) MarkMissing(tool string) {
	f.Missing[tool] = true
}

// LookPath reports tool presence from the Missing set.
func (f *FakeRunner) LookPath(name string) (string, bool) {
	f.Calls = append(f.Calls, Call{Name: name})
	if f.Missing[name] {
		return "", false
	}
	return "/usr/bin/" + name, true
}

// Output returns the canned result for the command line.
func (f *FakeRunner) Output(name string, args ...string) (exec.Result, error) {
	call := Call{Name: name, Args: args}
	f.Calls = append(f.Calls, call)

	if res, ok := f.Responses[call.String()]; ok {
		return res, nil
	}
	return exec.Result{ExitCode: f.DefaultExit}, nil
}

// Run behaves like Output but discards the canned output.
func (f *FakeRunner) Run(name string, args ...string) (int, error) {
	res, err := f.Output(name, args...)
	return res.ExitCode, err
}

// CommandLines returns every recorded invocation rendered as a command line,
// excluding bare LookPath probes.
func (f *FakeRunner) CommandLines() []string {
	var lines []string
	for _, c := range f.Calls {
		if len(c.Args) > 0 {
			lines = append(lines, c.String())
		}
	}
	return lines
}

// Ran reports whether any recorded command line contains the given substring.
func (f *FakeRunner) Ran(substr string) bool {
	for _, line := range f.CommandLines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
