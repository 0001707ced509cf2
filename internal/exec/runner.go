// Package exec abstracts external tool invocation behind a Runner interface.
//
// Every external process gitstrap touches (package managers, git, ssh-keygen,
// ssh-agent, ssh-add, ssh, xcode-select) goes through a Runner, so the
// sequencing logic in the setup stages can be tested with a scriptable fake
// instead of a real OS.
package exec

// Result holds the outcome of a captured command invocation.
type Result struct {
	Output   string // combined stdout+stderr, trimmed
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	// LookPath reports whether the named tool is on PATH, and where.
	LookPath(name string) (string, bool)

	// Output runs a command and captures its combined output.
	// A non-zero exit status is reported via Result.ExitCode, not as an error;
	// the error return is reserved for failures to start the process at all.
	Output(name string, args ...string) (Result, error)

	// Run executes a command with the current terminal's stdin, stdout, and
	// stderr attached. Used for anything that may prompt (sudo, installers).
	Run(name string, args ...string) (int, error)
}
