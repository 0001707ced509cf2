package doctor

import (
	"strings"

	"github.com/rileyhilliard/gitstrap/internal/exec"
)

// ToolCheck verifies a command-line tool is on PATH, reporting its version
// when the tool offers one.
type ToolCheck struct {
	Tool        string
	InstallHint string
	VersionArgs []string // empty means skip version lookup
	Runner      exec.Runner
}

func (c *ToolCheck) Name() string     { return "tool_" + c.Tool }
func (c *ToolCheck) Category() string { return "TOOLS" }

func (c *ToolCheck) Run() CheckResult {
	if _, ok := c.Runner.LookPath(c.Tool); !ok {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    c.Tool + " not found",
			Suggestion: c.InstallHint,
			Fixable:    true,
		}
	}

	if len(c.VersionArgs) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: c.Tool + " found",
		}
	}

	res, err := c.Runner.Output(c.Tool, c.VersionArgs...)
	if err != nil || res.ExitCode != 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: c.Tool + " found (version unknown)",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: firstLine(res.Output),
	}
}

// RequiredToolChecks returns the checks for every tool the setup sequence
// shells out to.
func RequiredToolChecks(r exec.Runner) []Check {
	return []Check{
		&ToolCheck{
			Tool:        "git",
			InstallHint: "Run `gitstrap setup` to install it, or use your package manager",
			VersionArgs: []string{"--version"},
			Runner:      r,
		},
		&ToolCheck{
			Tool:        "curl",
			InstallHint: "Run `gitstrap setup` to install it, or use your package manager",
			VersionArgs: []string{"--version"},
			Runner:      r,
		},
		&ToolCheck{
			Tool:        "ssh",
			InstallHint: "Install the OpenSSH client for your platform",
			Runner:      r,
		},
		&ToolCheck{
			Tool:        "ssh-keygen",
			InstallHint: "Install the OpenSSH client for your platform",
			Runner:      r,
		},
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
