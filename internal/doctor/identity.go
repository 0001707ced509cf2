package doctor

import (
	"fmt"

	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/gitid"
)

// IdentityCheck verifies the global git identity is configured.
type IdentityCheck struct {
	Runner exec.Runner
}

func (c *IdentityCheck) Name() string     { return "git_identity" }
func (c *IdentityCheck) Category() string { return "GIT" }

func (c *IdentityCheck) Run() CheckResult {
	name, err := gitid.ReadGlobal(c.Runner, "user.name")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot read git config",
			Suggestion: "Check that git runs: git config --global --list",
		}
	}
	email, err := gitid.ReadGlobal(c.Runner, "user.email")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot read git config",
			Suggestion: "Check that git runs: git config --global --list",
		}
	}

	var missing []string
	if name == "" {
		missing = append(missing, "user.name")
	}
	if email == "" {
		missing = append(missing, "user.email")
	}

	if len(missing) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("git identity incomplete (%d value(s) unset)", len(missing)),
			Suggestion: "Run `gitstrap setup` to be prompted for the missing values",
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("git identity: %s <%s>", name, email),
	}
}

// DefaultBranchCheck verifies init.defaultBranch matches the configured
// default.
type DefaultBranchCheck struct {
	Runner exec.Runner
	Want   string
}

func (c *DefaultBranchCheck) Name() string     { return "git_default_branch" }
func (c *DefaultBranchCheck) Category() string { return "GIT" }

func (c *DefaultBranchCheck) Run() CheckResult {
	branch, err := gitid.ReadGlobal(c.Runner, "init.defaultBranch")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot read git config",
			Suggestion: "Check that git runs: git config --global --list",
		}
	}

	if branch != c.Want {
		got := branch
		if got == "" {
			got = "(unset)"
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("init.defaultBranch is %s, want %s", got, c.Want),
			Suggestion: "Run `gitstrap setup` to set it",
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "init.defaultBranch is " + c.Want,
	}
}
