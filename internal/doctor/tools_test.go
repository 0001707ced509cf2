package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exectest "github.com/rileyhilliard/gitstrap/internal/exec/testing"
)

func TestToolCheckMissing(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.MarkMissing("git")

	check := &ToolCheck{Tool: "git", InstallHint: "install git", Runner: r}
	result := check.Run()

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "git not found")
	assert.Equal(t, "install git", result.Suggestion)
	assert.True(t, result.Fixable)
}

func TestToolCheckReportsVersion(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.Respond("git --version", "git version 2.43.0\n", 0)

	check := &ToolCheck{Tool: "git", VersionArgs: []string{"--version"}, Runner: r}
	result := check.Run()

	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, "git version 2.43.0", result.Message)
}

func TestToolCheckVersionLookupFailure(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.Respond("curl --version", "", 1)

	check := &ToolCheck{Tool: "curl", VersionArgs: []string{"--version"}, Runner: r}
	result := check.Run()

	assert.Equal(t, StatusPass, result.Status)
	assert.Contains(t, result.Message, "version unknown")
}

func TestToolCheckWithoutVersionArgs(t *testing.T) {
	r := exectest.NewFakeRunner()

	check := &ToolCheck{Tool: "ssh", Runner: r}
	result := check.Run()

	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, "ssh found", result.Message)
	// No version command should have run
	assert.Empty(t, r.CommandLines())
}

func TestRequiredToolChecksCoverSetupTools(t *testing.T) {
	checks := RequiredToolChecks(exectest.NewFakeRunner())
	require.Len(t, checks, 4)

	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"tool_git", "tool_curl", "tool_ssh", "tool_ssh-keygen"}, names)
}
