package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunnerCannedResponses(t *testing.T) {
	f := NewFakeRunner()
	f.Respond("git config --global user.name", "Ada Lovelace", 0)
	f.Respond("git config --global user.email", "", 1)

	res, err := f.Output("git", "config", "--global", "user.name")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", res.Output)
	assert.Equal(t, 0, res.ExitCode)

	res, err = f.Output("git", "config", "--global", "user.email")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)

	// Unregistered command falls back to the default.
	res, err = f.Output("ssh-add", "/tmp/key")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
}

func TestFakeRunnerLookPath(t *testing.T) {
	f := NewFakeRunner()
	f.MarkMissing("pacman")

	_, ok := f.LookPath("apt-get")
	assert.True(t, ok)

	_, ok = f.LookPath("pacman")
	assert.False(t, ok)
}

func TestFakeRunnerRecordsCalls(t *testing.T) {
	f := NewFakeRunner()

	_, _ = f.Output("ssh", "-T", "git@github.com")
	_, _ = f.Run("ssh-add", "key")

	lines := f.CommandLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "ssh -T git@github.com", lines[0])
	assert.True(t, f.Ran("ssh-add"))
	assert.False(t, f.Ran("ssh-keygen"))
}
