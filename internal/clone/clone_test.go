package clone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exectest "github.com/rileyhilliard/gitstrap/internal/exec/testing"
	"github.com/rileyhilliard/gitstrap/internal/logger"
)

func TestRemoteURL(t *testing.T) {
	opts := Options{Host: "github.com", SSHUser: "git", Account: "riley", Repo: "dotfiles"}
	assert.Equal(t, "git@github.com:riley/dotfiles.git", opts.RemoteURL())
}

func TestRunClones(t *testing.T) {
	dir := t.TempDir()
	r := exectest.NewFakeRunner()

	err := Run(r, logger.Noop(), Options{
		Host: "github.com", SSHUser: "git",
		Account: "riley", Repo: "dotfiles", Dir: dir,
	})

	require.NoError(t, err)
	assert.True(t, r.Ran("git clone git@github.com:riley/dotfiles.git "+filepath.Join(dir, "dotfiles")))
}

func TestRunSkipsExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dotfiles"), 0o755))

	r := exectest.NewFakeRunner()
	log := logger.NewBufferLogger()

	err := Run(r, log, Options{
		Host: "github.com", SSHUser: "git",
		Account: "riley", Repo: "dotfiles", Dir: dir,
	})

	require.NoError(t, err, "existing directory is a warning, not an error")
	assert.True(t, log.HasLevel("warn"))
	assert.False(t, r.Ran("git clone"), "existing checkout never touched")
}

func TestRunRequiresAccountAndRepo(t *testing.T) {
	r := exectest.NewFakeRunner()

	err := Run(r, logger.Noop(), Options{Host: "github.com", SSHUser: "git", Repo: "dotfiles"})
	require.Error(t, err)

	err = Run(r, logger.Noop(), Options{Host: "github.com", SSHUser: "git", Account: "riley"})
	require.Error(t, err)
}

func TestRunCloneFailure(t *testing.T) {
	dir := t.TempDir()
	r := exectest.NewFakeRunner()
	target := filepath.Join(dir, "dotfiles")
	r.Respond("git clone git@github.com:riley/dotfiles.git "+target, "fatal: repository not found", 128)

	err := Run(r, logger.Noop(), Options{
		Host: "github.com", SSHUser: "git",
		Account: "riley", Repo: "dotfiles", Dir: dir,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "128")
}
