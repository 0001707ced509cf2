package pkgmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	exectest "github.com/rileyhilliard/gitstrap/internal/exec/testing"
	"github.com/rileyhilliard/gitstrap/internal/logger"
	"github.com/rileyhilliard/gitstrap/internal/platform"
)

func TestForOSSelectsStrategy(t *testing.T) {
	assert.IsType(t, &linuxInstaller{}, ForOS(platform.Linux))
	assert.IsType(t, &darwinInstaller{}, ForOS(platform.MacOS))
	assert.IsType(t, &windowsInstaller{}, ForOS(platform.Windows))
	assert.IsType(t, &unknownInstaller{}, ForOS(platform.Unknown))
}

func TestLinuxSkipsWhenToolsPresent(t *testing.T) {
	r := exectest.NewFakeRunner()
	log := logger.NewBufferLogger()

	err := ForOS(platform.Linux).EnsureTools(r, log)

	require.NoError(t, err)
	assert.Empty(t, r.CommandLines(), "no install commands when git and curl exist")
}

func TestLinuxUsesFirstAvailableManager(t *testing.T) {
	tests := []struct {
		name    string
		missing []string
		want    string
	}{
		{"apt preferred", nil, "apt-get install -y"},
		{"yum when no apt", []string{"apt-get"}, "yum install -y"},
		{"dnf when no apt or yum", []string{"apt-get", "yum"}, "dnf install -y"},
		{"pacman last", []string{"apt-get", "yum", "dnf"}, "pacman -S --noconfirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := exectest.NewFakeRunner()
			r.MarkMissing("git")
			r.MarkMissing("curl")
			for _, m := range tt.missing {
				r.MarkMissing(m)
			}

			err := ForOS(platform.Linux).EnsureTools(r, logger.Noop())

			require.NoError(t, err)
			assert.True(t, r.Ran(tt.want), "expected %q in %v", tt.want, r.CommandLines())
			assert.True(t, r.Ran("git"), "install should name git")
			assert.True(t, r.Ran("curl"), "install should name curl")
		})
	}
}

func TestLinuxAptRunsUpdateFirst(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.MarkMissing("git")
	r.MarkMissing("curl")

	err := ForOS(platform.Linux).EnsureTools(r, logger.Noop())

	require.NoError(t, err)
	lines := r.CommandLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "sudo apt-get update", lines[0])
	assert.Equal(t, "sudo apt-get install -y git curl", lines[1])
}

func TestLinuxWarnsWhenNoManager(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.MarkMissing("git")
	r.MarkMissing("curl")
	r.MarkMissing("apt-get")
	r.MarkMissing("yum")
	r.MarkMissing("dnf")
	r.MarkMissing("pacman")
	log := logger.NewBufferLogger()

	err := ForOS(platform.Linux).EnsureTools(r, log)

	require.NoError(t, err, "missing package manager degrades to a warning")
	assert.True(t, log.HasLevel("warn"))
	assert.Empty(t, r.CommandLines())
}

func TestLinuxInstallFailureIsError(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.MarkMissing("git")
	r.MarkMissing("curl")
	r.Respond("sudo apt-get update", "", 1)

	err := ForOS(platform.Linux).EnsureTools(r, logger.Noop())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPkg))
}

func TestDarwinSkipsWhenGitPresent(t *testing.T) {
	r := exectest.NewFakeRunner()

	err := ForOS(platform.MacOS).EnsureTools(r, logger.Noop())

	require.NoError(t, err)
	assert.Empty(t, r.CommandLines())
}

func TestDarwinRequestsDevTools(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.MarkMissing("git")

	err := ForOS(platform.MacOS).EnsureTools(r, logger.Noop())

	require.NoError(t, err)
	assert.True(t, r.Ran("xcode-select --install"))
}

func TestWindowsMissingGitIsFatal(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.MarkMissing("git")

	err := ForOS(platform.Windows).EnsureTools(r, logger.Noop())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPkg))
	assert.Contains(t, err.Error(), GitForWindowsURL)
}

func TestWindowsGitPresentIsFine(t *testing.T) {
	r := exectest.NewFakeRunner()

	err := ForOS(platform.Windows).EnsureTools(r, logger.Noop())
	require.NoError(t, err)
}

func TestUnknownPlatformWarnsAndContinues(t *testing.T) {
	r := exectest.NewFakeRunner()
	log := logger.NewBufferLogger()

	err := ForOS(platform.Unknown).EnsureTools(r, log)

	require.NoError(t, err)
	assert.True(t, log.HasLevel("warn"))
	assert.Empty(t, r.CommandLines())
}
