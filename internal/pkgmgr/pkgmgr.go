// Package pkgmgr installs the baseline tooling (git and curl) using whatever
// package manager the platform provides.
package pkgmgr

import (
	"fmt"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
	"github.com/rileyhilliard/gitstrap/internal/platform"
)

// GitForWindowsURL is where Windows users can get git when no install path
// exists for us to drive.
const GitForWindowsURL = "https://git-scm.com/download/win"

// requiredTools are the commands the rest of the setup sequence depends on.
var requiredTools = []string{"git", "curl"}

// Installer ensures git and curl are available on one platform variant.
// Implementations must be idempotent: when the tools are already present
// they perform no package-manager invocations.
type Installer interface {
	// EnsureTools installs or verifies git and curl. A nil return means the
	// sequence may proceed; recoverable conditions (no known package manager)
	// are logged as warnings, not returned as errors.
	EnsureTools(r exec.Runner, log logger.Logger) error
}

// ForOS returns the installer strategy for a platform variant, selected once
// at startup.
func ForOS(os platform.OS) Installer {
	switch os {
	case platform.Linux:
		return &linuxInstaller{}
	case platform.MacOS:
		return &darwinInstaller{}
	case platform.Windows:
		return &windowsInstaller{}
	default:
		return &unknownInstaller{}
	}
}

// manager describes one Linux package manager and its install invocation.
type manager struct {
	name    string
	update  []string // optional refresh step before installing
	install []string // install command; tool names are appended
}

// linuxManagers is the fixed priority order for Linux package managers.
var linuxManagers = []manager{
	{
		name:    "apt-get",
		update:  []string{"apt-get", "update"},
		install: []string{"apt-get", "install", "-y"},
	},
	{
		name:    "yum",
		install: []string{"yum", "install", "-y"},
	},
	{
		name:    "dnf",
		install: []string{"dnf", "install", "-y"},
	},
	{
		name:    "pacman",
		install: []string{"pacman", "-S", "--noconfirm"},
	},
}

type linuxInstaller struct{}

func (i *linuxInstaller) EnsureTools(r exec.Runner, log logger.Logger) error {
	missing := missingTools(r)
	if len(missing) == 0 {
		log.Debug("git and curl already installed, skipping package manager")
		return nil
	}

	mgr, ok := findManager(r)
	if !ok {
		log.Warn("no supported package manager found (tried apt-get, yum, dnf, pacman); install %v manually", missing)
		return nil
	}

	log.Info("installing %v via %s", missing, mgr.name)

	if len(mgr.update) > 0 {
		if err := sudoRun(r, mgr.update); err != nil {
			return err
		}
	}

	install := append(append([]string{}, mgr.install...), missing...)
	if err := sudoRun(r, install); err != nil {
		return err
	}

	return nil
}

// findManager locates the first available package manager in priority order.
func findManager(r exec.Runner) (manager, bool) {
	for _, m := range linuxManagers {
		if _, ok := r.LookPath(m.name); ok {
			return m, true
		}
	}
	return manager{}, false
}

// sudoRun executes a package-manager command with elevated privileges,
// leaving the terminal attached so sudo can prompt for a password.
func sudoRun(r exec.Runner, argv []string) error {
	code, err := r.Run("sudo", argv...)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.New(errors.ErrPkg,
			fmt.Sprintf("'sudo %s' exited with status %d", argv[0], code),
			"Re-run the command manually to see the package manager's full output.")
	}
	return nil
}

type darwinInstaller struct{}

func (i *darwinInstaller) EnsureTools(r exec.Runner, log logger.Logger) error {
	if _, ok := r.LookPath("git"); ok {
		log.Debug("git already installed")
		return nil
	}

	// macOS ships curl; git comes with the Xcode command line tools. The
	// installer opens a GUI dialog and finishes asynchronously.
	log.Info("git not found, requesting Xcode command line tools install")
	code, err := r.Run("xcode-select", "--install")
	if err != nil {
		return err
	}
	if code != 0 {
		log.Warn("xcode-select --install exited with status %d; the tools may already be installing", code)
	}
	return nil
}

type windowsInstaller struct{}

func (i *windowsInstaller) EnsureTools(r exec.Runner, log logger.Logger) error {
	if _, ok := r.LookPath("git"); ok {
		log.Debug("git already installed")
		return nil
	}

	// No install path we can drive on Windows. This is the one platform
	// where a missing git is fatal.
	return errors.New(errors.ErrPkg,
		"Git is not installed",
		"Download and install Git for Windows from "+GitForWindowsURL+", then re-run gitstrap.")
}

type unknownInstaller struct{}

func (i *unknownInstaller) EnsureTools(r exec.Runner, log logger.Logger) error {
	log.Warn("unrecognized platform; skipping package installation")
	return nil
}

// missingTools returns the required tools not currently on PATH.
func missingTools(r exec.Runner) []string {
	var missing []string
	for _, tool := range requiredTools {
		if _, ok := r.LookPath(tool); !ok {
			missing = append(missing, tool)
		}
	}
	return missing
}
