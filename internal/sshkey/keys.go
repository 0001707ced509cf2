// Package sshkey manages the Ed25519 key pair and the SSH agent.
//
// Key generation is delegated to ssh-keygen; this package only decides when
// to generate (never when a key already exists) and keeps the key directory
// permissions correct. x/crypto/ssh is used to parse the public key for
// display, not to generate anything.
package sshkey

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
)

// Manager generates and inspects the SSH key pair.
type Manager struct {
	Runner exec.Runner
	Log    logger.Logger
}

// NewManager creates a key manager using the given runner.
func NewManager(r exec.Runner, log logger.Logger) *Manager {
	return &Manager{Runner: r, Log: log}
}

// EnsureDir creates the key directory with owner-only permissions if it does
// not exist, and tightens the mode if it does.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH directory: "+dir,
			"Check permissions on the home directory")
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to set permissions on "+dir,
			"Run: chmod 700 "+dir)
	}
	return nil
}

// Exists reports whether the private key file is present.
func Exists(keyPath string) bool {
	_, err := os.Stat(keyPath)
	return err == nil
}

// Generate creates a new Ed25519 key pair at keyPath with no passphrase.
// It refuses to run when the private key already exists: existing keys are
// never overwritten or rotated.
func (m *Manager) Generate(keyPath, comment string) error {
	if Exists(keyPath) {
		return errors.New(errors.ErrSSH,
			"Key already exists at "+keyPath,
			"Existing keys are never overwritten; remove the file first if you really want a new one.")
	}

	if err := EnsureDir(filepath.Dir(keyPath)); err != nil {
		return err
	}

	m.Log.Debug("generating ed25519 key at %s", keyPath)
	res, err := m.Runner.Output("ssh-keygen",
		"-t", "ed25519",
		"-f", keyPath,
		"-N", "",
		"-C", comment,
		"-q",
	)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return errors.New(errors.ErrSSH,
			"ssh-keygen failed: "+res.Output,
			"Ensure OpenSSH is installed and "+filepath.Dir(keyPath)+" is writable.")
	}

	if !Exists(keyPath) {
		return errors.New(errors.ErrSSH,
			"Key generation completed but the key file was not created",
			"Check disk space and permissions")
	}

	return nil
}

// ReadPublicKey returns the trimmed contents of the public key file.
func ReadPublicKey(pubPath string) (string, error) {
	data, err := os.ReadFile(pubPath)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to read public key: "+pubPath,
			"Check that the file exists and is readable")
	}
	return strings.TrimSpace(string(data)), nil
}

// Fingerprint returns the SHA256 fingerprint of a public key in authorized-
// keys format.
func Fingerprint(pubKey string) (string, error) {
	parsed, _, _, _, err := ssh.ParseAuthorizedKey([]byte(pubKey))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			"Public key is not in a recognized format",
			"The key file may be corrupt; inspect it manually.")
	}
	return ssh.FingerprintSHA256(parsed), nil
}

// Describe renders the public key with its type and fingerprint, for the
// registration instructions shown to the operator.
func Describe(pubKey string) string {
	fp, err := Fingerprint(pubKey)
	if err != nil {
		return pubKey
	}
	return fmt.Sprintf("%s\n\n  fingerprint: %s", pubKey, fp)
}
