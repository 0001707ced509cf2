// Package verify performs the authentication-only SSH connectivity check
// against the git hosting provider.
package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
)

// Outcome classifies the result of the connectivity check.
//
// The shell ancestry of this tool treated everything that wasn't the success
// phrase as one failure mode; the classes below separate "the host rejected
// the key" from "the host never answered" so the remediation text can be
// accurate. All non-Authenticated outcomes remain fatal.
type Outcome int

const (
	Unknown Outcome = iota
	Authenticated
	AuthRejected
	Unreachable
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case AuthRejected:
		return "authentication rejected"
	case Unreachable:
		return "host unreachable"
	default:
		return "unknown"
	}
}

// successPhrase is what git hosting providers print on a successful
// authentication-only connection ("Hi user! You've successfully
// authenticated, but ... does not provide shell access.").
const successPhrase = "successfully authenticated"

// unreachablePhrases indicate the transport never got as far as auth.
var unreachablePhrases = []string{
	"could not resolve hostname",
	"connection refused",
	"connection timed out",
	"operation timed out",
	"network is unreachable",
	"no route to host",
}

// Verifier runs the SSH connectivity check.
type Verifier struct {
	Runner exec.Runner
	Log    logger.Logger
}

// NewVerifier creates a verifier using the given runner.
func NewVerifier(r exec.Runner, log logger.Logger) *Verifier {
	return &Verifier{Runner: r, Log: log}
}

// Probe attempts an authentication-only connection as user@host and
// classifies the combined output. The returned string is the raw output for
// display.
func (v *Verifier) Probe(user, host string) (Outcome, string, error) {
	target := user + "@" + host
	res, err := v.Runner.Output("ssh",
		"-T",
		"-o", "BatchMode=yes",
		"-o", "ConnectTimeout=10",
		"-o", "StrictHostKeyChecking=accept-new",
		target,
	)
	if err != nil {
		return Unknown, "", err
	}

	v.Log.Debug("ssh -T %s exited %d: %s", target, res.ExitCode, res.Output)
	return Classify(res.Output), res.Output, nil
}

// Classify maps SSH output to an outcome by phrase matching.
func Classify(output string) Outcome {
	lower := strings.ToLower(output)

	if strings.Contains(lower, successPhrase) {
		return Authenticated
	}
	if strings.Contains(lower, "permission denied") {
		return AuthRejected
	}
	for _, phrase := range unreachablePhrases {
		if strings.Contains(lower, phrase) {
			return Unreachable
		}
	}
	return Unknown
}

// Check probes user@host and converts any non-authenticated outcome into a
// fatal structured error carrying the matching remediation checklist. This
// is the one hard-fail gate of the setup sequence; no retry is attempted.
func (v *Verifier) Check(user, host string) error {
	outcome, output, err := v.Probe(user, host)
	if err != nil {
		return err
	}

	switch outcome {
	case Authenticated:
		return nil

	case AuthRejected:
		return errors.New(errors.ErrSSH,
			fmt.Sprintf("%s rejected the SSH key", host),
			"Likely causes:\n"+
				"  1. The public key is not registered with "+host+"\n"+
				"  2. The ssh-agent is not running\n"+
				"  3. The key was not added to the agent (ssh-add)")

	case Unreachable:
		return errors.New(errors.ErrNet,
			fmt.Sprintf("Could not reach %s", host),
			"Check your network connection and any proxy or firewall, then re-run gitstrap.\n"+
				"  SSH said: "+strings.TrimSpace(output))

	default:
		return errors.New(errors.ErrSSH,
			fmt.Sprintf("Could not verify SSH connectivity to %s", host),
			"SSH said: "+strings.TrimSpace(output))
	}
}

// IdentityOverride reports a non-default IdentityFile configured for host in
// ~/.ssh/config when it differs from keyPath. Returns empty when the SSH
// config doesn't redirect the key.
func IdentityOverride(host, keyPath string) string {
	configured := ssh_config.Get(host, "IdentityFile")
	if configured == "" {
		return ""
	}

	expanded := expandHome(configured)
	if expanded == ssh_config.Default("IdentityFile") || expanded == expandHome(ssh_config.Default("IdentityFile")) {
		return ""
	}
	if expanded == keyPath {
		return ""
	}
	return configured
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
