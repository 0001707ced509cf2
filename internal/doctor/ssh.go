package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/gitstrap/internal/sshkey"
	"github.com/rileyhilliard/gitstrap/internal/verify"
)

// KeyCheck verifies the configured SSH key pair exists and parses.
type KeyCheck struct {
	KeyPath string
}

func (c *KeyCheck) Name() string     { return "ssh_key" }
func (c *KeyCheck) Category() string { return "SSH" }

func (c *KeyCheck) Run() CheckResult {
	if !sshkey.Exists(c.KeyPath) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("No SSH key at %s", c.KeyPath),
			Suggestion: "Run `gitstrap setup` to generate one",
			Fixable:    true,
		}
	}

	pubKey, err := sshkey.ReadPublicKey(c.KeyPath + ".pub")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Key exists but public half is unreadable: %s.pub", c.KeyPath),
			Suggestion: "Regenerate the public key: ssh-keygen -y -f " + c.KeyPath + " > " + c.KeyPath + ".pub",
		}
	}

	fingerprint, err := sshkey.Fingerprint(pubKey)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Public key at %s.pub does not parse", c.KeyPath),
			Suggestion: "Regenerate the key with `gitstrap setup` after moving the broken one aside",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("SSH key %s (%s)", filepath.Base(c.KeyPath), fingerprint),
	}
}

// AgentCheck verifies an ssh-agent is reachable.
type AgentCheck struct {
	Agent *sshkey.Agent
}

func (c *AgentCheck) Name() string     { return "ssh_agent" }
func (c *AgentCheck) Category() string { return "SSH" }

func (c *AgentCheck) Run() CheckResult {
	if !c.Agent.Reachable() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "ssh-agent not reachable",
			Suggestion: "Run `gitstrap setup`, or manually: eval \"$(ssh-agent -s)\" && ssh-add",
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "ssh-agent reachable",
	}
}

// IdentityOverrideCheck warns when ~/.ssh/config points the git host at a
// different key than the one this tool manages.
type IdentityOverrideCheck struct {
	Host    string
	KeyPath string
}

func (c *IdentityOverrideCheck) Name() string     { return "ssh_identity_override" }
func (c *IdentityOverrideCheck) Category() string { return "SSH" }

func (c *IdentityOverrideCheck) Run() CheckResult {
	override := verify.IdentityOverride(c.Host, c.KeyPath)
	if override != "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("~/.ssh/config uses %s for %s", override, c.Host),
			Suggestion: "Connectivity will use that key, not " + c.KeyPath,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("No IdentityFile override for %s", c.Host),
	}
}
