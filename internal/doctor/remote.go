package doctor

import (
	"fmt"

	"github.com/rileyhilliard/gitstrap/internal/verify"
)

// ConnectivityCheck probes the git host over SSH and classifies the outcome.
type ConnectivityCheck struct {
	Verifier *verify.Verifier
	User     string
	Host     string
}

func (c *ConnectivityCheck) Name() string     { return "ssh_connectivity" }
func (c *ConnectivityCheck) Category() string { return "REMOTE" }

func (c *ConnectivityCheck) Run() CheckResult {
	outcome, _, err := c.Verifier.Probe(c.User, c.Host)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Could not run ssh against %s", c.Host),
			Suggestion: "Check that the OpenSSH client is installed",
		}
	}

	switch outcome {
	case verify.Authenticated:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("%s accepts the SSH key", c.Host),
		}

	case verify.AuthRejected:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s rejected the SSH key", c.Host),
			Suggestion: "Register the public key with " + c.Host + " and make sure it is in the agent (ssh-add -l)",
			Fixable:    true,
		}

	case verify.Unreachable:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s is unreachable", c.Host),
			Suggestion: "Check your network connection, proxy, and firewall",
		}

	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Could not classify the response from %s", c.Host),
			Suggestion: "Inspect manually: ssh -T " + c.User + "@" + c.Host,
		}
	}
}
