package sshkey

import (
	"regexp"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
	"github.com/rileyhilliard/gitstrap/internal/util"
)

// agentEnvPattern extracts the variable assignments from `ssh-agent -s`
// output, e.g. "SSH_AUTH_SOCK=/tmp/ssh-X/agent.1; export SSH_AUTH_SOCK;".
var agentEnvPattern = regexp.MustCompile(`(SSH_AUTH_SOCK|SSH_AGENT_PID)=([^;]+);`)

// Agent starts, reuses, and registers keys with the SSH agent.
//
// Getenv and Setenv default to the process environment; tests inject fakes.
type Agent struct {
	Runner exec.Runner
	Log    logger.Logger
	Getenv func(string) string
	Setenv func(key, value string) error
}

// NewAgent creates an Agent bound to the process environment.
func NewAgent(r exec.Runner, log logger.Logger, getenv func(string) string, setenv func(string, string) error) *Agent {
	return &Agent{Runner: r, Log: log, Getenv: getenv, Setenv: setenv}
}

// Reachable reports whether a live agent is answering on SSH_AUTH_SOCK.
// ssh-add exits 2 when it cannot contact an agent; 0 (keys listed) and
// 1 (no identities) both mean the agent itself is reachable.
func (a *Agent) Reachable() bool {
	if a.Getenv("SSH_AUTH_SOCK") == "" {
		return false
	}
	res, err := a.Runner.Output("ssh-add", "-l")
	if err != nil {
		return false
	}
	return res.ExitCode != 2
}

// Ensure makes an agent available and registers the key with it.
//
// When alwaysStart is true (Linux/macOS) the key is registered whether the
// agent was reused or freshly started. When false (Windows) a reachable
// agent is left untouched and nothing is registered; the agent is only
// started and the key added when none was reachable.
func (a *Agent) Ensure(alwaysStart bool, keyPath string) error {
	reachable := a.Reachable()

	if !alwaysStart && reachable {
		a.Log.Debug("agent already reachable, leaving it alone")
		return nil
	}

	if !reachable {
		if err := a.start(); err != nil {
			return err
		}
	}

	return a.addKey(keyPath)
}

// start launches ssh-agent and imports its environment into this process so
// child processes (ssh-add, ssh) can reach it.
func (a *Agent) start() error {
	res, err := a.Runner.Output("ssh-agent", "-s")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return errors.New(errors.ErrSSH,
			"ssh-agent failed to start: "+res.Output,
			"Ensure OpenSSH is installed.")
	}

	matches := agentEnvPattern.FindAllStringSubmatch(res.Output, -1)
	if len(matches) == 0 {
		return errors.New(errors.ErrSSH,
			"Could not parse ssh-agent output",
			"Start the agent manually: eval \"$(ssh-agent -s)\"")
	}

	for _, m := range matches {
		if err := a.Setenv(m[1], m[2]); err != nil {
			return errors.WrapWithCode(err, errors.ErrSSH,
				"Failed to set "+m[1],
				"")
		}
		a.Log.Debug("agent env %s=%s", m[1], m[2])
	}

	return nil
}

// addKey registers the private key with the agent.
func (a *Agent) addKey(keyPath string) error {
	res, err := a.Runner.Output("ssh-add", keyPath)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return errors.New(errors.ErrSSH,
			"ssh-add failed for "+keyPath+": "+res.Output,
			"Add the key manually: ssh-add "+util.MaybeShellQuote(keyPath))
	}
	return nil
}
