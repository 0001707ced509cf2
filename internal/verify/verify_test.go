package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	exectest "github.com/rileyhilliard/gitstrap/internal/exec/testing"
	"github.com/rileyhilliard/gitstrap/internal/logger"
)

const sshCmd = "ssh -T -o BatchMode=yes -o ConnectTimeout=10 -o StrictHostKeyChecking=accept-new git@github.com"

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Outcome
	}{
		{
			name:   "github success",
			output: "Hi riley! You've successfully authenticated, but GitHub does not provide shell access.",
			want:   Authenticated,
		},
		{
			name:   "permission denied",
			output: "git@github.com: Permission denied (publickey).",
			want:   AuthRejected,
		},
		{
			name:   "dns failure",
			output: "ssh: Could not resolve hostname github.com: Name or service not known",
			want:   Unreachable,
		},
		{
			name:   "connection refused",
			output: "ssh: connect to host github.com port 22: Connection refused",
			want:   Unreachable,
		},
		{
			name:   "timeout",
			output: "ssh: connect to host github.com port 22: Connection timed out",
			want:   Unreachable,
		},
		{
			name:   "no route",
			output: "ssh: connect to host github.com port 22: No route to host",
			want:   Unreachable,
		},
		{
			name:   "empty output",
			output: "",
			want:   Unknown,
		},
		{
			name:   "unrelated banner",
			output: "Welcome to the machine",
			want:   Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.output))
		})
	}
}

func TestProbeInvokesSSH(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.Respond(sshCmd, "You've successfully authenticated", 1)
	v := NewVerifier(r, logger.Noop())

	outcome, output, err := v.Probe("git", "github.com")

	require.NoError(t, err)
	assert.Equal(t, Authenticated, outcome, "success phrase wins even with non-zero exit")
	assert.Contains(t, output, "successfully authenticated")
}

func TestCheckSuccess(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.Respond(sshCmd, "Hi riley! You've successfully authenticated.", 1)
	v := NewVerifier(r, logger.Noop())

	require.NoError(t, v.Check("git", "github.com"))
}

func TestCheckAuthRejected(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.Respond(sshCmd, "git@github.com: Permission denied (publickey).", 255)
	v := NewVerifier(r, logger.Noop())

	err := v.Check("git", "github.com")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSSH))
	assert.Contains(t, err.Error(), "not registered")
	assert.Contains(t, err.Error(), "ssh-add")
}

func TestCheckUnreachable(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.Respond(sshCmd, "ssh: Could not resolve hostname github.com", 255)
	v := NewVerifier(r, logger.Noop())

	err := v.Check("git", "github.com")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNet), "network failures are distinguished from auth failures")
}

func TestCheckUnknownOutputIsFatal(t *testing.T) {
	r := exectest.NewFakeRunner()
	r.Respond(sshCmd, "something nobody expected", 255)
	v := NewVerifier(r, logger.Noop())

	err := v.Check("git", "github.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "something nobody expected")
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "authentication rejected", AuthRejected.String())
	assert.Equal(t, "host unreachable", Unreachable.String())
	assert.Equal(t, "unknown", Unknown.String())
}
