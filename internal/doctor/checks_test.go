package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubCheck returns a fixed result.
type stubCheck struct {
	name   string
	result CheckResult
}

func (c *stubCheck) Name() string     { return c.name }
func (c *stubCheck) Category() string { return "STUB" }
func (c *stubCheck) Run() CheckResult { return c.result }

func stub(name string, status CheckStatus, fixable bool) Check {
	return &stubCheck{
		name:   name,
		result: CheckResult{Name: name, Status: status, Fixable: fixable},
	}
}

func TestCheckStatusString(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "warn", StatusWarn.String())
	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, "unknown", CheckStatus(42).String())
}

func TestRunAllPreservesOrder(t *testing.T) {
	checks := []Check{
		stub("a", StatusPass, false),
		stub("b", StatusFail, false),
		stub("c", StatusWarn, false),
	}

	results := RunAll(checks)

	assert.Equal(t, []string{"a", "b", "c"},
		[]string{results[0].Name, results[1].Name, results[2].Name})
}

func TestRunAllParallelPreservesOrder(t *testing.T) {
	checks := []Check{
		stub("a", StatusPass, false),
		stub("b", StatusFail, false),
		stub("c", StatusWarn, false),
	}

	results := RunAllParallel(checks)

	assert.Equal(t, []string{"a", "b", "c"},
		[]string{results[0].Name, results[1].Name, results[2].Name})
}

func TestCountByStatus(t *testing.T) {
	results := RunAll([]Check{
		stub("a", StatusPass, false),
		stub("b", StatusPass, false),
		stub("c", StatusFail, false),
	})

	counts := CountByStatus(results)
	assert.Equal(t, 2, counts[StatusPass])
	assert.Equal(t, 1, counts[StatusFail])
	assert.Equal(t, 0, counts[StatusWarn])
}

func TestHasFailures(t *testing.T) {
	assert.False(t, HasFailures(RunAll([]Check{stub("a", StatusPass, false), stub("b", StatusWarn, false)})))
	assert.True(t, HasFailures(RunAll([]Check{stub("a", StatusFail, false)})))
}

func TestFixableCount(t *testing.T) {
	results := RunAll([]Check{
		stub("a", StatusFail, true),
		stub("b", StatusWarn, true),
		stub("c", StatusPass, true), // passing results don't count
		stub("d", StatusFail, false),
	})

	assert.Equal(t, 2, FixableCount(results))
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		checks   []Check
		expected string
	}{
		{
			name:     "all pass",
			checks:   []Check{stub("a", StatusPass, false)},
			expected: "Everything looks good",
		},
		{
			name:     "one issue",
			checks:   []Check{stub("a", StatusFail, false)},
			expected: "1 issue found",
		},
		{
			name: "multiple issues",
			checks: []Check{
				stub("a", StatusFail, false),
				stub("b", StatusWarn, false),
			},
			expected: "2 issues found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summary(RunAll(tt.checks)))
		})
	}
}
