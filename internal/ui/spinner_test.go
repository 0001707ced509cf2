package ui

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Installing")
	assert.Equal(t, "Installing", s.Label())
	assert.Equal(t, SpinnerPending, s.State())
}

func TestSpinnerStartStop(t *testing.T) {
	var buf strings.Builder
	var mu sync.Mutex

	s := NewSpinner("Test")
	s.SetOutput(func(str string) {
		mu.Lock()
		buf.WriteString(str)
		mu.Unlock()
	})

	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())

	// Let it spin a bit
	time.Sleep(50 * time.Millisecond)

	s.Stop()

	// After stop, state should still be in-progress (not changed by Stop)
	assert.Equal(t, SpinnerInProgress, s.State())
}

func TestSpinnerSuccess(t *testing.T) {
	var buf strings.Builder
	var mu sync.Mutex

	s := NewSpinner("Test")
	s.SetOutput(func(str string) {
		mu.Lock()
		buf.WriteString(str)
		mu.Unlock()
	})

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Success()

	assert.Equal(t, SpinnerSuccess, s.State())

	mu.Lock()
	output := buf.String()
	mu.Unlock()

	assert.Contains(t, output, SymbolSuccess)
}

func TestSpinnerFail(t *testing.T) {
	var buf strings.Builder
	var mu sync.Mutex

	s := NewSpinner("Test")
	s.SetOutput(func(str string) {
		mu.Lock()
		buf.WriteString(str)
		mu.Unlock()
	})

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Fail()

	assert.Equal(t, SpinnerFailed, s.State())

	mu.Lock()
	output := buf.String()
	mu.Unlock()

	assert.Contains(t, output, SymbolFail)
}

func TestSpinnerSkip(t *testing.T) {
	s := NewSpinner("Test")
	s.SetOutput(func(string) {})

	s.Start()
	s.Skip()

	assert.Equal(t, SpinnerSkipped, s.State())
}

func TestSpinnerDoubleStart(t *testing.T) {
	s := NewSpinner("Test")
	s.SetOutput(func(string) {})

	s.Start()
	s.Start() // second start is a no-op
	s.Stop()

	assert.Equal(t, SpinnerInProgress, s.State())
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := NewSpinner("Test")
	s.SetOutput(func(string) {})

	// Should not panic or block
	s.Stop()
	assert.Equal(t, SpinnerPending, s.State())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"sub 100ms", 50 * time.Millisecond, "0.05s"},
		{"under a second", 300 * time.Millisecond, "0.3s"},
		{"over a second", 1200 * time.Millisecond, "1.2s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
