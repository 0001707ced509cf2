package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       OS
	}{
		{"go linux", "linux", Linux},
		{"uname linux", "Linux", Linux},
		{"linux with kernel suffix", "Linux-6.1.0-generic", Linux},
		{"go darwin", "darwin", MacOS},
		{"uname darwin", "Darwin", MacOS},
		{"macos spelled out", "macOS", MacOS},
		{"go windows", "windows", Windows},
		{"cygwin", "CYGWIN_NT-10.0", Windows},
		{"mingw", "MINGW64_NT-10.0", Windows},
		{"msys", "MSYS_NT-10.0", Windows},
		{"freebsd is unknown", "FreeBSD", Unknown},
		{"solaris is unknown", "SunOS", Unknown},
		{"empty is unknown", "", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.identifier))
		})
	}
}

func TestDetectMatchesRuntime(t *testing.T) {
	got := Detect()

	switch runtime.GOOS {
	case "linux":
		assert.Equal(t, Linux, got)
	case "darwin":
		assert.Equal(t, MacOS, got)
	case "windows":
		assert.Equal(t, Windows, got)
	default:
		assert.Equal(t, Unknown, got)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "Linux", Linux.String())
	assert.Equal(t, "macOS", MacOS.String())
	assert.Equal(t, "Windows", Windows.String())
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "Unknown", OS(99).String())
}

func TestAlwaysEnsureAgent(t *testing.T) {
	assert.True(t, Linux.AlwaysEnsureAgent())
	assert.True(t, MacOS.AlwaysEnsureAgent())
	assert.False(t, Windows.AlwaysEnsureAgent())
	assert.True(t, Unknown.AlwaysEnsureAgent())
}
