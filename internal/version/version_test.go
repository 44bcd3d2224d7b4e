package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	assert.Equal(t, Version, info.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc123",
		BuildDate: "2026-01-29",
		GoVersion: "go1.25",
	}

	str := info.String()

	assert.Contains(t, str, "tpa-seed:")
	assert.Contains(t, str, "v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
}

func TestFullVersionString(t *testing.T) {
	str := FullVersionString(
		Info{Version: "v1.0.0"},
		InstallerInfo{Command: "bower install", Binary: "bower", Message: "bower not found in PATH"},
	)

	assert.Contains(t, str, "v1.0.0")
	assert.Contains(t, str, "Installer:")
	assert.Contains(t, str, "bower not found in PATH")
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
		wantErr  bool
	}{
		{"bower", "1.8.14\n", "1.8.14", false},
		{"prefixed", "yarn v1.22.19\n", "v1.22.19", false},
		{"prerelease", "2.0.0-beta.1", "2.0.0-beta.1", false},
		{"garbage", "command not understood", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractVersion(tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name      string
		binary    string
		version   string
		supported bool
		message   string
	}{
		{"current bower", "bower", "1.8.14", true, "supported"},
		{"old bower", "bower", "1.2.8", false, "unsupported - requires bower >= 1.3.0"},
		{"bower prefixed", "bower", "v1.3.0", true, "supported"},
		{"bad version", "bower", "one", false, "invalid version format"},
		{"other installer", "yarn", "0.1.0", true, "not checked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			supported, message := checkVersion(tt.binary, tt.version)
			assert.Equal(t, tt.supported, supported)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestDetectInstaller(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		info := DetectInstaller("tpa-seed-no-such-installer install")

		assert.False(t, info.Found)
		assert.Equal(t, "tpa-seed-no-such-installer", info.Binary)
		assert.Contains(t, info.Message, "not found in PATH")
		assert.Contains(t, info.String(), "not found in PATH")
	})

	t.Run("invalid command", func(t *testing.T) {
		info := DetectInstaller(`bower "install`)

		assert.False(t, info.Found)
		assert.Equal(t, "invalid install command", info.Message)
	})
}
