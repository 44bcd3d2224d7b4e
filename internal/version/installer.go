package version

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/kballard/go-shellquote"
)

// MinBowerVersion is the oldest bower known to understand the seed manifest.
const MinBowerVersion = ">= 1.3.0"

// versionRegex matches a version in tool output like "1.8.14" or "v1.8.14".
var versionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// InstallerInfo describes the dependency installer found on PATH.
type InstallerInfo struct {
	// Command is the configured installer command line.
	Command string `json:"command"`

	// Binary is the program the command runs.
	Binary string `json:"binary"`

	// Path is where Binary was found.
	Path string `json:"path,omitempty"`

	// Version is the installer version.
	Version string `json:"version,omitempty"`

	// Found indicates if the binary was found.
	Found bool `json:"found"`

	// Supported indicates the version satisfies MinBowerVersion. Installers
	// other than bower are not checked and always count as supported.
	Supported bool `json:"supported"`

	// Message provides additional information.
	Message string `json:"message,omitempty"`
}

// DetectInstaller looks up the binary of command and asks it for its
// version.
func DetectInstaller(command string) InstallerInfo {
	info := InstallerInfo{Command: command}

	argv, err := shellquote.Split(command)
	if err != nil || len(argv) == 0 {
		info.Message = "invalid install command"
		return info
	}
	info.Binary = argv[0]

	path, err := exec.LookPath(info.Binary)
	if err != nil {
		info.Message = info.Binary + " not found in PATH"
		return info
	}
	info.Path = path
	info.Found = true

	out, err := runVersion(path)
	if err != nil {
		info.Message = "failed to get version: " + err.Error()
		return info
	}

	info.Version, err = extractVersion(out)
	if err != nil {
		info.Message = err.Error()
		return info
	}

	info.Supported, info.Message = checkVersion(info.Binary, info.Version)
	return info
}

func runVersion(path string) (string, error) {
	cmd := exec.Command(path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// extractVersion finds the first version number in tool output.
func extractVersion(output string) (string, error) {
	match := versionRegex.FindString(output)
	if match == "" {
		return "", fmt.Errorf("failed to parse version from output: %q", output)
	}
	return match, nil
}

// checkVersion reports whether version of binary is supported, with a
// short explanation.
func checkVersion(binary, version string) (bool, string) {
	if binary != "bower" {
		return true, "not checked"
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return false, "invalid version format"
	}

	constraint, err := semver.NewConstraint(MinBowerVersion)
	if err != nil {
		return false, err.Error()
	}

	if !constraint.Check(v) {
		return false, fmt.Sprintf("unsupported - requires bower %s", MinBowerVersion)
	}
	return true, "supported"
}

// String returns a human-readable installer info string.
func (i InstallerInfo) String() string {
	if !i.Found {
		msg := i.Message
		if msg == "" {
			msg = "not found"
		}
		return fmt.Sprintf("  Command: %s\n  Binary:  %s", i.Command, msg)
	}

	return fmt.Sprintf("  Command: %s\n  Binary:  %s %s (%s)\n  Path:    %s",
		i.Command, i.Binary, i.Version, i.Message, i.Path)
}
