package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tpaseed/cli/internal/config"
	"github.com/tpaseed/cli/internal/output"
	"github.com/tpaseed/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show tpa-seed CLI version information.

Displays:
  - tpa-seed version, commit, build date and Go version
  - the dependency installer command, its binary and version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(g)
		},
	}
}

func runVersion(g *GlobalConfig) error {
	command := config.ResolveInstallCommand(g.Config)
	installer := version.DetectInstaller(command.Value)

	output.Println(version.FullVersionString(version.Get(), installer))
	if installer.Found && !installer.Supported {
		output.Warn("installer version is not supported", "binary", installer.Binary, "version", installer.Version, "reason", installer.Message)
	}
	return nil
}
