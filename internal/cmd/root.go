// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tpaseed/cli/internal/config"
	"github.com/tpaseed/cli/internal/install"
	"github.com/tpaseed/cli/internal/output"
	"github.com/tpaseed/cli/internal/prompt"
)

// GlobalConfig holds CLI-wide configuration resolved during
// PersistentPreRunE. It is passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded user configuration with defaults applied.
	Config *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Verbose is the --verbose flag.
	Verbose bool

	// Prompter answers questions. Nil means one is chosen from the terminal.
	Prompter prompt.Prompter

	// Runner executes the dependency installer. Nil means os/exec.
	Runner install.Runner
}

// Option customizes the root command.
type Option func(*GlobalConfig)

// WithPrompter replaces the interactive prompter.
func WithPrompter(p prompt.Prompter) Option {
	return func(g *GlobalConfig) {
		g.Prompter = p
	}
}

// WithRunner replaces the installer command runner.
func WithRunner(r install.Runner) Option {
	return func(g *GlobalConfig) {
		g.Runner = r
	}
}

// NewRootCmd creates the root command for the tpa-seed CLI.
func NewRootCmd(opts ...Option) *cobra.Command {
	g := &GlobalConfig{}
	for _, opt := range opts {
		opt(g)
	}

	var (
		configFlag     string
		timestampsFlag bool
	)

	rootCmd := newGenerateCmd(g)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initializeGlobals(cmd, g, configFlag, timestampsFlag)
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: TPA_SEED_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewConfigCmd(g))
	rootCmd.AddCommand(NewVersionCmd(g))

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command, g *GlobalConfig, configFlag string, timestampsFlag bool) error {
	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return err
	}
	g.ConfigPath = pathResult.Value

	// A broken config file must not stop scaffolding; it is reported once
	// logging is set up.
	loaded, loadErr := config.NewLoader().Load(g.ConfigPath)
	g.Config = loaded.WithDefaults()

	logCfg := output.LogConfig{
		Verbose: g.Verbose,
	}

	// Resolve timestamps: flag (if explicitly set) > config > default (true)
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if loaded != nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	if loadErr != nil {
		output.Warn("ignoring config file", "path", g.ConfigPath, "err", loadErr)
	}

	config.LogResolvedValues(pathResult)

	return nil
}
