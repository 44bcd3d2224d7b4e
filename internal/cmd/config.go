package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tpaseed/cli/internal/config"
	oerrors "github.com/tpaseed/cli/internal/errors"
	"github.com/tpaseed/cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(g *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the tpa-seed CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(g))
	c.AddCommand(NewConfigVetCmd(g))

	return c
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(g *GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the tpa-seed CLI configuration.

Writes the default configuration to the resolved config path
(--config flag > TPA_SEED_CONFIG env > ~/.tpa-seed/config.yaml).

Examples:
  # Initialize configuration
  tpa-seed config init

  # Overwrite existing configuration
  tpa-seed config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(g, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return c
}

func runConfigInit(g *GlobalConfig, force bool) error {
	path, err := resolvedConfigPath(g)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(path); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	var buf bytes.Buffer
	buf.WriteString("# tpa-seed configuration. Validate with: tpa-seed config vet\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	data := buf.Bytes()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+path)
	}

	output.Println(output.FormatCheckmark("Configuration initialized at " + path))
	output.Println("Validate with: " + output.FormatCommand("tpa-seed config vet"))

	return nil
}

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the tpa-seed CLI configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Config matches the schema (known keys, correct types)
  4. install.command can be split into a command line

The config path is resolved using precedence:
  --config flag > TPA_SEED_CONFIG env > ~/.tpa-seed/config.yaml

Examples:
  # Validate default configuration
  tpa-seed config vet

  # Validate custom config path
  tpa-seed config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigVet(g)
		},
	}
}

func runConfigVet(g *GlobalConfig) error {
	path, err := resolvedConfigPath(g)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}

	output.Debug("validating config", "path", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return oerrors.NewNotFoundError(
			"configuration file not found",
			path,
			"Run 'tpa-seed config init' to create default configuration",
		)
	}

	v, err := config.NewValidator()
	if err != nil {
		return err
	}

	if err := v.ValidateFile(path); err != nil {
		var verrs config.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return err
		}
		first := verrs[0]
		return oerrors.NewValidationError(verrs.Error(), path, first.Field,
			"Fix the listed fields; see 'tpa-seed config init' for the defaults.")
	}

	output.Println(output.FormatCheckmark("Configuration is valid: " + path))
	return nil
}

// resolvedConfigPath returns the config path resolved by the root command,
// resolving it here when the command runs on its own.
func resolvedConfigPath(g *GlobalConfig) (string, error) {
	path := g.ConfigPath
	if path == "" {
		resolved, err := config.ResolveConfigPath("")
		if err != nil {
			return "", err
		}
		path = resolved.Value
	}
	return config.ExpandPath(path)
}
