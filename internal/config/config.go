// Package config provides configuration loading and management.
package config

// DefaultInstallCommand is the dependency installer run after scaffolding.
const DefaultInstallCommand = "bower install"

// InstallConfig contains dependency installation settings.
type InstallConfig struct {
	// Command is the installer command line, split with shell quoting rules.
	// Env: TPA_SEED_INSTALL_COMMAND, Default: "bower install"
	Command string `json:"command,omitempty" yaml:"command,omitempty" mapstructure:"command"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the tpa-seed user configuration.
// Loaded from ~/.tpa-seed/config.yaml, validated against embedded CUE schema.
type Config struct {
	// TemplateDir is a template root on disk used instead of the embedded seed.
	// Env: TPA_SEED_TEMPLATE_DIR
	TemplateDir string `json:"templateDir,omitempty" yaml:"templateDir,omitempty" mapstructure:"templateDir"`

	// Install contains dependency installation settings.
	Install InstallConfig `json:"install,omitempty" yaml:"install,omitempty" mapstructure:"install"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `tpa-seed config init` to generate initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Install: InstallConfig{
			Command: DefaultInstallCommand,
		},
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// WithDefaults returns a copy of c with unset fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}

	out := *c
	if out.Install.Command == "" {
		out.Install.Command = defaults.Install.Command
	}
	if out.Log.Timestamps == nil {
		out.Log.Timestamps = defaults.Log.Timestamps
	}
	return &out
}
