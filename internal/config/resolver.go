package config

import (
	"os"

	"github.com/tpaseed/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with its origin.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions are the candidate values for one key, lowest precedence last.
type ResolveOptions struct {
	Key          string
	FlagValue    string
	EnvVar       string
	ConfigValue  string
	DefaultValue string
}

// Resolve picks a value using precedence flag > env > config > default.
// Empty candidates are treated as unset. When nothing is set and there is no
// default, Value and Source are empty.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveTemplateDir resolves the template root: --template, then
// TPA_SEED_TEMPLATE_DIR, then templateDir. Empty means the embedded seed.
func ResolveTemplateDir(flagValue string, cfg *Config) ResolvedValue {
	var configValue string
	if cfg != nil {
		configValue = cfg.TemplateDir
	}
	return Resolve(ResolveOptions{
		Key:         "templateDir",
		FlagValue:   flagValue,
		EnvVar:      EnvTemplateDir,
		ConfigValue: configValue,
	})
}

// ResolveInstallCommand resolves the installer command line. There is no
// flag for it.
func ResolveInstallCommand(cfg *Config) ResolvedValue {
	var configValue string
	if cfg != nil {
		configValue = cfg.Install.Command
	}
	return Resolve(ResolveOptions{
		Key:          "install.command",
		EnvVar:       EnvInstallCmd,
		ConfigValue:  configValue,
		DefaultValue: DefaultInstallCommand,
	})
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) TPA_SEED_CONFIG env, (3) ~/.tpa-seed/config.yaml.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{Key: "config"}, err
	}

	return Resolve(ResolveOptions{
		Key:          "config",
		FlagValue:    flagValue,
		EnvVar:       EnvConfigFile,
		DefaultValue: paths.ConfigFile,
	}), nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
