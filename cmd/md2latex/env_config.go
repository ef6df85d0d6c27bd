package main

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2latex/internal/config"
)

// envPrefix marks the environment variables read by md2latex.
const envPrefix = "MD2LATEX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2LATEX_CONFIG: config file name or path
	Template   string // MD2LATEX_TEMPLATE: template file path
	Output     string // MD2LATEX_OUTPUT: output file path
}

// knownEnvVars lists valid MD2LATEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2LATEX_CONFIG":   true,
	"MD2LATEX_TEMPLATE": true,
	"MD2LATEX_OUTPUT":   true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("MD2LATEX_CONFIG"),
		Template:   getenv("MD2LATEX_TEMPLATE"),
		Output:     getenv("MD2LATEX_OUTPUT"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MD2LATEX_* variables.
// Helps catch typos like MD2LATEX_TEMPLAT instead of MD2LATEX_TEMPLATE.
func warnUnknownEnvVars(logger *log.Logger, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Template != "" {
		cfg.Template.Path = env.Template
	}
	if env.Output != "" {
		cfg.Output.Path = env.Output
	}
}

// resolveConfigName picks the config to load: --config first, then
// MD2LATEX_CONFIG. Empty means no config file.
func resolveConfigName(flagConfig string, env *envConfig) string {
	if flagConfig != "" {
		return flagConfig
	}
	return env.ConfigPath
}
