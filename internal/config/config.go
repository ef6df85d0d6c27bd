package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2latex/internal/fileutil"
	"github.com/alnah/go-md2latex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidFieldName = errors.New("invalid template field name")
	ErrTooManyDefaults  = errors.New("too many default fields")
	ErrInvalidLogLevel  = errors.New("invalid log level")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxFieldNameLength = 64   // Template identifier
	MaxDefaultLength   = 1000 // Default field value
	MaxDefaults        = 100  // Entries in defaults
)

// configDirName is the directory searched under the user config dir.
const configDirName = "go-md2latex"

// identifier matches a template field name, as used in %name% tokens.
var identifier = regexp.MustCompile(`^\w+$`)

// Config holds all configuration for document conversion.
type Config struct {
	Template TemplateConfig    `yaml:"template"`
	Output   OutputConfig      `yaml:"output"`
	Defaults map[string]string `yaml:"defaults"` // Fallback template fields
	Log      LogConfig         `yaml:"log"`
}

// TemplateConfig defines the LaTeX template source.
type TemplateConfig struct {
	Path string `yaml:"path"` // Used when no template argument is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Path string `yaml:"path"` // Empty = stdout
}

// LogConfig defines diagnostic output options.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error" (default: "info")
}

// Validate checks field lengths and field names.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("template.path", c.Template.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}

	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidLogLevel, c.Log.Level)
		}
	}

	if len(c.Defaults) > MaxDefaults {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyDefaults, len(c.Defaults), MaxDefaults)
	}

	// Sorted so the reported field is stable.
	names := make([]string, 0, len(c.Defaults))
	for name := range c.Defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !identifier.MatchString(name) {
			return fmt.Errorf("%w: defaults.%s (letters, digits and underscore only)", ErrInvalidFieldName, name)
		}
		if err := validateFieldLength("defaults key", name, MaxFieldNameLength); err != nil {
			return err
		}
		if err := validateFieldLength("defaults."+name, c.Defaults[name], MaxDefaultLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: no template, stdout output,
// no defaults.
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{Path: ""},
		Output:   OutputConfig{Path: ""},
		Defaults: map[string]string{},
		Log:      LogConfig{Level: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	if cfg.Defaults == nil {
		cfg.Defaults = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Relative template and output paths are relative to the config file.
	base := filepath.Dir(configPath)
	cfg.Template.Path = resolveRelative(base, cfg.Template.Path)
	cfg.Output.Path = resolveRelative(base, cfg.Output.Path)

	return cfg, nil
}

func resolveRelative(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2latex/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
