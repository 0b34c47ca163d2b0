// Package config loads and validates the bot configuration.
//
// Required values come from the process environment and are asserted
// before anything touches the network: a missing or malformed variable
// aborts startup with a MissingConfigurationError naming the variable.
// Tuning knobs (logging, command prefix) may additionally be supplied
// through an optional YAML settings file whose values support ${VAR}
// expansion.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the environment nor the settings file
// provides a value.
const (
	DefaultCommandPrefix = "!"
	DefaultLogLevel      = "info"
	DefaultLogFile       = "logs/componentbot.log"
	DefaultLogMaxSize    = 100 // MB
	DefaultLogMaxBackups = 5
	DefaultLogMaxAge     = 30 // days
)

// Kind is the scalar type an environment variable must convert to.
type Kind int

const (
	String Kind = iota
	Int
	Bool
)

// String returns the human-readable name used in error messages.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Bool:
		return "bool"
	default:
		return "str"
	}
}

// EnvSpec declares one required environment variable.
type EnvSpec struct {
	Var   string
	Label string
	Kind  Kind
}

// MissingConfigurationError reports a required environment variable
// that is absent or not convertible to its declared kind.
type MissingConfigurationError struct {
	Var    string
	Label  string
	Reason string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("%s/%s %s", e.Var, e.Label, e.Reason)
}

// requiredEnvs is the full set of environment variables the bot cannot
// start without.
var requiredEnvs = []EnvSpec{
	{Var: "TOKEN", Label: "The Bot Token", Kind: String},
}

// AssertEnvs verifies every declared variable is present and converts
// to its declared kind. It returns on the first failure; success means
// startup may proceed.
func AssertEnvs(specs []EnvSpec) error {
	for _, spec := range specs {
		value := os.Getenv(spec.Var)
		if value == "" {
			return &MissingConfigurationError{
				Var:    spec.Var,
				Label:  spec.Label,
				Reason: "needs to be defined",
			}
		}
		if err := convert(value, spec.Kind); err != nil {
			return &MissingConfigurationError{
				Var:    spec.Var,
				Label:  spec.Label,
				Reason: fmt.Sprintf("is not the required type of %s", spec.Kind),
			}
		}
	}
	return nil
}

func convert(value string, kind Kind) error {
	switch kind {
	case Int:
		_, err := strconv.Atoi(value)
		return err
	case Bool:
		_, err := strconv.ParseBool(value)
		return err
	default:
		return nil
	}
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	File         string `yaml:"file"`
	MaxSize      int    `yaml:"max_size"`
	MaxBackups   int    `yaml:"max_backups"`
	MaxAge       int    `yaml:"max_age"`
	Compress     *bool  `yaml:"compress"`
	EnableStdout *bool  `yaml:"enable_stdout"`
}

// Config is the immutable runtime configuration.
type Config struct {
	Token         string
	OwnerID       string
	CommandPrefix string
	Logging       LoggingConfig
}

// settings is the shape of the optional YAML settings file.
type settings struct {
	CommandPrefix string        `yaml:"command_prefix"`
	OwnerID       string        `yaml:"owner_id"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Load asserts the required environment, applies the optional settings
// file at settingsPath (ignored when empty or absent), then overlays
// environment overrides and defaults. The returned Config is complete;
// callers never consult the environment again.
func Load(settingsPath string) (*Config, error) {
	if err := AssertEnvs(requiredEnvs); err != nil {
		return nil, err
	}

	config := &Config{
		Token:   os.Getenv("TOKEN"),
		OwnerID: os.Getenv("OWNER_ID"),
	}

	if settingsPath != "" {
		if err := applySettingsFile(config, settingsPath); err != nil {
			return nil, err
		}
	}

	// Environment wins over the settings file.
	if prefix := os.Getenv("COMMAND_PREFIX"); prefix != "" {
		config.CommandPrefix = prefix
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if file := os.Getenv("LOG_FILE"); file != "" {
		config.Logging.File = file
	}

	applyDefaults(config)
	return config, nil
}

func applySettingsFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	expanded, err := expandEnv(string(data))
	if err != nil {
		return fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var s settings
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	if s.CommandPrefix != "" {
		config.CommandPrefix = s.CommandPrefix
	}
	if s.OwnerID != "" {
		config.OwnerID = s.OwnerID
	}
	if s.Logging.Level != "" {
		config.Logging.Level = s.Logging.Level
	}
	if s.Logging.File != "" {
		config.Logging.File = s.Logging.File
	}
	if s.Logging.MaxSize != 0 {
		config.Logging.MaxSize = s.Logging.MaxSize
	}
	if s.Logging.MaxBackups != 0 {
		config.Logging.MaxBackups = s.Logging.MaxBackups
	}
	if s.Logging.MaxAge != 0 {
		config.Logging.MaxAge = s.Logging.MaxAge
	}
	if s.Logging.Compress != nil {
		config.Logging.Compress = s.Logging.Compress
	}
	if s.Logging.EnableStdout != nil {
		config.Logging.EnableStdout = s.Logging.EnableStdout
	}

	return nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable
// values, collecting missing variables into a single error.
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

func applyDefaults(config *Config) {
	if config.CommandPrefix == "" {
		config.CommandPrefix = DefaultCommandPrefix
	}
	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.File == "" {
		config.Logging.File = DefaultLogFile
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = DefaultLogMaxAge
	}
	if config.Logging.Compress == nil {
		compress := true
		config.Logging.Compress = &compress
	}
	if config.Logging.EnableStdout == nil {
		stdout := true
		config.Logging.EnableStdout = &stdout
	}
}
