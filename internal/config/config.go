package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = ".toolbase"
	defaultConfigDir  = ".toolbase"
	envPrefix         = "TOOLBASE"

	defaultScope        = "API"
	defaultOutputFormat = "columns"
	defaultLogFormat    = "console"
	defaultGutter       = 5
)

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"kubeconfig": "kubeconfig",
	"context":    "context",
	"output":     "output.format",
	"no-color":   "output.noColor",
	"no-headers": "output.noHeaders",
	"verbose":    "log.verbose",
	"log-format": "log.format",
	"strict":     "identity.strict",
}

// envKeys lists every key that can be set from TOOLBASE_* variables.
// Nested keys are only visible to Unmarshal once viper knows about them.
func envKeys() []string {
	keys := []string{"scope", "output.gutter"}
	for _, key := range flagKeys {
		keys = append(keys, key)
	}
	return keys
}

// Manager handles toolbase configuration
type Manager struct {
	configPath string
	config     *ToolConfig
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &ToolConfig{},
	}
}

// BindFlags lets flags present in fs override file and environment values
func (m *Manager) BindFlags(fs *pflag.FlagSet) error {
	for flag, key := range flagKeys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := m.viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// Load loads the configuration from file, environment and bound flags
func (m *Manager) Load() (*ToolConfig, error) {
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		// ~/.toolbase/config.yaml, then ~/.toolbase.yaml
		m.viper.AddConfigPath(filepath.Join(home, defaultConfigDir))
		m.viper.AddConfigPath(home)
		m.viper.SetConfigName(defaultConfigName)
		m.viper.SetConfigType("yaml")
	}

	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
	for _, key := range envKeys() {
		if err := m.viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %q: %w", key, err)
		}
	}

	m.config = &ToolConfig{}

	if err := m.viper.ReadInConfig(); err != nil {
		// A missing config file is fine, flags and environment still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.applyDefaults()

	return m.config, nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *ToolConfig {
	return m.config
}

// ConfigFileUsed returns the file the configuration was read from, if any
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

// applyDefaults sets default values for configuration
func (m *Manager) applyDefaults() {
	if m.config == nil {
		return
	}

	if m.config.Scope == "" {
		m.config.Scope = defaultScope
	}

	if m.config.Output.Format == "" {
		m.config.Output.Format = defaultOutputFormat
	}

	if m.config.Output.Gutter <= 0 {
		m.config.Output.Gutter = defaultGutter
	}

	if m.config.Log.Format == "" {
		m.config.Log.Format = defaultLogFormat
	}
}
