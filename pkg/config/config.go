package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dbfkit/dbfkit/pkg/dbf"
)

// Config represents the dbfkit gateway configuration
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Port    int     `yaml:"port"`
	Bind    string  `yaml:"bind"`
	Decode  Decode  `yaml:"decode"`
	Logging Logging `yaml:"logging"`
}

// Decode contains the decoding defaults applied to every table the gateway
// opens
type Decode struct {
	Encoding        string            `yaml:"encoding"`
	FieldEncodings  map[string]string `yaml:"field_encodings,omitempty"`
	Mode            string            `yaml:"mode"`
	IncludeDeleted  bool              `yaml:"include_deleted"`
	MaxBatchRecords int               `yaml:"max_batch_records"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Decode: Decode{
			Encoding:        "latin1",
			Mode:            string(dbf.ModeStrict),
			IncludeDeleted:  false,
			MaxBatchRecords: 1000,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Options converts the decode section into the core library's option set.
func (d Decode) Options() dbf.Options {
	return dbf.Options{
		Encoding:       d.Encoding,
		FieldEncodings: d.FieldEncodings,
		Mode:           dbf.ReadMode(d.Mode),
		IncludeDeleted: d.IncludeDeleted,
	}
}

// Validate checks the configuration for values the gateway cannot run with
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	switch dbf.ReadMode(c.Decode.Mode) {
	case dbf.ModeStrict, dbf.ModeLoose, "":
	default:
		return fmt.Errorf("decode mode %q is not strict or loose", c.Decode.Mode)
	}
	if c.Decode.MaxBatchRecords < 0 {
		return fmt.Errorf("max_batch_records must not be negative")
	}
	return nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./dbfkit.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "dbfkit")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
