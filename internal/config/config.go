package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".shopmig"
	DefaultConfigFile = "config.yaml"
)

// Config represents the application configuration
type Config struct {
	Files     FilesConfig     `yaml:"files"`
	Migration MigrationConfig `yaml:"migration"`
	Batch     BatchConfig     `yaml:"batch,omitempty"`
}

// FilesConfig holds every file path the pipeline touches
type FilesConfig struct {
	Source    string `yaml:"source"`               // Flat source export CSV
	Mapping   string `yaml:"mapping,omitempty"`    // Field mapping YAML (empty = built-in WooCommerce mapping)
	Taxonomy  string `yaml:"taxonomy,omitempty"`   // Category taxonomy YAML (empty = pass-through)
	OutputDir string `yaml:"output_dir"`           // Destination for CSVs and reports
	StateFile string `yaml:"state_file,omitempty"` // Idempotency ledger (empty = default under output_dir)
}

// MigrationConfig holds run-level knobs
type MigrationConfig struct {
	SampleSize       int    `yaml:"sample_size,omitempty"`       // Process at most N source rows (0 = all)
	SkipMigrated     bool   `yaml:"skip_migrated"`               // Consult the ledger before each group
	Progress         bool   `yaml:"progress"`                    // Render a progress bar
	CategoryFallback string `yaml:"category_fallback,omitempty"` // Override taxonomy fallback (clear, default, warn)
}

// BatchConfig holds batch splitting settings
type BatchConfig struct {
	Count  int    `yaml:"count,omitempty"`  // Number of batch files to split into
	Prefix string `yaml:"prefix,omitempty"` // Batch file name prefix
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Files: FilesConfig{
			Source:    "products.csv",
			OutputDir: "./output",
		},
		Migration: MigrationConfig{
			SkipMigrated: false,
			Progress:     true,
		},
		Batch: BatchConfig{
			Count:  20,
			Prefix: "batch",
		},
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// Load reads the configuration from the config file
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from a specific path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// Save writes the configuration to the config file
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return SaveTo(config, configPath)
}

// SaveTo writes the configuration to a specific path
func SaveTo(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Init creates a new config file with defaults
func Init() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	return Save(DefaultConfig())
}

// Exists checks if the config file exists
func Exists() bool {
	configPath, err := GetConfigPath()
	if err != nil {
		return false
	}

	_, err = os.Stat(configPath)
	return err == nil
}

// applyDefaults fills in missing values with defaults
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Files.OutputDir == "" {
		config.Files.OutputDir = defaults.Files.OutputDir
	}
	if config.Batch.Count <= 0 {
		config.Batch.Count = defaults.Batch.Count
	}
	if config.Batch.Prefix == "" {
		config.Batch.Prefix = defaults.Batch.Prefix
	}
}

// Set updates a specific config value
func Set(key, value string) error {
	config, err := Load()
	if err != nil {
		return err
	}

	switch key {
	case "files.source":
		config.Files.Source = value
	case "files.mapping":
		config.Files.Mapping = value
	case "files.taxonomy":
		config.Files.Taxonomy = value
	case "files.output_dir":
		config.Files.OutputDir = value
	case "files.state_file":
		config.Files.StateFile = value
	case "migration.skip_migrated":
		config.Migration.SkipMigrated = value == "true"
	case "migration.progress":
		config.Migration.Progress = value == "true"
	case "migration.category_fallback":
		config.Migration.CategoryFallback = value
	case "batch.prefix":
		config.Batch.Prefix = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return Save(config)
}

// Get retrieves a specific config value
func Get(key string) (string, error) {
	config, err := Load()
	if err != nil {
		return "", err
	}

	switch key {
	case "files.source":
		return config.Files.Source, nil
	case "files.mapping":
		return config.Files.Mapping, nil
	case "files.taxonomy":
		return config.Files.Taxonomy, nil
	case "files.output_dir":
		return config.Files.OutputDir, nil
	case "files.state_file":
		return config.Files.StateFile, nil
	case "migration.skip_migrated":
		if config.Migration.SkipMigrated {
			return "true", nil
		}
		return "false", nil
	case "migration.progress":
		if config.Migration.Progress {
			return "true", nil
		}
		return "false", nil
	case "migration.category_fallback":
		return config.Migration.CategoryFallback, nil
	case "batch.prefix":
		return config.Batch.Prefix, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}
