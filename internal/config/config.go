package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/ronmurphy/iconstudio/constant"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/ronmurphy/iconstudio/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// getConfigPaths returns the config directory paths in priority order
// prefers ~/.config over the platform config dir
func getConfigPaths() []string {
	var paths []string

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constant.ProjectName))
		paths = append(paths, filepath.Join(homeDir, "."+constant.ProjectName))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constant.ProjectName))
	}
	paths = append(paths, ".")

	return paths
}

// getPreferredConfigDir returns the preferred config directory for writing
func getPreferredConfigDir() (string, error) {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", constant.ProjectName), nil
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(userConfigDir, constant.ProjectName), nil
	}

	return "", fmt.Errorf("unable to determine config directory")
}

// loadDotEnv loads .env from the working directory. Variables already set win.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("failed to load .env")
	}
}

// InitConfig initializes Viper configuration with proper priority:
// 1. CLI flags (highest priority)
// 2. Environment variables (a .env file in the working directory is loaded first)
// 3. Config file
// 4. Defaults
func InitConfig(cmd *cobra.Command) (*Config, error) {
	loadDotEnv()

	v := viper.New()

	// look for config.yaml so data files in the same directories are not picked up
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range getConfigPaths() {
		v.AddConfigPath(path)
	}

	SetViperEnvSettings(v)
	SetViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// config file not found is ok, we'll use defaults + env vars + flags
	}
	if err := validateConfigFileKeys(v.ConfigFileUsed()); err != nil {
		return nil, err
	}
	// aliases move camelCase values read from the file onto their canonical keys
	registerConfigKeyAliases(v)

	if err := bindConfigFlags(v, cmd.Flags(), cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.normalize(); err != nil {
		return nil, err
	}

	return &config, nil
}

// normalize expands paths and rejects values no component accepts.
func (c *Config) normalize() error {
	dataDir, err := store.ExpandDir(c.DataDir)
	if err != nil {
		return fmt.Errorf("invalid data_dir %q: %w", c.DataDir, err)
	}
	c.DataDir = dataDir

	fontDir, err := homedir.Expand(c.FontDir)
	if err != nil {
		return fmt.Errorf("invalid font_dir %q: %w", c.FontDir, err)
	}
	c.FontDir = fontDir

	switch c.StoreBackend {
	case store.BackendFile, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("invalid store_backend %q: use file, sqlite or memory", c.StoreBackend)
	}
	switch c.StoreFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid store_format %q: use json or yaml", c.StoreFormat)
	}
	switch model.IdentifierStrategy(c.IdentifierStrategy) {
	case model.IdentifierDaily, model.IdentifierContent:
	default:
		return fmt.Errorf("invalid identifier_strategy %q: use daily or content", c.IdentifierStrategy)
	}
	if c.DefaultPNGScale < 1 {
		return fmt.Errorf("invalid default_png_scale %d: must be at least 1", c.DefaultPNGScale)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// InitConfigFile generates and saves a default config file to the appropriate location
func InitConfigFile() (string, error) {
	configDir, err := getPreferredConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	yamlData, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	header := `# iconstudio configuration file
# Generated automatically - customize as needed
#
# store_backend: file, sqlite or memory
# identifier_strategy: daily (one working set entry per icon per day) or content
# catalogs may be file paths or http(s) URLs
#

`

	if err := os.WriteFile(configPath, []byte(header+string(yamlData)), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return configPath, nil
}
