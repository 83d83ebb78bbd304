package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// storage
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir"`
	StoreBackend string `mapstructure:"store_backend" yaml:"store_backend"`
	StoreFormat  string `mapstructure:"store_format" yaml:"store_format"`

	// icon catalog and fonts
	MaterialCatalog    string `mapstructure:"material_catalog" yaml:"material_catalog"`
	FontAwesomeCatalog string `mapstructure:"fontawesome_catalog" yaml:"fontawesome_catalog"`
	MaterialCodepoints string `mapstructure:"material_codepoints" yaml:"material_codepoints"`
	FontDir            string `mapstructure:"font_dir" yaml:"font_dir"`

	// editing behaviour
	IdentifierStrategy string `mapstructure:"identifier_strategy" yaml:"identifier_strategy"`
	AutoUpdate         bool   `mapstructure:"auto_update" yaml:"auto_update"`
	AutoSave           bool   `mapstructure:"auto_save" yaml:"auto_save"`
	DefaultPNGScale    int    `mapstructure:"default_png_scale" yaml:"default_png_scale"`
	FileTypeAliases    bool   `mapstructure:"file_type_aliases" yaml:"file_type_aliases"`

	// http server
	Listen        string `mapstructure:"listen" yaml:"listen"`
	SessionSecret string `mapstructure:"session_secret" yaml:"session_secret"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		DataDir:            "", // ~/.local/share/iconstudio
		StoreBackend:       "file",
		StoreFormat:        "json",
		MaterialCatalog:    "icons/material_icons.json",
		FontAwesomeCatalog: "icons/fa_free_icons.json",
		MaterialCodepoints: "",
		FontDir:            "fonts",
		IdentifierStrategy: "daily",
		AutoUpdate:         false,
		AutoSave:           false,
		DefaultPNGScale:    2,
		FileTypeAliases:    false,
		Listen:             ":8080",
		SessionSecret:      "", // random per process
		LogLevel:           "info",
	}
}

// BindFlags binds CLI flags to the cobra command
func BindFlags(cmd *cobra.Command) {
	defaults := DefaultConfig()

	cmd.PersistentFlags().String("data-dir", defaults.DataDir, "Directory for saved configurations")
	cmd.PersistentFlags().String("store-backend", defaults.StoreBackend, "Storage backend: file, sqlite or memory")
	cmd.PersistentFlags().String("store-format", defaults.StoreFormat, "File store format: json or yaml")
	cmd.PersistentFlags().String("material-catalog", defaults.MaterialCatalog, "Material icon list (path or URL)")
	cmd.PersistentFlags().String("fontawesome-catalog", defaults.FontAwesomeCatalog, "Font Awesome icon map (path or URL)")
	cmd.PersistentFlags().String("material-codepoints", defaults.MaterialCodepoints, "Material codepoints file used for PNG export")
	cmd.PersistentFlags().String("font-dir", defaults.FontDir, "Directory holding the icon font files")
	cmd.PersistentFlags().String("identifier-strategy", defaults.IdentifierStrategy, "Working set keys: daily or content")
	cmd.PersistentFlags().Bool("auto-update", defaults.AutoUpdate, "Overwrite working set entries without asking")
	cmd.PersistentFlags().Bool("auto-save", defaults.AutoSave, "Initial auto-save preference")
	cmd.PersistentFlags().Int("default-png-scale", defaults.DefaultPNGScale, "Default PNG size as a multiple of the size axis")
	cmd.PersistentFlags().Bool("file-type-aliases", defaults.FileTypeAliases, "Add .file-type-* rules to exported themes")
	cmd.PersistentFlags().StringP("listen", "l", defaults.Listen, "HTTP listen address")
	cmd.PersistentFlags().String("session-secret", defaults.SessionSecret, "Secret for signing session cookies")
	cmd.PersistentFlags().String("log-level", defaults.LogLevel, "Log level")
	cmd.PersistentFlags().Bool("init-config", false, "Generate and save default config file")
}

// SetViperDefaults sets default values in viper configuration
func SetViperDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("store_backend", defaults.StoreBackend)
	v.SetDefault("store_format", defaults.StoreFormat)
	v.SetDefault("material_catalog", defaults.MaterialCatalog)
	v.SetDefault("fontawesome_catalog", defaults.FontAwesomeCatalog)
	v.SetDefault("material_codepoints", defaults.MaterialCodepoints)
	v.SetDefault("font_dir", defaults.FontDir)
	v.SetDefault("identifier_strategy", defaults.IdentifierStrategy)
	v.SetDefault("auto_update", defaults.AutoUpdate)
	v.SetDefault("auto_save", defaults.AutoSave)
	v.SetDefault("default_png_scale", defaults.DefaultPNGScale)
	v.SetDefault("file_type_aliases", defaults.FileTypeAliases)
	v.SetDefault("listen", defaults.Listen)
	v.SetDefault("session_secret", defaults.SessionSecret)
	v.SetDefault("log_level", defaults.LogLevel)
}

// SetViperEnvSettings configures viper environment variable settings
func SetViperEnvSettings(v *viper.Viper) {
	v.SetEnvPrefix("ICONSTUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}
