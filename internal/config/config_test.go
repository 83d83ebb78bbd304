package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

// Helper function for testing config loading
func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// isolatedHome points HOME and the XDG config dir at a fresh temp dir and
// returns the iconstudio config directory inside it.
func isolatedHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return filepath.Join(tmpDir, ".config", "iconstudio")
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "iconstudio"}
	BindFlags(cmd)
	return cmd
}

func TestConfigDefaults(t *testing.T) {
	defaults := DefaultConfig()

	assert.Equal(t, "file", defaults.StoreBackend)
	assert.Equal(t, "json", defaults.StoreFormat)
	assert.Equal(t, "icons/material_icons.json", defaults.MaterialCatalog)
	assert.Equal(t, "icons/fa_free_icons.json", defaults.FontAwesomeCatalog)
	assert.Equal(t, "daily", defaults.IdentifierStrategy)
	assert.False(t, defaults.AutoUpdate)
	assert.False(t, defaults.AutoSave)
	assert.Equal(t, 2, defaults.DefaultPNGScale)
	assert.Equal(t, ":8080", defaults.Listen)
	assert.Equal(t, "info", defaults.LogLevel)
}

func TestConfigLoading(t *testing.T) {
	configContent := `
data_dir: "/var/lib/iconstudio"
store_backend: "sqlite"
store_format: "yaml"
material_catalog: "https://example.com/material.json"
fontawesome_catalog: "icons/fa.json"
font_dir: "/usr/share/fonts/icons"
identifier_strategy: "content"
auto_update: true
auto_save: true
default_png_scale: 4
listen: "127.0.0.1:9000"
log_level: "debug"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	config, err := loadConfigFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/iconstudio", config.DataDir)
	assert.Equal(t, "sqlite", config.StoreBackend)
	assert.Equal(t, "yaml", config.StoreFormat)
	assert.Equal(t, "https://example.com/material.json", config.MaterialCatalog)
	assert.Equal(t, "content", config.IdentifierStrategy)
	assert.True(t, config.AutoUpdate)
	assert.True(t, config.AutoSave)
	assert.Equal(t, 4, config.DefaultPNGScale)
	assert.Equal(t, "127.0.0.1:9000", config.Listen)
}

func TestInitConfigWithoutFile(t *testing.T) {
	home := isolatedHome(t)

	cfg, err := InitConfig(newTestCommand())
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, filepath.Join(filepath.Dir(filepath.Dir(home)), ".local", "share", "iconstudio"), cfg.DataDir)
}

func TestInitConfigReadsFile(t *testing.T) {
	dir := isolatedHome(t)
	writeConfig(t, dir, `
data_dir: "~/studio-data"
store_backend: memory
identifier_strategy: content
auto_update: true
`)

	cfg, err := InitConfig(newTestCommand())
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "content", cfg.IdentifierStrategy)
	assert.True(t, cfg.AutoUpdate)
	assert.False(t, strings.HasPrefix(cfg.DataDir, "~"))
	assert.True(t, strings.HasSuffix(cfg.DataDir, "studio-data"))
}

func TestInitConfigAcceptsCamelCase(t *testing.T) {
	dir := isolatedHome(t)
	writeConfig(t, dir, `
storeBackend: "sqlite"
autoUpdate: true
defaultPngScale: 3
sessionSecret: "s3cret"
`)

	cfg, err := InitConfig(newTestCommand())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.True(t, cfg.AutoUpdate)
	assert.Equal(t, 3, cfg.DefaultPNGScale)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
}

func TestInitConfigRejectsMixedNamingStyles(t *testing.T) {
	dir := isolatedHome(t)
	writeConfig(t, dir, `
log_level: "debug"
logLevel: "warn"
`)

	cfg, err := InitConfig(newTestCommand())
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "logLevel")
}

func TestInitConfigRejectsUnknownKeys(t *testing.T) {
	dir := isolatedHome(t)
	writeConfig(t, dir, "menu_id: old\n")

	_, err := InitConfig(newTestCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid key "menu_id"`)
}

func TestInitConfigRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		config  string
		message string
	}{
		{"backend", "store_backend: redis\n", "store_backend"},
		{"format", "store_format: toml\n", "store_format"},
		{"strategy", "identifier_strategy: hourly\n", "identifier_strategy"},
		{"png scale", "default_png_scale: 0\n", "default_png_scale"},
		{"log level", "log_level: chatty\n", "log_level"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolatedHome(t)
			writeConfig(t, dir, tc.config)

			cfg, err := InitConfig(newTestCommand())
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestConfigPriority(t *testing.T) {
	dir := isolatedHome(t)
	writeConfig(t, dir, `
listen: ":9000"
log_level: "warn"
store_format: "yaml"
`)
	t.Setenv("ICONSTUDIO_LISTEN", ":9100")
	t.Setenv("ICONSTUDIO_LOG_LEVEL", "debug")

	cmd := newTestCommand()
	require.NoError(t, cmd.PersistentFlags().Set("listen", ":9200"))

	cfg, err := InitConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, ":9200", cfg.Listen)     // flag
	assert.Equal(t, "debug", cfg.LogLevel)   // env
	assert.Equal(t, "yaml", cfg.StoreFormat) // file
	assert.Equal(t, "file", cfg.StoreBackend)
}

func TestInitConfigLoadsDotEnv(t *testing.T) {
	isolatedHome(t)
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"), []byte("ICONSTUDIO_STORE_BACKEND=memory\n"), 0o644))
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	// restore the variable after the test; godotenv only sets unset variables
	t.Setenv("ICONSTUDIO_STORE_BACKEND", "")
	require.NoError(t, os.Unsetenv("ICONSTUDIO_STORE_BACKEND"))

	cfg, err := InitConfig(newTestCommand())
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StoreBackend)
}

func TestInitConfigFile(t *testing.T) {
	dir := isolatedHome(t)

	path, err := InitConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# iconstudio configuration file"))

	loaded, err := loadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)

	_, err = InitConfigFile()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// the generated file must pass key validation
	cfg, err := InitConfig(newTestCommand())
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.StoreFormat)
}
