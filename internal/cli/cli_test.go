package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/ronmurphy/iconstudio/core"
	"github.com/ronmurphy/iconstudio/internal/config"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

const exportList = `
- library: material
  family: outlined
  icon: home
  primaryColor: "#112233"
  secondaryColor: "#445566"
  weight: 400
  fill: 0
  grade: 0
  size: 24
  offset: 2
  opacity: 0.5
  animation: pulse
- library: fontawesome
  family: solid
  icon: star
  primaryColor: "#ff0000"
  secondaryColor: "#00ff00"
  weight: 400
  fill: 0
  grade: 0
  size: 24
  offset: 3
  opacity: 0.4
`

// isolate points HOME at a temp dir so no user config is read, and returns
// a data directory inside it.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return filepath.Join(home, "data")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := InitCLI()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// catalogFlags writes a small catalog and returns the flags pointing at it.
func catalogFlags(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		"--material-catalog", writeFile(t, dir, "material.json", `{"material": ["home", "house", "star"]}`),
		"--fontawesome-catalog", writeFile(t, dir, "fa.json", `{"solid": [{"name": "star", "unicode": "f005"}], "brands": ["github"]}`),
		"--material-codepoints", writeFile(t, dir, "codepoints", "home 48\nstar 53\n"),
	}
}

func TestInitCLI(t *testing.T) {
	cmd := InitCLI()

	require.NotNil(t, cmd)
	assert.Equal(t, "iconstudio", cmd.Use)
	for _, name := range []string{"css", "theme", "png", "export", "saved", "catalog", "serve"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("init-config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("store-backend"))
}

func TestCSSCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "css", "--icon", "home", "--primary", "#ff0000", "--effect", "glow", "--store-backend", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, ".material-symbols-outlined.icon-home")
	assert.Contains(t, out, "color: #ff0000;")
}

func TestCSSCommandRejectsInvalidConfig(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "css", "--icon", "home", "--weight", "50", "--store-backend", "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight")
	assert.Equal(t, model.InvalidInput, model.ExitCodeFor(err))

	_, err = runCLI(t, "css", "--icon", "home", "--effect", "sparkle", "--store-backend", "memory")
	require.Error(t, err)
	assert.Equal(t, model.InvalidInput, model.ExitCodeFor(err))
}

func TestInvalidConfigFlag(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "css", "--icon", "home", "--store-backend", "redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store_backend")
}

func TestThemeCommandWritesFile(t *testing.T) {
	isolate(t)
	outDir := t.TempDir()

	_, err := runCLI(t, "theme", "--library", "fa", "--icon", "star", "--out", outDir, "--store-backend", "memory")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(outDir, "icon-studio-theme-fontawesome-solid-star-*.css"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestExportCommand(t *testing.T) {
	isolate(t)
	input := writeFile(t, t.TempDir(), "working.yaml", exportList)

	out, err := runCLI(t, "export", "--input", input, "--store-backend", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "home")
	assert.Contains(t, out, "star")
	assert.Equal(t, 1, strings.Count(out, "@keyframes pulse"))

	_, err = runCLI(t, "export", "--input", writeFile(t, t.TempDir(), "empty.yaml", "[]\n"), "--store-backend", "memory")
	require.Error(t, err)
	assert.Equal(t, model.NotFound, model.ExitCodeFor(err))
}

func TestImportConfigsSkipsDeclinedDuplicates(t *testing.T) {
	dataDir := isolate(t)
	dir := t.TempDir()
	first := writeFile(t, dir, "first.yaml", exportList)
	second := writeFile(t, dir, "second.yaml", exportList)

	cfg := config.DefaultConfig()
	cfg.StoreBackend = "memory"
	cfg.DataDir = dataDir
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a, err := newApp(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	s := a.studio.NewSession("", core.NewRecorder(0), core.NeverConfirm)
	added, skipped, err := importConfigs(s, []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, 2, s.Working().Len())

	// the first entry becomes the theme base
	base, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, "home", base.Icon)
}

func TestSavedCommands(t *testing.T) {
	dataDir := isolate(t)
	store := []string{"--data-dir", dataDir}

	out, err := runCLI(t, append([]string{"saved", "save", "--icon", "star", "--name", "fav"}, store...)...)
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = runCLI(t, append([]string{"saved", "list"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "fav")
	assert.Contains(t, out, id)

	out, err = runCLI(t, append([]string{"saved", "load", id, "--format", "yaml"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "icon: star")

	out, err = runCLI(t, append([]string{"saved", "load", id}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, ".material-symbols-outlined.icon-star")

	_, err = runCLI(t, append([]string{"saved", "delete", id, "--yes"}, store...)...)
	require.NoError(t, err)

	out, err = runCLI(t, append([]string{"saved", "list"}, store...)...)
	require.NoError(t, err)
	assert.NotContains(t, out, "fav")

	_, err = runCLI(t, append([]string{"saved", "delete", id, "--yes"}, store...)...)
	require.Error(t, err)
	assert.Equal(t, model.NotFound, model.ExitCodeFor(err))
}

func TestSavedAutoSave(t *testing.T) {
	dataDir := isolate(t)

	out, err := runCLI(t, "saved", "autosave", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Equal(t, "off\n", out)

	out, err = runCLI(t, "saved", "autosave", "on", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Equal(t, "on\n", out)

	// the stored preference wins over the auto_save default
	out, err = runCLI(t, "saved", "autosave", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Equal(t, "on\n", out)

	_, err = runCLI(t, "saved", "autosave", "maybe", "--data-dir", dataDir)
	assert.Equal(t, model.InvalidInput, model.ExitCodeFor(err))
}

func TestCatalogList(t *testing.T) {
	isolate(t)
	flags := append(catalogFlags(t), "--store-backend", "memory")

	out, err := runCLI(t, append([]string{"catalog", "list"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "home\nhouse\nstar\n", out)

	out, err = runCLI(t, append([]string{"catalog", "list", "--library", "fa", "--family", "brands"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "github\n", out)

	out, err = runCLI(t, append([]string{"catalog", "list", "--near", "hom"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "home")
	assert.NotContains(t, out, "star")

	_, err = runCLI(t, append([]string{"catalog", "list", "--family", "solid"}, flags...)...)
	assert.Equal(t, model.InvalidInput, model.ExitCodeFor(err))
}

func TestCatalogListMissingSource(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "catalog", "list", "--material-catalog", filepath.Join(t.TempDir(), "missing.json"), "--store-backend", "memory")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCatalogFetch)
}

func TestPNGCommand(t *testing.T) {
	isolate(t)
	fontDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(fontDir, "MaterialSymbolsOutlined.ttf"), goregular.TTF, 0o644))
	outDir := t.TempDir()

	args := append([]string{"png", "--icon", "home", "--png-size", "32", "--out", outDir,
		"--font-dir", fontDir, "--store-backend", "memory"}, catalogFlags(t)...)
	_, err := runCLI(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "icon-studio-home-32x32.png"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestInitConfigFlag(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")

	out, err := runCLI(t, "--init-config")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file created successfully")
	assert.FileExists(t, filepath.Join(home, ".config", "iconstudio", "config.yaml"))
}
