package iconfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ronmurphy/iconstudio/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entry = `
  library: material
  family: rounded
  icon: home
  weight: 500
  fill: 1
  grade: 0
  size: 32
  offset: 2
  opacity: 0.5
`

func TestParseNormalizesKeyStyles(t *testing.T) {
	data := "-" + entry + `  primary_color: "#112233"
  Secondary-Color: "#445566"
  gradient_angle: bottom-left
  effects: [glow, shadow]
`
	configs, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, configs, 1)

	cfg := configs[0]
	assert.Equal(t, "home", cfg.Icon)
	assert.Equal(t, model.FamilyRounded, cfg.Family)
	assert.Equal(t, "#112233", cfg.PrimaryColor)
	assert.Equal(t, "#445566", cfg.SecondaryColor)
	assert.Equal(t, 500, cfg.Weight)
	assert.Equal(t, model.GradientBottomLeft, cfg.GradientAngle)
	assert.True(t, cfg.Effects.Has(model.EffectGlow))
}

func TestParseAcceptsJSON(t *testing.T) {
	data := `[{"library": "fontawesome", "family": "solid", "icon": "star", "primaryColor": "#ff0000", "secondaryColor": "#00ff00", "weight": 400, "fill": 0, "grade": 0, "size": 24, "offset": 2, "opacity": 0.5}]`
	configs, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, model.LibraryFontAwesome, configs[0].Library)
}

func TestParseRejects(t *testing.T) {
	testCases := []struct {
		name    string
		data    string
		message string
	}{
		{"not a list", "icon: home\n", "not a list"},
		{"missing field", "-" + entry + "  primaryColor: \"#000\"\n", "secondaryColor"},
		{"unknown key", "-" + entry + "  primaryColor: \"#000\"\n  secondaryColor: \"#111\"\n  menu_id: x\n", "menu_id"},
		{"duplicate key", "-" + entry + "  primaryColor: \"#000\"\n  primary_color: \"#111\"\n  secondaryColor: \"#111\"\n", "duplicate keys"},
		{"invalid value", "-" + entry + "  primaryColor: \"#000\"\n  secondaryColor: \"not-a-colour\"\n", "secondaryColor"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icons.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0o644))

	configs, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, configs)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
