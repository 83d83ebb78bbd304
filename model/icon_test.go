package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() IconConfig {
	return IconConfig{
		Library:        LibraryMaterial,
		Family:         FamilyOutlined,
		Icon:           "home",
		PrimaryColor:   "#112233",
		SecondaryColor: "#445566",
		Weight:         400,
		Fill:           0,
		Grade:          0,
		Size:           24,
		Offset:         4,
		Opacity:        0.6,
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, sampleConfig().Validate())
	assert.True(t, IsValid(sampleConfig()))
}

func TestValidateReportsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*IconConfig)
		field  string
	}{
		{"library", func(c *IconConfig) { c.Library = "" }, "library"},
		{"family", func(c *IconConfig) { c.Family = "" }, "family"},
		{"icon", func(c *IconConfig) { c.Icon = "" }, "icon"},
		{"primary", func(c *IconConfig) { c.PrimaryColor = " " }, "primaryColor"},
		{"secondary", func(c *IconConfig) { c.SecondaryColor = "" }, "secondaryColor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
			assert.True(t, IsKind(err, ErrInvalidConfig))
			assert.False(t, IsValid(cfg))
		})
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*IconConfig)
		field  string
	}{
		{"family from other library", func(c *IconConfig) { c.Family = FamilySolid }, "family"},
		{"unknown library", func(c *IconConfig) { c.Library = "emoji" }, "library"},
		{"bad colour", func(c *IconConfig) { c.PrimaryColor = "blue" }, "primaryColor"},
		{"weight", func(c *IconConfig) { c.Weight = 0 }, "weight"},
		{"size", func(c *IconConfig) { c.Size = 0 }, "size"},
		{"fill", func(c *IconConfig) { c.Fill = 2 }, "fill"},
		{"opacity", func(c *IconConfig) { c.Opacity = 1.5 }, "opacity"},
		{"gradient", func(c *IconConfig) { c.GradientAngle = "up" }, "gradientAngle"},
		{"animation", func(c *IconConfig) { c.Animation = "moonwalk" }, "animation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			tt.mutate(&cfg)
			var fieldErr *FieldError
			require.ErrorAs(t, cfg.Validate(), &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestValidateAcceptsFontAwesome(t *testing.T) {
	cfg := sampleConfig()
	cfg.Library = LibraryFontAwesome
	cfg.Family = FamilyBrands
	cfg.Icon = "github"
	cfg.PrimaryColor = "#abc"
	cfg.SecondaryColor = "#445566cc"
	assert.NoError(t, cfg.Validate())
}

func TestParseIconConfigDetectsAbsentNumericFields(t *testing.T) {
	full, err := json.Marshal(sampleConfig())
	require.NoError(t, err)

	parsed, err := ParseIconConfig(full)
	require.NoError(t, err)
	assert.Equal(t, sampleConfig(), parsed)

	for _, field := range RequiredFields {
		t.Run(field, func(t *testing.T) {
			var raw map[string]interface{}
			require.NoError(t, json.Unmarshal(full, &raw))
			delete(raw, field)
			data, err := json.Marshal(raw)
			require.NoError(t, err)

			_, err = ParseIconConfig(data)
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, field, missing.Field)
		})
	}
}

func TestParseIconConfigZeroIsPresent(t *testing.T) {
	data := []byte(`{"library":"material","family":"sharp","icon":"star","primaryColor":"#000000",
		"secondaryColor":"#ffffff","weight":100,"fill":0,"grade":0,"size":20,"offset":0,"opacity":0}`)
	cfg, err := ParseIconConfig(data)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Opacity)
}

func TestParseIconConfigMalformed(t *testing.T) {
	_, err := ParseIconConfig([]byte("{not json"))
	assert.True(t, IsKind(err, ErrInvalidConfig))
}

func TestDailyIdentifier(t *testing.T) {
	day := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "material-outlined-home-2024-03-09", DailyIdentifier(sampleConfig(), day))

	other := sampleConfig()
	other.PrimaryColor = "#ffffff"
	assert.Equal(t, DailyIdentifier(sampleConfig(), day), DailyIdentifier(other, day))
	assert.NotEqual(t, DailyIdentifier(sampleConfig(), day), DailyIdentifier(sampleConfig(), day.Add(time.Hour)))
}

func TestContentIdentifier(t *testing.T) {
	a := sampleConfig()
	b := sampleConfig()
	b.Timestamp = 12345
	assert.Equal(t, ContentIdentifier(a), ContentIdentifier(b), "timestamp must not affect the key")

	b.PrimaryColor = "#000000"
	assert.NotEqual(t, ContentIdentifier(a), ContentIdentifier(b))
	assert.Contains(t, ContentIdentifier(a), "material-outlined-home-")
}

func TestNewIdentifierFunc(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }
	fn, err := NewIdentifierFunc(IdentifierDaily, clock)
	require.NoError(t, err)
	assert.Equal(t, "material-outlined-home-2025-01-02", fn(sampleConfig()))

	_, err = NewIdentifierFunc("weekly", clock)
	assert.Error(t, err)
}

func TestEffectsSet(t *testing.T) {
	es := NewEffects(EffectGlow, EffectShadow, EffectGlow)
	assert.Equal(t, Effects{EffectShadow, EffectGlow}, es)
	assert.True(t, es.Toggle(EffectBlend).Has(EffectBlend))
	assert.False(t, es.Toggle(EffectGlow).Has(EffectGlow))

	var decoded Effects
	require.NoError(t, json.Unmarshal([]byte(`["gradient","shadow"]`), &decoded))
	assert.Equal(t, Effects{EffectShadow, EffectGradient}, decoded)
	assert.Error(t, json.Unmarshal([]byte(`["sparkle"]`), &decoded))
}

func TestParseHelpers(t *testing.T) {
	lib, err := ParseLibrary("fa")
	require.NoError(t, err)
	assert.Equal(t, LibraryFontAwesome, lib)
	assert.Equal(t, FamilySolid, lib.DefaultFamily())

	anim, err := ParseAnimation("")
	require.NoError(t, err)
	assert.Equal(t, AnimationNone, anim)
	assert.False(t, anim.Active())

	mode, err := ParseBlendMode("Multiply")
	require.NoError(t, err)
	assert.Equal(t, BlendMode("multiply"), mode)

	assert.Equal(t, GradientTopRight, GradientAngle("").OrDefault())
	assert.Equal(t, "fab", FontAwesomePrefix(FamilyBrands))
	assert.Equal(t, "Material Symbols Rounded", LibraryMaterial.DisplayName(FamilyRounded))
}

func TestParseColorAlpha(t *testing.T) {
	c, err := NRGBA("#ff000080", 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.A)

	c, err = NRGBA("#00ff00", 0.5)
	require.NoError(t, err)
	assert.Equal(t, uint8(128), c.A)
}
