package render

import (
	"strings"
	"testing"
	"time"

	"github.com/ronmurphy/iconstudio/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func homeConfig() model.IconConfig {
	return model.IconConfig{
		Library:        model.LibraryMaterial,
		Family:         model.FamilyOutlined,
		Icon:           "home",
		PrimaryColor:   "#112233",
		SecondaryColor: "#445566",
		Weight:         400,
		Size:           24,
		Offset:         4,
		Opacity:        0.6,
	}
}

func TestRenderTwoTone(t *testing.T) {
	p := Render(homeConfig(), DefaultAmbient())

	assert.Equal(t, "#112233", p.Primary.Style.Color)
	assert.Equal(t, "#445566", p.Secondary.Style.Color)
	assert.Equal(t, "translate(4px, 4px)", p.Secondary.Style.Transform)
	assert.Equal(t, 0.6, p.Secondary.Style.Opacity)
	assert.Equal(t, 1.0, p.Primary.Style.Opacity)
	assert.Empty(t, p.Primary.Style.Background)
	assert.Equal(t, "scale(1)", p.LayerTransform)

	assert.Contains(t, p.Primary.Classes, "material-symbols-outlined")
	assert.Equal(t, "home", p.Primary.Text)
	assert.Equal(t, "'FILL' 0, 'wght' 400, 'GRAD' 0, 'opsz' 24", p.Primary.Style.FontVariationSettings)
}

func TestRenderGradient(t *testing.T) {
	cfg := homeConfig()
	cfg.Effects = model.NewEffects(model.EffectGradient)
	cfg.GradientAngle = model.GradientTopLeft

	p := Render(cfg, Ambient{Rotation: 30, BlendMode: "multiply"})
	assert.Equal(t, "linear-gradient(135deg, #112233, #445566)", p.Primary.Style.Background)
	assert.Equal(t, "text", p.Primary.Style.BackgroundClip)
	assert.Equal(t, "transparent", p.Primary.Style.TextFillColor)
	assert.Equal(t, 0.0, p.Secondary.Style.Opacity)
	assert.Equal(t, "rotate(30deg)", p.Primary.Style.Transform)
	assert.Empty(t, p.Secondary.Style.Transform)
}

func TestRenderGradientDirections(t *testing.T) {
	tests := map[model.GradientAngle]int{
		model.GradientTopRight:    225,
		model.GradientTopLeft:     135,
		model.GradientBottomRight: 315,
		model.GradientBottomLeft:  45,
		"":                        225,
	}
	for angle, deg := range tests {
		assert.Equal(t, deg, Direction(angle).Angle, string(angle))
	}
}

func TestRenderRotation(t *testing.T) {
	p := Render(homeConfig(), Ambient{Rotation: -45})
	assert.Equal(t, "rotate(-45deg)", p.Primary.Style.Transform)
	assert.Equal(t, "translate(4px, 4px) rotate(-45deg)", p.Secondary.Style.Transform)
}

func TestRenderBlend(t *testing.T) {
	cfg := homeConfig()

	p := Render(cfg, Ambient{BlendMode: "multiply"})
	assert.Empty(t, p.Primary.Style.MixBlendMode, "blend needs the blend effect")

	cfg.Effects = model.NewEffects(model.EffectBlend)
	p = Render(cfg, Ambient{BlendMode: "multiply"})
	assert.Equal(t, "multiply", p.Primary.Style.MixBlendMode)
	assert.Equal(t, "multiply", p.Secondary.Style.MixBlendMode)

	p = Render(cfg, Ambient{BlendMode: model.BlendNormal})
	assert.Empty(t, p.Primary.Style.MixBlendMode)

	cfg.Effects = cfg.Effects.With(model.EffectGradient)
	p = Render(cfg, Ambient{BlendMode: "screen"})
	assert.Equal(t, "screen", p.Primary.Style.MixBlendMode)
	assert.Empty(t, p.Secondary.Style.MixBlendMode)
}

func TestRenderFilters(t *testing.T) {
	cfg := homeConfig()
	cfg.Effects = model.NewEffects(model.EffectShadow, model.EffectGlow)
	p := Render(cfg, DefaultAmbient())
	assert.Equal(t, "drop-shadow(0 0 5px #112233)", p.Primary.Style.Filter)
	assert.Empty(t, p.Secondary.Style.Filter)

	cfg.Effects = model.NewEffects(model.EffectShadow)
	p = Render(cfg, DefaultAmbient())
	assert.Equal(t, "drop-shadow(2px 2px 2px rgba(0,0,0,0.3))", p.Primary.Style.Filter)

	// the gradient fill takes the place of every filter in the preview
	cfg.Effects = model.NewEffects(model.EffectShadow, model.EffectGlow, model.EffectGradient)
	p = Render(cfg, DefaultAmbient())
	assert.Empty(t, p.Primary.Style.Filter)

	// generated CSS carries a single filter declaration, gradient or not
	css := GenerateCSS(cfg, DefaultAmbient())
	assert.Equal(t, 1, strings.Count(css, "filter:"))
	assert.Contains(t, css, "filter: drop-shadow(0 0 5px #112233);")
}

func TestRenderFontAwesomeAndAnimation(t *testing.T) {
	cfg := homeConfig()
	cfg.Library = model.LibraryFontAwesome
	cfg.Family = model.FamilySolid
	cfg.Icon = "house"
	cfg.Animation = "spin"

	p := Render(cfg, Ambient{Zoom: 150, DarkBackground: true})
	assert.Equal(t, []string{"fa-solid", "fa-house"}, p.Primary.Inner)
	assert.Empty(t, p.Primary.Text)
	assert.Empty(t, p.Primary.Style.FontVariationSettings)
	assert.Contains(t, p.Primary.Classes, "spin")
	assert.Contains(t, p.Secondary.Classes, "spin")
	assert.Equal(t, "scale(1.5)", p.LayerTransform)
	assert.Equal(t, "#1a1a1a", p.Background)

	out := p.HTML()
	assert.Contains(t, out, `<i class="fa-solid fa-house"></i>`)
	assert.True(t, strings.Index(out, "secondary") < strings.Index(out, "primary"))
}

func TestGenerateMaterialCSS(t *testing.T) {
	css := GenerateCSS(homeConfig(), DefaultAmbient())

	assert.Contains(t, css, ".material-symbols-outlined.icon-home {")
	assert.Contains(t, css, "color: #112233;")
	assert.Contains(t, css, ".material-symbols-outlined.icon-home::after {")
	assert.Contains(t, css, "left: 4px;")
	assert.Contains(t, css, "top: 4px;")
	assert.Contains(t, css, "color: #445566;")
	assert.Contains(t, css, "opacity: 0.6;")
	assert.Contains(t, css, "font-variation-settings: 'FILL' 0, 'wght' 400, 'GRAD' 0, 'opsz' 24;")
	assert.NotContains(t, css, "Applied effects")
	assert.NotContains(t, css, "@keyframes")
}

func TestGenerateCSSUnderscoreNames(t *testing.T) {
	cfg := homeConfig()
	cfg.Icon = "picture_as_pdf"
	css := GenerateCSS(cfg, DefaultAmbient())
	assert.Contains(t, css, ".icon-picture-as-pdf {")
	assert.Contains(t, css, `content: "picture_as_pdf";`)
}

func TestGenerateCSSGradientSuppressesSecondary(t *testing.T) {
	cfg := homeConfig()
	cfg.Effects = model.NewEffects(model.EffectGradient)
	cfg.GradientAngle = model.GradientTopLeft

	css := GenerateCSS(cfg, DefaultAmbient())
	assert.Contains(t, css, "background: linear-gradient(135deg, #112233, #445566);")
	assert.Contains(t, css, "-webkit-text-fill-color: transparent;")
	assert.NotContains(t, css, "::after")
}

func TestGenerateCSSEffectsRotationAnimation(t *testing.T) {
	cfg := homeConfig()
	cfg.Effects = model.NewEffects(model.EffectShadow, model.EffectBlend)
	cfg.Animation = "pulse"

	css := GenerateCSS(cfg, Ambient{Rotation: 90, BlendMode: "overlay"})
	assert.Contains(t, css, "/* Applied effects */")
	assert.Contains(t, css, "filter: drop-shadow(2px 2px 2px rgba(0,0,0,0.3));")
	assert.Contains(t, css, "mix-blend-mode: overlay;")
	assert.Contains(t, css, "transform: rotate(90deg);")
	assert.Contains(t, css, "animation: pulse 1s infinite;")
	assert.Equal(t, 1, strings.Count(css, "@keyframes pulse"))
}

func TestGenerateFontAwesomeCSS(t *testing.T) {
	cfg := homeConfig()
	cfg.Library = model.LibraryFontAwesome
	cfg.Family = model.FamilyRegular
	cfg.Icon = "star"
	cfg.Animation = "bounce"

	css := GenerateCSS(cfg, DefaultAmbient())
	assert.Contains(t, css, ".fa-regular.fa-star-wrapper {")
	assert.Contains(t, css, ".fa-regular.fa-star {\n    color: #112233;\n}")
	assert.Contains(t, css, ".fa-regular.fa-star-secondary {")
	assert.Contains(t, css, "opacity: 0.6;")
	assert.Contains(t, css, "@keyframes bounce")

	cfg.Effects = model.NewEffects(model.EffectGradient)
	css = GenerateCSS(cfg, DefaultAmbient())
	assert.Contains(t, css, ".fa-regular.fa-star-secondary {\n    display: none;\n}")
}

func TestKeyframesTable(t *testing.T) {
	for _, a := range model.Animations() {
		assert.True(t, strings.HasPrefix(Keyframes(a), "@keyframes "+string(a)+" {"), string(a))
	}
	assert.Empty(t, Keyframes(model.AnimationNone))
}

func TestThemeCSS(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cfg := homeConfig()
	cfg.Animation = "spin"

	css := ThemeCSS(cfg, now)
	assert.Contains(t, css, "/* Generated: 2024-05-01 10:00:00 */")
	assert.Contains(t, css, ".material-symbols-outlined.two-tone::after {")
	assert.Contains(t, css, ".icon-shadow {")
	assert.Contains(t, css, ".material-symbols-outlined {\n    animation: spin 1s infinite;\n}")
	assert.Equal(t, 1, strings.Count(css, "@keyframes"))

	cfg.Library = model.LibraryFontAwesome
	cfg.Family = model.FamilySolid
	css = ThemeCSS(cfg, now)
	assert.Contains(t, css, ".fa-solid.two-tone-secondary {")
}

func TestExportTheme(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	home := homeConfig()
	home.Animation = "spin"
	folder := homeConfig()
	folder.Icon = "folder"
	folder.Animation = "spin"
	star := homeConfig()
	star.Library = model.LibraryFontAwesome
	star.Family = model.FamilySolid
	star.Icon = "star"
	star.Animation = "pulse"
	plain := homeConfig()
	plain.Icon = "code"

	entries := []model.IconConfig{home, folder, star, plain}
	css := ExportTheme(homeConfig(), entries, now, ExportOptions{
		Codepoints: func(c model.IconConfig) (rune, bool) { return 0xf005, c.Icon == "star" },
	})

	for _, icon := range []string{"home", "folder", "star", "code"} {
		assert.Equal(t, 1, strings.Count(css, ".icon-"+icon+" {"), icon)
	}
	assert.Equal(t, 2, strings.Count(css, "@keyframes"))
	assert.Equal(t, 1, strings.Count(css, "@keyframes spin"))
	assert.Contains(t, css, ".icon-theme-base {")
	assert.Contains(t, css, "--icon-primary: #112233;")
	assert.Contains(t, css, `font-family: "Font Awesome 6 Solid";`)
	assert.Contains(t, css, `content: "\f005";`)
	assert.Contains(t, css, "Theme Usage Guide")
	assert.NotContains(t, css, ".file-type-")

	css = ExportTheme(homeConfig(), entries, now, ExportOptions{FileTypeAliases: true})
	assert.Contains(t, css, ".file-type-folder {\n    @extend .icon-folder;\n}")
	assert.Contains(t, css, ".file-type-programming {")
	assert.Contains(t, css, `content: "star";`)
}

func TestExportThemeEmpty(t *testing.T) {
	css := ExportTheme(homeConfig(), nil, time.Now(), ExportOptions{})
	assert.Contains(t, css, ".icon-theme-base")
	assert.NotContains(t, css, "@keyframes")
}

func TestFileTypes(t *testing.T) {
	assert.Equal(t, []string{"pdf"}, FileTypes("picture_as_pdf"))
	assert.Nil(t, FileTypes("rocket"))
	require.Len(t, FileTypes("Folder"), 2)
}
