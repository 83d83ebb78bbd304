package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/ronmurphy/iconstudio/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type testGlyphs struct {
	t *testing.T
}

func (g testGlyphs) Glyph(_ model.IconConfig, px float64) (font.Face, string, error) {
	f, err := opentype.Parse(goregular.TTF)
	require.NoError(g.t, err)
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingNone})
	require.NoError(g.t, err)
	return face, "H", nil
}

func opaquePixels(img *image.NRGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestHeadroomAndOutputSize(t *testing.T) {
	plain := model.NewEffects()
	glow := model.NewEffects(model.EffectGlow)

	assert.Equal(t, 20, Headroom(plain))
	assert.Equal(t, 40, Headroom(glow))
	assert.Equal(t, 48, OutputSize(48, plain))
	assert.Equal(t, 88, OutputSize(48, glow))
}

func TestRasterizeDimensions(t *testing.T) {
	cfg := homeConfig()

	img, err := Rasterize(cfg, DefaultAmbient(), 48, testGlyphs{t})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 48), img.Bounds())
	assert.Positive(t, opaquePixels(img))

	cfg.Effects = model.NewEffects(model.EffectGlow)
	img, err = Rasterize(cfg, DefaultAmbient(), 48, testGlyphs{t})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 88, 88), img.Bounds())
}

func TestRasterizeGlowAddsHalo(t *testing.T) {
	cfg := homeConfig()
	cfg.Opacity = 0
	plain, err := Rasterize(cfg, DefaultAmbient(), 96, testGlyphs{t})
	require.NoError(t, err)

	cfg.Effects = model.NewEffects(model.EffectGlow)
	glowing, err := Rasterize(cfg, DefaultAmbient(), 96, testGlyphs{t})
	require.NoError(t, err)
	assert.Greater(t, opaquePixels(glowing), opaquePixels(plain))
}

func TestRasterizeGlowReplacesShadow(t *testing.T) {
	cfg := homeConfig()
	cfg.Effects = model.NewEffects(model.EffectGlow)
	glowing, err := Rasterize(cfg, DefaultAmbient(), 64, testGlyphs{t})
	require.NoError(t, err)

	cfg.Effects = model.NewEffects(model.EffectShadow, model.EffectGlow)
	both, err := Rasterize(cfg, DefaultAmbient(), 64, testGlyphs{t})
	require.NoError(t, err)
	assert.Equal(t, glowing.Pix, both.Pix)
}

func TestRasterizeGradientUsesBothColours(t *testing.T) {
	cfg := homeConfig()
	cfg.PrimaryColor = "#ff0000"
	cfg.SecondaryColor = "#0000ff"
	cfg.Effects = model.NewEffects(model.EffectGradient)

	img, err := Rasterize(cfg, Ambient{Rotation: 15}, 96, testGlyphs{t})
	require.NoError(t, err)

	var reddish, bluish bool
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] < 200 {
			continue
		}
		r, b := img.Pix[i], img.Pix[i+2]
		if r > b+40 {
			reddish = true
		}
		if b > r+40 {
			bluish = true
		}
	}
	assert.True(t, reddish)
	assert.True(t, bluish)
}

func TestRasterizeRejectsBadInput(t *testing.T) {
	_, err := Rasterize(homeConfig(), DefaultAmbient(), 0, testGlyphs{t})
	assert.Error(t, err)

	cfg := homeConfig()
	cfg.PrimaryColor = "nope"
	_, err = Rasterize(cfg, DefaultAmbient(), 32, testGlyphs{t})
	assert.Error(t, err)
}

func TestEncodePNG(t *testing.T) {
	img, err := Rasterize(homeConfig(), DefaultAmbient(), 32, testGlyphs{t})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
