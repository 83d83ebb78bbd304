package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

const (
	shadowOffset = 2
	shadowRadius = 2.0
	glowRadius   = 10.0
	glowMargin   = 20
)

// GlyphSource resolves the face and the text that draw a configuration's icon.
type GlyphSource interface {
	Glyph(c model.IconConfig, px float64) (font.Face, string, error)
}

// Headroom is the transparent margin kept on each side of the working canvas
// so blurred effects are not clipped.
func Headroom(effects model.Effects) int {
	if effects.Has(model.EffectGlow) {
		return 2 * glowMargin
	}
	return glowMargin
}

// OutputSize is the edge length of the exported image. Glow widens it so the
// halo survives the crop.
func OutputSize(size int, effects model.Effects) int {
	if effects.Has(model.EffectGlow) {
		return size + 2*glowMargin
	}
	return size
}

// Rasterize draws c as a square image. The working canvas is size plus
// Headroom on each side; the result is the centred OutputSize crop of it.
func Rasterize(c model.IconConfig, amb Ambient, size int, src GlyphSource) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid export size %d", size)
	}
	c = c.Normalized()

	face, text, err := src.Glyph(c, float64(size))
	if err != nil {
		return nil, errors.Wrap(err, "resolve glyph")
	}
	primary, err := model.NRGBA(c.PrimaryColor, 1)
	if err != nil {
		return nil, errors.Wrap(err, "primary colour")
	}
	secondary, err := model.NRGBA(c.SecondaryColor, c.Opacity)
	if err != nil {
		return nil, errors.Wrap(err, "secondary colour")
	}

	canvasSize := size + 2*Headroom(c.Effects)
	bounds := image.Rect(0, 0, canvasSize, canvasSize)
	canvas := image.NewRGBA(bounds)
	center := float64(canvasSize) / 2

	primaryMask := glyphMask(face, text, bounds, center, center)
	if amb.Rotation != 0 {
		primaryMask = rotateMask(primaryMask, amb.Rotation, center, center)
	}

	if c.Effects.Has(model.EffectGradient) {
		fill, err := newLinearGradient(bounds, Direction(c.GradientAngle), c.PrimaryColor, c.SecondaryColor)
		if err != nil {
			return nil, err
		}
		paintEffects(canvas, primaryMask, c.Effects, primary)
		paint(canvas, primaryMask, fill)
	} else {
		shifted := center + c.Offset
		secondaryMask := glyphMask(face, text, bounds, shifted, shifted)
		if amb.Rotation != 0 {
			secondaryMask = rotateMask(secondaryMask, amb.Rotation, shifted, shifted)
		}
		paint(canvas, secondaryMask, image.NewUniform(secondary))
		paintEffects(canvas, primaryMask, c.Effects, primary)
		paint(canvas, primaryMask, image.NewUniform(primary))
	}

	out := OutputSize(size, c.Effects)
	origin := (canvasSize - out) / 2
	result := image.NewNRGBA(image.Rect(0, 0, out, out))
	draw.Draw(result, result.Bounds(), canvas, image.Pt(origin, origin), draw.Src)
	return result, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "encode png")
}

// glyphMask draws text so its ink bounds are centred on (cx, cy).
func glyphMask(face font.Face, text string, b image.Rectangle, cx, cy float64) *image.Alpha {
	mask := image.NewAlpha(b)
	ink, _ := font.BoundString(face, text)
	w := ink.Max.X - ink.Min.X
	h := ink.Max.Y - ink.Min.Y
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(cx*64) - ink.Min.X - w/2,
			Y: fixed.Int26_6(cy*64) - ink.Min.Y - h/2,
		},
	}
	d.DrawString(text)
	return mask
}

// rotateMask rotates clockwise by deg degrees around (cx, cy).
func rotateMask(src *image.Alpha, deg int, cx, cy float64) *image.Alpha {
	dst := image.NewAlpha(src.Bounds())
	sin, cos := math.Sincos(float64(deg) * math.Pi / 180)
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
	draw.BiLinear.Transform(dst, m, src, src.Bounds(), draw.Src, nil)
	return dst
}

func paint(dst *image.RGBA, mask *image.Alpha, src image.Image) {
	b := dst.Bounds()
	draw.DrawMask(dst, b, src, b.Min, mask, b.Min, draw.Over)
}

func tint(mask *image.Alpha, c color.Color) *image.NRGBA {
	b := mask.Bounds()
	layer := image.NewNRGBA(b)
	draw.DrawMask(layer, b, image.NewUniform(c), image.Point{}, mask, b.Min, draw.Over)
	return layer
}

// paintEffects draws the shadow or glow that sits under the primary copy.
// Glow replaces the shadow when both are on.
func paintEffects(dst *image.RGBA, mask *image.Alpha, effects model.Effects, glow color.NRGBA) {
	b := dst.Bounds()
	switch {
	case effects.Has(model.EffectGlow):
		glow.A = 255
		halo := blur.Gaussian(tint(mask, glow), glowRadius)
		draw.Draw(dst, b, halo, b.Min, draw.Over)
	case effects.Has(model.EffectShadow):
		shadow := blur.Gaussian(tint(mask, color.NRGBA{A: 77}), shadowRadius)
		draw.Draw(dst, b.Add(image.Pt(shadowOffset, shadowOffset)), shadow, b.Min, draw.Over)
	}
}

// linearGradient is an image that blends two colours along a canvas diagonal.
type linearGradient struct {
	bounds         image.Rectangle
	x0, y0, dx, dy float64
	length2        float64
	from, to       colorful.Color
	a0, a1         float64
}

func newLinearGradient(b image.Rectangle, dir GradientDirection, from, to string) (*linearGradient, error) {
	c0, a0, err := model.ParseColor(from)
	if err != nil {
		return nil, errors.Wrap(err, "gradient start")
	}
	c1, a1, err := model.ParseColor(to)
	if err != nil {
		return nil, errors.Wrap(err, "gradient end")
	}
	w, h := float64(b.Dx()), float64(b.Dy())
	g := &linearGradient{
		bounds: b,
		x0:     float64(b.Min.X) + dir.Start[0]*w,
		y0:     float64(b.Min.Y) + dir.Start[1]*h,
		from:   c0,
		to:     c1,
		a0:     a0,
		a1:     a1,
	}
	g.dx = float64(b.Min.X) + dir.End[0]*w - g.x0
	g.dy = float64(b.Min.Y) + dir.End[1]*h - g.y0
	g.length2 = g.dx*g.dx + g.dy*g.dy
	return g, nil
}

func (g *linearGradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *linearGradient) Bounds() image.Rectangle { return g.bounds }

func (g *linearGradient) At(x, y int) color.Color {
	t := 0.0
	if g.length2 > 0 {
		t = ((float64(x)+0.5-g.x0)*g.dx + (float64(y)+0.5-g.y0)*g.dy) / g.length2
	}
	t = math.Max(0, math.Min(1, t))
	r, gr, b := g.from.BlendRgb(g.to, t).Clamped().RGB255()
	a := g.a0 + (g.a1-g.a0)*t
	return color.NRGBA{R: r, G: gr, B: b, A: uint8(a*255 + 0.5)}
}
