package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/ronmurphy/iconstudio/constant"
	"github.com/ronmurphy/iconstudio/model"
)

const (
	shadowFilter  = "drop-shadow(2px 2px 2px rgba(0,0,0,0.3))"
	darkBackdrop  = "#1a1a1a"
	lightBackdrop = "#ffffff"
)

// Ambient is editing state that shapes output without being part of a configuration.
type Ambient struct {
	Zoom           int             `json:"zoom"`
	BlendMode      model.BlendMode `json:"blendMode"`
	Rotation       int             `json:"rotation"`
	DarkBackground bool            `json:"darkBackground"`
}

// DefaultAmbient is the state of a fresh editing session.
func DefaultAmbient() Ambient {
	return Ambient{Zoom: constant.DefaultZoom, BlendMode: model.BlendNormal}
}

func (a Ambient) blends(c model.IconConfig) bool {
	return c.Effects.Has(model.EffectBlend) && a.BlendMode != "" && a.BlendMode != model.BlendNormal
}

// Style is the inline style of one preview copy. Empty fields are omitted.
type Style struct {
	FontVariationSettings string  `json:"fontVariationSettings,omitempty"`
	Color                 string  `json:"color,omitempty"`
	Background            string  `json:"background,omitempty"`
	BackgroundClip        string  `json:"backgroundClip,omitempty"`
	TextFillColor         string  `json:"textFillColor,omitempty"`
	Transform             string  `json:"transform,omitempty"`
	Filter                string  `json:"filter,omitempty"`
	MixBlendMode          string  `json:"mixBlendMode,omitempty"`
	Opacity               float64 `json:"opacity"`
}

// Declarations lists the style as CSS declarations in a stable order.
func (s Style) Declarations() []string {
	var out []string
	add := func(prop, value string) {
		if value != "" {
			out = append(out, prop+": "+value+";")
		}
	}
	add("font-variation-settings", s.FontVariationSettings)
	add("color", s.Color)
	add("background", s.Background)
	add("-webkit-background-clip", s.BackgroundClip)
	add("-webkit-text-fill-color", s.TextFillColor)
	add("transform", s.Transform)
	add("filter", s.Filter)
	add("mix-blend-mode", s.MixBlendMode)
	add("opacity", formatNumber(s.Opacity))
	return out
}

func (s Style) String() string {
	return strings.Join(s.Declarations(), " ")
}

// Glyph is one rendered copy of the icon.
type Glyph struct {
	Classes []string `json:"classes"`
	// Text is the ligature text for Material glyphs.
	Text string `json:"text,omitempty"`
	// Inner holds the classes of the nested <i> element for Font Awesome glyphs.
	Inner []string `json:"inner,omitempty"`
	Style Style    `json:"style"`
}

// HTML renders the glyph as a span.
func (g Glyph) HTML() string {
	body := html.EscapeString(g.Text)
	if len(g.Inner) > 0 {
		body = fmt.Sprintf(`<i class="%s"></i>`, html.EscapeString(strings.Join(g.Inner, " ")))
	}
	return fmt.Sprintf(`<span class="%s" style="%s">%s</span>`,
		html.EscapeString(strings.Join(g.Classes, " ")), html.EscapeString(g.Style.String()), body)
}

// Preview is the two-layer visual state of a configuration.
type Preview struct {
	Primary        Glyph           `json:"primary"`
	Secondary      Glyph           `json:"secondary"`
	LayerTransform string          `json:"layerTransform"`
	Background     string          `json:"background"`
	Animation      model.Animation `json:"animation"`
}

// HTML renders the preview layers, secondary first so the primary sits on top.
func (p Preview) HTML() string {
	return fmt.Sprintf(`<div class="preview-layers" style="transform: %s; background: %s;">%s%s</div>`,
		p.LayerTransform, p.Background, p.Secondary.HTML(), p.Primary.HTML())
}

// FontVariationSettings formats the Material variable font axes.
func FontVariationSettings(c model.IconConfig) string {
	return fmt.Sprintf("'FILL' %d, 'wght' %d, 'GRAD' %d, 'opsz' %d", c.Fill, c.Weight, c.Grade, c.Size)
}

// EffectFilter is the drop-shadow filter of the primary copy. Glow replaces
// the shadow when both are on.
func EffectFilter(c model.IconConfig) string {
	switch {
	case c.Effects.Has(model.EffectGlow):
		return fmt.Sprintf("drop-shadow(0 0 5px %s)", c.PrimaryColor)
	case c.Effects.Has(model.EffectShadow):
		return shadowFilter
	}
	return ""
}

// Render computes the preview of a configuration under the given ambient state.
func Render(c model.IconConfig, amb Ambient) Preview {
	c = c.Normalized()
	gradient := c.Effects.Has(model.EffectGradient)
	offset := formatNumber(c.Offset)
	translate := fmt.Sprintf("translate(%spx, %spx)", offset, offset)

	primary := baseGlyph(c, "primary")
	secondary := baseGlyph(c, "secondary")
	primary.Style.Opacity = 1

	if gradient {
		primary.Style.Background = LinearGradient(c.GradientAngle, c.PrimaryColor, c.SecondaryColor)
		primary.Style.BackgroundClip = "text"
		primary.Style.TextFillColor = "transparent"
		secondary.Style.Color = c.SecondaryColor
		secondary.Style.Opacity = 0
	} else {
		primary.Style.Color = c.PrimaryColor
		secondary.Style.Color = c.SecondaryColor
		secondary.Style.Transform = translate
		secondary.Style.Opacity = c.Opacity
		primary.Style.Filter = EffectFilter(c)
	}

	if amb.Rotation != 0 {
		rotate := fmt.Sprintf("rotate(%ddeg)", amb.Rotation)
		primary.Style.Transform = rotate
		if !gradient {
			secondary.Style.Transform = translate + " " + rotate
		}
	}

	if amb.blends(c) {
		primary.Style.MixBlendMode = string(amb.BlendMode)
		if !gradient {
			secondary.Style.MixBlendMode = string(amb.BlendMode)
		}
	}

	if c.Animation.Active() {
		primary.Classes = append(primary.Classes, string(c.Animation))
		secondary.Classes = append(secondary.Classes, string(c.Animation))
	}

	zoom := amb.Zoom
	if zoom == 0 {
		zoom = constant.DefaultZoom
	}
	background := lightBackdrop
	if amb.DarkBackground {
		background = darkBackdrop
	}

	return Preview{
		Primary:        primary,
		Secondary:      secondary,
		LayerTransform: "scale(" + formatNumber(float64(zoom)/100) + ")",
		Background:     background,
		Animation:      c.Animation,
	}
}

func baseGlyph(c model.IconConfig, layer string) Glyph {
	g := Glyph{Classes: []string{"preview-icon", layer}}
	if c.Library == model.LibraryFontAwesome {
		g.Inner = []string{"fa-" + string(c.Family), "fa-" + c.Icon}
		return g
	}
	g.Classes = append([]string{"material-symbols-" + string(c.Family)}, g.Classes...)
	g.Text = c.Icon
	g.Style.FontVariationSettings = FontVariationSettings(c)
	return g
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
