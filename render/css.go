package render

import (
	"fmt"
	"strings"

	"github.com/ronmurphy/iconstudio/model"
)

const indent = "    "

type cssWriter struct {
	strings.Builder
}

func (w *cssWriter) comment(text string) {
	if w.Len() > 0 {
		w.WriteString("\n")
	}
	fmt.Fprintf(w, "/* %s */\n", text)
}

func (w *cssWriter) rule(selector string, decls ...string) {
	fmt.Fprintf(w, "%s {\n", selector)
	for _, d := range decls {
		w.WriteString(indent + d + "\n")
	}
	w.WriteString("}\n")
}

func (w *cssWriter) block(text string) {
	w.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		w.WriteString("\n")
	}
}

func px(v float64) string {
	return formatNumber(v) + "px"
}

// GenerateCSS produces a stylesheet that reproduces the preview of c.
func GenerateCSS(c model.IconConfig, amb Ambient) string {
	c = c.Normalized()
	if c.Library == model.LibraryFontAwesome {
		return fontAwesomeCSS(c, amb)
	}
	return materialCSS(c, amb)
}

// MaterialSelector is the class selector of a Material configuration.
func MaterialSelector(c model.IconConfig) string {
	return fmt.Sprintf(".material-symbols-%s.icon-%s", c.Family, c.CSSName())
}

// FontAwesomeSelector is the class selector of a Font Awesome configuration.
func FontAwesomeSelector(c model.IconConfig) string {
	return fmt.Sprintf(".fa-%s.fa-%s", c.Family, c.CSSName())
}

func materialCSS(c model.IconConfig, amb Ambient) string {
	var w cssWriter
	sel := MaterialSelector(c)
	fvs := "font-variation-settings: " + FontVariationSettings(c) + ";"

	w.comment("Material Symbols Icon Styles")
	w.rule(sel,
		fvs,
		"color: "+c.PrimaryColor+";",
		"position: relative;",
		"display: inline-block;",
	)

	if !c.Effects.Has(model.EffectGradient) {
		w.comment("Two-tone effect")
		w.rule(sel+"::after",
			fmt.Sprintf("content: %q;", c.Icon),
			"position: absolute;",
			"left: "+px(c.Offset)+";",
			"top: "+px(c.Offset)+";",
			"color: "+c.SecondaryColor+";",
			"opacity: "+formatNumber(c.Opacity)+";",
			"z-index: -1;",
			fvs,
		)
	}

	writeEffects(&w, sel, c, amb)
	writeRotation(&w, sel, amb)
	writeAnimation(&w, sel, c.Animation)
	return w.String()
}

func fontAwesomeCSS(c model.IconConfig, amb Ambient) string {
	var w cssWriter
	sel := FontAwesomeSelector(c)

	w.comment("Font Awesome Icon Styles")
	w.rule(sel+"-wrapper", "position: relative;", "display: inline-block;")
	w.WriteString("\n")
	w.rule(sel, "color: "+c.PrimaryColor+";")

	w.comment("Two-tone effect")
	if c.Effects.Has(model.EffectGradient) {
		w.rule(sel+"-secondary", "display: none;")
	} else {
		w.rule(sel+"-secondary",
			"position: absolute;",
			"left: "+px(c.Offset)+";",
			"top: "+px(c.Offset)+";",
			"color: "+c.SecondaryColor+";",
			"opacity: "+formatNumber(c.Opacity)+";",
			"z-index: -1;",
		)
	}

	writeEffects(&w, sel, c, amb)
	writeRotation(&w, sel+"-wrapper", amb)
	writeAnimation(&w, sel+"-wrapper", c.Animation)
	return w.String()
}

// EffectDeclarations lists the declarations the active effects add to the primary copy.
func EffectDeclarations(c model.IconConfig, amb Ambient) []string {
	var decls []string
	if filter := EffectFilter(c); filter != "" {
		decls = append(decls, "filter: "+filter+";")
	}
	if c.Effects.Has(model.EffectGradient) {
		decls = append(decls,
			"background: "+LinearGradient(c.GradientAngle, c.PrimaryColor, c.SecondaryColor)+";",
			"-webkit-background-clip: text;",
			"-webkit-text-fill-color: transparent;",
		)
	}
	if amb.blends(c) {
		decls = append(decls, "mix-blend-mode: "+string(amb.BlendMode)+";")
	}
	return decls
}

func writeEffects(w *cssWriter, sel string, c model.IconConfig, amb Ambient) {
	decls := EffectDeclarations(c, amb)
	if len(decls) == 0 {
		return
	}
	w.comment("Applied effects")
	w.rule(sel, decls...)
}

func writeRotation(w *cssWriter, sel string, amb Ambient) {
	if amb.Rotation == 0 {
		return
	}
	w.comment("Rotation")
	w.rule(sel, fmt.Sprintf("transform: rotate(%ddeg);", amb.Rotation))
}

func writeAnimation(w *cssWriter, sel string, a model.Animation) {
	if !a.Active() {
		return
	}
	w.comment("Animation")
	w.rule(sel, AnimationDeclaration(a))
	w.WriteString("\n")
	w.block(Keyframes(a))
}
