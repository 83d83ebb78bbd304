package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ronmurphy/iconstudio/model"
)

const generatedLayout = "2006-01-02 15:04:05"

// ThemeCSS is the reusable stylesheet for a single configuration.
func ThemeCSS(c model.IconConfig, now time.Time) string {
	c = c.Normalized()
	var w cssWriter
	w.comment("Icon Studio Theme Export")
	fmt.Fprintf(&w, "/* Generated: %s */\n", now.Format(generatedLayout))

	if c.Library == model.LibraryFontAwesome {
		writeFontAwesomeTheme(&w, c)
	} else {
		writeMaterialTheme(&w, c)
	}
	writeEffectClasses(&w, c)

	if c.Animation.Active() {
		prefix := "material-symbols-"
		if c.Library == model.LibraryFontAwesome {
			prefix = "fa-"
		}
		writeAnimation(&w, "."+prefix+string(c.Family), c.Animation)
	}
	return w.String()
}

func writeMaterialTheme(w *cssWriter, c model.IconConfig) {
	sel := ".material-symbols-" + string(c.Family)
	w.comment("Material Symbols Base Styles")
	w.rule(sel, "font-variation-settings: "+FontVariationSettings(c)+";")

	w.comment("Two-tone Effect Base")
	w.rule(sel+".two-tone",
		"position: relative;",
		"display: inline-block;",
		"color: "+c.PrimaryColor+";",
	)
	w.WriteString("\n")
	w.rule(sel+".two-tone::after",
		"content: attr(data-icon);",
		"position: absolute;",
		"left: "+px(c.Offset)+";",
		"top: "+px(c.Offset)+";",
		"color: "+c.SecondaryColor+";",
		"opacity: "+formatNumber(c.Opacity)+";",
		"z-index: -1;",
	)
}

func writeFontAwesomeTheme(w *cssWriter, c model.IconConfig) {
	sel := ".fa-" + string(c.Family)
	w.comment("Font Awesome Base Styles")
	w.rule(sel+".two-tone-wrapper", "position: relative;", "display: inline-block;")
	w.WriteString("\n")
	w.rule(sel+".two-tone", "color: "+c.PrimaryColor+";")
	w.WriteString("\n")
	w.rule(sel+".two-tone-secondary",
		"position: absolute;",
		"left: "+px(c.Offset)+";",
		"top: "+px(c.Offset)+";",
		"color: "+c.SecondaryColor+";",
		"opacity: "+formatNumber(c.Opacity)+";",
		"z-index: -1;",
	)
}

// writeEffectClasses emits opt-in classes for each effect, resolved against c.
func writeEffectClasses(w *cssWriter, c model.IconConfig) {
	w.comment("Effect Classes")
	w.rule(".icon-shadow", "filter: "+shadowFilter+";")
	w.WriteString("\n")
	w.rule(".icon-glow", "filter: drop-shadow(0 0 5px var(--icon-color, "+c.PrimaryColor+"));")
	w.WriteString("\n")
	dir := Direction(c.GradientAngle)
	w.rule(".icon-gradient",
		fmt.Sprintf("background: linear-gradient(%ddeg, var(--icon-gradient-start, %s), var(--icon-gradient-end, %s));",
			dir.Angle, c.PrimaryColor, c.SecondaryColor),
		"-webkit-background-clip: text;",
		"-webkit-text-fill-color: transparent;",
	)
}

// ExportOptions tunes the bulk theme export.
type ExportOptions struct {
	// FileTypeAliases adds .file-type-* rules for icons that represent common file kinds.
	FileTypeAliases bool
	// Codepoints resolves Font Awesome glyph codepoints. May be nil.
	Codepoints func(model.IconConfig) (rune, bool)
}

// ExportTheme builds one stylesheet for a set of configurations. base supplies
// the theme-wide colours and font axes. Each distinct animation gets exactly
// one @keyframes block.
func ExportTheme(base model.IconConfig, entries []model.IconConfig, now time.Time, opts ExportOptions) string {
	var w cssWriter
	w.comment("Icon Studio Theme")
	fmt.Fprintf(&w, "/* Generated: %s */\n", now.Format(generatedLayout))

	w.comment("Theme Base Styles")
	w.rule(".icon-theme-base",
		"--icon-primary: "+base.PrimaryColor+";",
		"--icon-secondary: "+base.SecondaryColor+";",
	)
	w.comment("Material Symbols Base Config")
	w.rule(".material-symbols-base", "font-variation-settings: "+FontVariationSettings(base)+";")

	var animations []model.Animation
	seen := map[model.Animation]bool{}
	for _, c := range entries {
		c = c.Normalized()
		w.comment(c.Icon)
		w.block(IconRule(c, opts.Codepoints))
		if opts.FileTypeAliases {
			writeFileTypeAliases(&w, c)
		}
		if c.Animation.Active() && !seen[c.Animation] {
			seen[c.Animation] = true
			animations = append(animations, c.Animation)
		}
	}

	for _, a := range animations {
		w.comment("Animation: " + string(a))
		w.block(Keyframes(a))
	}

	w.comment("Theme Usage Guide")
	w.WriteString(usageGuide)
	return w.String()
}

// IconRule is the standalone .icon-<name> rule used by the bulk export.
func IconRule(c model.IconConfig, codepoints func(model.IconConfig) (rune, bool)) string {
	content := c.Icon
	if c.Library == model.LibraryFontAwesome && codepoints != nil {
		if r, ok := codepoints(c); ok {
			content = fmt.Sprintf(`\%x`, r)
		}
	}
	decls := []string{
		fmt.Sprintf("font-family: %q;", c.Library.DisplayName(c.Family)),
		`content: "` + content + `";`,
		"color: " + c.PrimaryColor + ";",
	}
	if c.Library == model.LibraryMaterial {
		decls = append(decls, "font-variation-settings: "+FontVariationSettings(c)+";")
	}
	if c.Animation.Active() {
		decls = append(decls, AnimationDeclaration(c.Animation))
	}
	var w cssWriter
	w.rule(IconClass(c), decls...)
	return w.String()
}

// IconClass is the theme class selector of a configuration.
func IconClass(c model.IconConfig) string {
	return ".icon-" + strings.ToLower(c.CSSName())
}

var fileTypeMap = map[string][]string{
	"folder":         {"folder", "directory"},
	"description":    {"file", "document"},
	"picture_as_pdf": {"pdf"},
	"image":          {"image", "img", "picture", "photo"},
	"videocam":       {"video", "movie"},
	"audiotrack":     {"audio", "music", "sound"},
	"code":           {"code", "programming"},
	"archive":        {"zip", "archive", "compressed"},
	"file":           {"file", "document"},
	"file-pdf":       {"pdf"},
	"file-image":     {"image", "img", "picture", "photo"},
	"file-video":     {"video", "movie"},
	"file-audio":     {"audio", "music", "sound"},
	"file-code":      {"code", "programming"},
	"file-archive":   {"zip", "archive", "compressed"},
}

// FileTypes returns the file kinds an icon name stands for.
func FileTypes(icon string) []string {
	return fileTypeMap[strings.ToLower(icon)]
}

func writeFileTypeAliases(w *cssWriter, c model.IconConfig) {
	for _, kind := range FileTypes(c.Icon) {
		w.comment(kind + " file type")
		w.rule(".file-type-"+kind, "@extend "+IconClass(c)+";")
	}
}

const usageGuide = `/*
Usage Examples:

1. Basic icon usage:
.icon {
    font-family: inherit;
    color: var(--icon-primary);
}

2. File browser usage:
.file-browser-icon {
    font-size: 24px;
    color: var(--icon-primary);
}

3. Theme customization:
.custom-theme {
    --icon-primary: #FF0000;
    --icon-secondary: #00FF00;
}

4. File type specific icons:
.file-pdf { @extend .file-type-pdf; }
.file-image { @extend .file-type-image; }
.folder { @extend .file-type-folder; }

5. Animation usage:
.animated-icon { animation: [animation-name] 1s infinite; }
*/
`
