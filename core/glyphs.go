package core

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/catalog"
	"github.com/ronmurphy/iconstudio/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// fontFiles maps each library family to the font file expected in the font directory.
var fontFiles = map[model.Library]map[model.Family]string{
	model.LibraryMaterial: {
		model.FamilyOutlined: "MaterialSymbolsOutlined.ttf",
		model.FamilyRounded:  "MaterialSymbolsRounded.ttf",
		model.FamilySharp:    "MaterialSymbolsSharp.ttf",
	},
	model.LibraryFontAwesome: {
		model.FamilySolid:   "fa-solid-900.ttf",
		model.FamilyRegular: "fa-regular-400.ttf",
		model.FamilyLight:   "fa-light-300.ttf",
		model.FamilyDuotone: "fa-duotone-900.ttf",
		model.FamilyBrands:  "fa-brands-400.ttf",
	},
}

// FontFile is the font file name used for a library family.
func FontFile(lib model.Library, fam model.Family) (string, bool) {
	name, ok := fontFiles[lib][fam]
	return name, ok
}

// FontGlyphs draws icons from icon font files, addressing glyphs by the
// codepoints recorded in the catalog.
type FontGlyphs struct {
	dir     string
	catalog *catalog.Loader

	mu    sync.Mutex
	fonts map[string]*opentype.Font
}

// NewFontGlyphs reads fonts from dir. A leading ~ is expanded.
func NewFontGlyphs(dir string, loader *catalog.Loader) (*FontGlyphs, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "expand font dir %s", dir)
	}
	return &FontGlyphs{dir: expanded, catalog: loader, fonts: map[string]*opentype.Font{}}, nil
}

// Glyph implements render.GlyphSource.
func (g *FontGlyphs) Glyph(c model.IconConfig, px float64) (font.Face, string, error) {
	cat, err := g.catalog.Catalog()
	if err != nil {
		return nil, "", err
	}
	r, ok := cat.Codepoint(c)
	if !ok {
		return nil, "", errors.Wrapf(model.ErrNotFound, "no codepoint for %s", c.Icon)
	}
	name, ok := FontFile(c.Library, c.Family)
	if !ok {
		return nil, "", errors.Errorf("no font for %s %s", c.Library, c.Family)
	}
	f, err := g.font(name)
	if err != nil {
		return nil, "", err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, "", errors.Wrap(err, "create font face")
	}
	return face, string(r), nil
}

func (g *FontGlyphs) font(name string) (*opentype.Font, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if f, ok := g.fonts[name]; ok {
		return f, nil
	}
	data, err := os.ReadFile(filepath.Join(g.dir, name))
	if err != nil {
		return nil, errors.Wrapf(err, "read font %s", name)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse font %s", name)
	}
	g.fonts[name] = f
	return f, nil
}
