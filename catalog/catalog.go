package catalog

import (
	"sort"
	"strings"

	"github.com/ronmurphy/iconstudio/model"
	"github.com/sahilm/fuzzy"
)

// Icon is one Font Awesome catalog entry. Unicode is the hex codepoint when known.
type Icon struct {
	Name    string `json:"name"`
	Unicode string `json:"unicode,omitempty"`
}

// Catalog is the read-only set of icon names per library and family.
// Material families share one name list.
type Catalog struct {
	material           []string
	materialSet        map[string]bool
	fontAwesome        map[model.Family][]Icon
	fontAwesomeSet     map[model.Family]map[string]Icon
	materialCodepoints map[string]rune
}

// New builds a catalog from already parsed lists.
func New(material []string, fontAwesome map[model.Family][]Icon) *Catalog {
	c := &Catalog{
		material:       append([]string(nil), material...),
		materialSet:    make(map[string]bool, len(material)),
		fontAwesome:    make(map[model.Family][]Icon, len(fontAwesome)),
		fontAwesomeSet: make(map[model.Family]map[string]Icon, len(fontAwesome)),
	}
	sort.Strings(c.material)
	for _, name := range c.material {
		c.materialSet[name] = true
	}
	for fam, icons := range fontAwesome {
		list := append([]Icon(nil), icons...)
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		c.fontAwesome[fam] = list
		set := make(map[string]Icon, len(list))
		for _, icon := range list {
			set[icon.Name] = icon
		}
		c.fontAwesomeSet[fam] = set
	}
	return c
}

// SetMaterialCodepoints attaches the ligature to codepoint table used for rasterizing.
func (c *Catalog) SetMaterialCodepoints(codepoints map[string]rune) {
	c.materialCodepoints = codepoints
}

// Icons lists the icons available for a library and family.
func (c *Catalog) Icons(lib model.Library, fam model.Family) []string {
	if lib == model.LibraryMaterial {
		return append([]string(nil), c.material...)
	}
	icons := c.fontAwesome[fam]
	names := make([]string, len(icons))
	for i, icon := range icons {
		names[i] = icon.Name
	}
	return names
}

// Families lists the families that have icons in the catalog.
func (c *Catalog) Families(lib model.Library) []model.Family {
	if lib == model.LibraryMaterial {
		return lib.Families()
	}
	var out []model.Family
	for _, fam := range lib.Families() {
		if len(c.fontAwesome[fam]) > 0 {
			out = append(out, fam)
		}
	}
	return out
}

// Count is the number of icons for a library and family.
func (c *Catalog) Count(lib model.Library, fam model.Family) int {
	if lib == model.LibraryMaterial {
		return len(c.material)
	}
	return len(c.fontAwesome[fam])
}

// Contains reports whether the icon exists in the family.
func (c *Catalog) Contains(lib model.Library, fam model.Family, name string) bool {
	if lib == model.LibraryMaterial {
		return c.materialSet[name]
	}
	_, ok := c.fontAwesomeSet[fam][name]
	return ok
}

// Suggest returns up to n fuzzy matches for a name that is not in the catalog.
func (c *Catalog) Suggest(lib model.Library, fam model.Family, name string, n int) []string {
	matches := fuzzy.Find(strings.ToLower(name), c.Icons(lib, fam))
	out := make([]string, 0, n)
	for i := 0; i < len(matches) && i < n; i++ {
		out = append(out, matches[i].Str)
	}
	return out
}

// Codepoint resolves the glyph codepoint of a configuration's icon.
func (c *Catalog) Codepoint(cfg model.IconConfig) (rune, bool) {
	if cfg.Library == model.LibraryMaterial {
		r, ok := c.materialCodepoints[cfg.Icon]
		return r, ok
	}
	icon, ok := c.fontAwesomeSet[cfg.Family][cfg.Icon]
	if !ok || icon.Unicode == "" {
		return 0, false
	}
	return parseHexRune(icon.Unicode)
}
