package model

import (
	"fmt"
	"strings"
)

// Library is the icon font family a configuration draws from.
type Library string

const (
	LibraryMaterial    Library = "material"
	LibraryFontAwesome Library = "fontawesome"
)

// Family is a style variant inside a library.
type Family string

const (
	FamilyOutlined Family = "outlined"
	FamilyRounded  Family = "rounded"
	FamilySharp    Family = "sharp"

	FamilySolid   Family = "solid"
	FamilyRegular Family = "regular"
	FamilyLight   Family = "light"
	FamilyDuotone Family = "duotone"
	FamilyBrands  Family = "brands"
)

var libraryFamilies = map[Library][]Family{
	LibraryMaterial:    {FamilyOutlined, FamilyRounded, FamilySharp},
	LibraryFontAwesome: {FamilySolid, FamilyRegular, FamilyLight, FamilyDuotone, FamilyBrands},
}

// Libraries lists the supported libraries in display order.
func Libraries() []Library {
	return []Library{LibraryMaterial, LibraryFontAwesome}
}

// ParseLibrary accepts the canonical names plus the short "fa" alias.
func ParseLibrary(s string) (Library, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "material", "material-symbols":
		return LibraryMaterial, nil
	case "fontawesome", "font-awesome", "fa":
		return LibraryFontAwesome, nil
	}
	return "", fmt.Errorf("unknown icon library %q", s)
}

// Families returns the families that belong to the library.
func (l Library) Families() []Family {
	return append([]Family(nil), libraryFamilies[l]...)
}

// DefaultFamily is the family selected when switching to the library.
func (l Library) DefaultFamily() Family {
	fams := libraryFamilies[l]
	if len(fams) == 0 {
		return ""
	}
	return fams[0]
}

// Valid reports whether the library is known.
func (l Library) Valid() bool {
	_, ok := libraryFamilies[l]
	return ok
}

// HasFamily reports whether f belongs to the library.
func (l Library) HasFamily(f Family) bool {
	for _, fam := range libraryFamilies[l] {
		if fam == f {
			return true
		}
	}
	return false
}

// DisplayName is the font family name used in generated stylesheets.
func (l Library) DisplayName(f Family) string {
	switch l {
	case LibraryMaterial:
		return "Material Symbols " + titleCase(string(f))
	case LibraryFontAwesome:
		if f == FamilyBrands {
			return "Font Awesome 6 Brands"
		}
		return "Font Awesome 6 " + titleCase(string(f))
	}
	return string(l)
}

// FontAwesomePrefix returns the legacy short prefix (fas, far, fab) for a family.
func FontAwesomePrefix(f Family) string {
	switch f {
	case FamilyRegular:
		return "far"
	case FamilyBrands:
		return "fab"
	case FamilyLight:
		return "fal"
	case FamilyDuotone:
		return "fad"
	}
	return "fas"
}

// FontAwesomeCanvasFamily is the font family used when rasterizing.
func FontAwesomeCanvasFamily(f Family) string {
	switch f {
	case FamilyRegular:
		return "Font Awesome 6 Free Regular"
	case FamilyBrands:
		return "Font Awesome 6 Brands"
	}
	return "Font Awesome 6 Free Solid"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
