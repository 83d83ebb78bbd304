package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/tidwall/gjson"
)

const (
	// MaterialMetadataURL lists every Material Symbols icon.
	MaterialMetadataURL = "https://fonts.google.com/metadata/icons"
	// FontAwesomeContentsURL is the GitHub contents listing of the Font Awesome js packages.
	FontAwesomeContentsURL = "https://api.github.com/repos/FortAwesome/Font-Awesome/contents/js-packages/@fortawesome/"
	xssiPrefix             = ")]}'"
)

var fontAwesomePackages = map[model.Family]string{
	model.FamilySolid:   "free-solid-svg-icons",
	model.FamilyRegular: "free-regular-svg-icons",
	model.FamilyBrands:  "free-brands-svg-icons",
}

var (
	materialUnsafe   = regexp.MustCompile(`[^\w\s-]`)
	materialNumeric  = regexp.MustCompile(`^\d+[a-zA-Z]*$`)
	materialNameForm = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// CleanMaterialName strips punctuation and lowercases a metadata name.
func CleanMaterialName(name string) string {
	return strings.ToLower(materialUnsafe.ReplaceAllString(name, ""))
}

// ValidMaterialName rejects numeric and non-identifier names.
func ValidMaterialName(name string) bool {
	if materialNumeric.MatchString(name) || len(name) < 2 {
		return false
	}
	return materialNameForm.MatchString(name)
}

// CleanFontAwesomeName turns a package file name such as faArrowUp.js into arrow-up.
// The second result is false for files that are not icons.
func CleanFontAwesomeName(file string) (string, bool) {
	if !strings.HasSuffix(file, ".js") || file == "index.js" {
		return "", false
	}
	name := strings.TrimPrefix(strings.TrimSuffix(file, ".js"), "fa")
	if name == "" || strings.IndexFunc(name, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return "", false
	}
	if strings.Contains(name, "-") {
		return name, true
	}
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String(), true
}

// BuildMaterial fetches the Material metadata document and returns the cleaned, sorted names.
func (f *Fetcher) BuildMaterial(ctx context.Context, url string) ([]string, error) {
	data, err := f.Read(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "fetch material metadata")
	}
	data = bytes.TrimPrefix(bytes.TrimSpace(data), []byte(xssiPrefix))
	if !gjson.ValidBytes(data) {
		return nil, errors.New("material metadata is not valid JSON")
	}
	seen := map[string]bool{}
	var names []string
	for _, v := range gjson.GetBytes(data, "icons.#.name").Array() {
		name := CleanMaterialName(v.String())
		if ValidMaterialName(name) && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// BuildFontAwesome lists the free Font Awesome packages and returns the icon names per family.
func (f *Fetcher) BuildFontAwesome(ctx context.Context, baseURL string) (map[model.Family][]Icon, error) {
	out := map[model.Family][]Icon{}
	for fam, pkg := range fontAwesomePackages {
		data, err := f.Read(ctx, strings.TrimSuffix(baseURL, "/")+"/"+pkg)
		if err != nil {
			return nil, errors.Wrapf(err, "fetch font awesome %s", fam)
		}
		var icons []Icon
		for _, v := range gjson.GetBytes(data, "#.name").Array() {
			if name, ok := CleanFontAwesomeName(v.String()); ok {
				icons = append(icons, Icon{Name: name})
			}
		}
		sort.Slice(icons, func(i, j int) bool { return icons[i].Name < icons[j].Name })
		out[fam] = icons
	}
	return out, nil
}

// EncodeMaterial writes the material catalog document.
func EncodeMaterial(names []string) ([]byte, error) {
	return json.MarshalIndent(map[string][]string{"material": names}, "", "  ")
}

// EncodeFontAwesome writes the font awesome catalog document. Entries without
// a codepoint are written as plain names.
func EncodeFontAwesome(icons map[model.Family][]Icon) ([]byte, error) {
	doc := make(map[model.Family][]interface{}, len(icons))
	for fam, list := range icons {
		entries := make([]interface{}, len(list))
		for i, icon := range list {
			if icon.Unicode == "" {
				entries[i] = icon.Name
			} else {
				entries[i] = icon
			}
		}
		doc[fam] = entries
	}
	return json.MarshalIndent(doc, "", "  ")
}
