package catalog

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/tidwall/gjson"
)

// ParseMaterial reads {"material": [names...]}.
func ParseMaterial(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("material catalog is not valid JSON")
	}
	list := gjson.GetBytes(data, "material")
	if !list.IsArray() {
		return nil, errors.New("material catalog has no material list")
	}
	var names []string
	for _, v := range list.Array() {
		if name := strings.TrimSpace(v.String()); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// ParseFontAwesome reads {"solid": [...], "regular": [...], "brands": [...]}
// where entries are plain names or {"name", "unicode"} objects.
func ParseFontAwesome(data []byte) (map[model.Family][]Icon, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("font awesome catalog is not valid JSON")
	}
	out := map[model.Family][]Icon{}
	var parseErr error
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		fam := model.Family(key.String())
		if !model.LibraryFontAwesome.HasFamily(fam) {
			return true
		}
		if !value.IsArray() {
			parseErr = errors.Errorf("font awesome family %s is not a list", fam)
			return false
		}
		icons := make([]Icon, 0, len(value.Array()))
		for _, entry := range value.Array() {
			icon := Icon{Name: entry.String()}
			if entry.IsObject() {
				icon = Icon{Name: entry.Get("name").String(), Unicode: entry.Get("unicode").String()}
			}
			if icon.Name != "" {
				icons = append(icons, icon)
			}
		}
		out[fam] = icons
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(out) == 0 {
		return nil, errors.New("font awesome catalog has no families")
	}
	return out, nil
}

// ParseCodepoints reads the "name hex" per line format shipped next to the
// Material Symbols fonts.
func ParseCodepoints(data []byte) map[string]rune {
	out := map[string]rune{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		if r, ok := parseHexRune(fields[1]); ok {
			out[fields[0]] = r
		}
	}
	return out
}

func parseHexRune(s string) (rune, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "0x"), `\`)
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return rune(v), true
}
