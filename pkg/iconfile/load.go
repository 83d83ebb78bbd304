// Package iconfile reads lists of icon configurations written by hand or
// exported from another tool. Keys may use camelCase, snake_case or
// kebab-case; they are folded onto the canonical JSON names before decoding.
package iconfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"gopkg.in/yaml.v2"
)

var canonicalKeys = map[string]string{
	"library":        "library",
	"family":         "family",
	"icon":           "icon",
	"primarycolor":   "primaryColor",
	"secondarycolor": "secondaryColor",
	"weight":         "weight",
	"fill":           "fill",
	"grade":          "grade",
	"size":           "size",
	"offset":         "offset",
	"opacity":        "opacity",
	"effects":        "effects",
	"gradientangle":  "gradientAngle",
	"animation":      "animation",
	"timestamp":      "timestamp",
}

// Load reads a YAML or JSON list of configurations from path.
func Load(path string) ([]model.IconConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	configs, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return configs, nil
}

// Parse decodes a list of configurations. Every entry must carry the
// required fields and pass validation; the error names the failing entry.
func Parse(data []byte) ([]model.IconConfig, error) {
	var raw []map[interface{}]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(model.ErrInvalidConfig, "not a list of configurations: %v", err)
	}

	configs := make([]model.IconConfig, 0, len(raw))
	for i, entry := range raw {
		normalized, err := normalizeKeys(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i+1)
		}
		for _, field := range model.RequiredFields {
			if _, ok := normalized[field]; !ok {
				return nil, errors.Wrapf(&model.MissingFieldError{Field: field}, "entry %d", i+1)
			}
		}
		// round trip through yaml so the struct tags do the decoding
		buf, err := yaml.Marshal(normalized)
		if err != nil {
			return nil, err
		}
		var cfg model.IconConfig
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return nil, errors.Wrapf(&model.FieldError{Field: "config", Reason: err.Error()}, "entry %d", i+1)
		}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrapf(err, "entry %d (%s)", i+1, cfg.Icon)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func normalizeKeys(entry map[interface{}]interface{}) (map[string]interface{}, error) {
	normalized := make(map[string]interface{}, len(entry))
	seen := make(map[string]string, len(entry))

	for k, value := range entry {
		key := fmt.Sprint(k)
		canonical, ok := canonicalKeys[normalizeKeyVariant(key)]
		if !ok {
			return nil, &model.FieldError{Field: key, Reason: "unknown key"}
		}
		if previous, exists := seen[canonical]; exists && previous != key {
			return nil, &model.FieldError{Field: canonical, Reason: fmt.Sprintf("duplicate keys %q and %q", previous, key)}
		}
		seen[canonical] = key
		normalized[canonical] = value
	}
	return normalized, nil
}

func normalizeKeyVariant(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, " ", "")
	return key
}
