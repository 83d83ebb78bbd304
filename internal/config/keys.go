package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	yamlv3 "gopkg.in/yaml.v3"
)

type configKeyVariant struct {
	canonical string
	camel     string
}

var configKeyVariants = []configKeyVariant{
	{canonical: "data_dir", camel: "dataDir"},
	{canonical: "store_backend", camel: "storeBackend"},
	{canonical: "store_format", camel: "storeFormat"},
	{canonical: "material_catalog", camel: "materialCatalog"},
	{canonical: "fontawesome_catalog", camel: "fontawesomeCatalog"},
	{canonical: "material_codepoints", camel: "materialCodepoints"},
	{canonical: "font_dir", camel: "fontDir"},
	{canonical: "identifier_strategy", camel: "identifierStrategy"},
	{canonical: "auto_update", camel: "autoUpdate"},
	{canonical: "auto_save", camel: "autoSave"},
	{canonical: "default_png_scale", camel: "defaultPngScale"},
	{canonical: "file_type_aliases", camel: "fileTypeAliases"},
	{canonical: "listen"},
	{canonical: "session_secret", camel: "sessionSecret"},
	{canonical: "log_level", camel: "logLevel"},
}

// flagName is the command line spelling of a canonical key.
func (k configKeyVariant) flagName() string {
	return strings.ReplaceAll(k.canonical, "_", "-")
}

var canonicalByKey = func() map[string]string {
	m := make(map[string]string, len(configKeyVariants)*2)
	for _, variant := range configKeyVariants {
		m[variant.canonical] = variant.canonical
		if variant.camel != "" {
			m[variant.camel] = variant.canonical
		}
	}
	return m
}()

// bindConfigFlags binds each kebab-case flag to its canonical key. The first
// flag set that defines a flag wins.
func bindConfigFlags(v *viper.Viper, sets ...*pflag.FlagSet) error {
	for _, variant := range configKeyVariants {
		for _, flags := range sets {
			flag := flags.Lookup(variant.flagName())
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(variant.canonical, flag); err != nil {
				return errors.Wrapf(err, "binding --%s", flag.Name)
			}
			break
		}
	}
	return nil
}

func registerConfigKeyAliases(v *viper.Viper) {
	for _, variant := range configKeyVariants {
		if variant.camel != "" {
			v.RegisterAlias(variant.camel, variant.canonical)
		}
	}
}

// validateConfigFileKeys rejects keys iconstudio does not know and settings
// spelled twice, once in snake_case and once in camelCase.
func validateConfigFileKeys(configPath string) error {
	if configPath == "" {
		return nil
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		configPath = abs
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrapf(err, "reading %s", configPath)
	}
	var raw map[string]interface{}
	if err := yamlv3.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "parsing %s", configPath)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	spelledAs := make(map[string]string, len(keys))
	for _, key := range keys {
		canonical, ok := canonicalByKey[key]
		if !ok {
			return errors.Errorf("%s: invalid key %q", configPath, key)
		}
		if other, dup := spelledAs[canonical]; dup {
			return errors.Errorf("%s: %q and %q both set %s; keep one", configPath, other, key, canonical)
		}
		spelledAs[canonical] = key
	}
	return nil
}
