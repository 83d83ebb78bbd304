package store

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/ronmurphy/iconstudio/constant"
)

// DataDir is the default directory for persisted studio data.
func DataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", "."+constant.ProjectName)
	}
	return filepath.Join(home, ".local", "share", constant.ProjectName)
}

// ExpandDir resolves a leading ~ in a configured directory.
func ExpandDir(dir string) (string, error) {
	if dir == "" {
		return DataDir(), nil
	}
	return homedir.Expand(dir)
}
