package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore persists named documents of type T in one directory.
type FileStore[T any] struct {
	dir    string
	format string
}

// NewFileStore creates dir if needed. format is "json" or "yaml".
func NewFileStore[T any](dir string, format string) (*FileStore[T], error) {
	if format != "json" && format != "yaml" {
		return nil, fmt.Errorf("unsupported store format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore[T]{dir: dir, format: format}, nil
}

// Marshal serializes v in the store's format.
func (fs FileStore[T]) Marshal(v interface{}) ([]byte, error) {
	if fs.format == "yaml" {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal deserializes data in the store's format.
func (fs FileStore[T]) Unmarshal(data []byte, v interface{}) error {
	if fs.format == "yaml" {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// Path is the file backing the named document.
func (fs FileStore[T]) Path(name string) string {
	return filepath.Join(fs.dir, name+"."+fs.format)
}

// Save writes the document through a temp file so readers never see a partial write.
func (fs FileStore[T]) Save(name string, data T) error {
	serialized, err := fs.Marshal(data)
	if err != nil {
		return err
	}
	path := fs.Path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads the document. A missing file yields the zero value.
func (fs FileStore[T]) Load(name string) (T, error) {
	var data T
	serialized, err := os.ReadFile(fs.Path(name))
	if os.IsNotExist(err) {
		return data, nil
	}
	if err != nil {
		return data, err
	}
	err = fs.Unmarshal(serialized, &data)
	return data, err
}

// Delete removes the document if present.
func (fs FileStore[T]) Delete(name string) error {
	err := os.Remove(fs.Path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
