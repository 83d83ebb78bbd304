package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
)

const kvDocument = "storage"

// FileKV keeps every key in a single document, like browser local storage.
type FileKV struct {
	mu    sync.Mutex
	files *FileStore[map[string]string]
}

// NewFileKV stores its document under dir in the given format.
func NewFileKV(dir, format string) (*FileKV, error) {
	files, err := NewFileStore[map[string]string](dir, format)
	if err != nil {
		return nil, err
	}
	return &FileKV{files: files}, nil
}

func (f *FileKV) load() (map[string]string, error) {
	values, err := f.files.Load(kvDocument)
	if err != nil {
		return nil, errors.Wrapf(model.ErrStorageCorrupt, "%s: %v", f.files.Path(kvDocument), err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.files.Save(kvDocument, values)
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return f.files.Save(kvDocument, values)
}

func (f *FileKV) Close() error { return nil }
