package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/constant"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/sirupsen/logrus"
)

// SavedStore keeps named configuration snapshots as one JSON blob in a KV.
// It is safe for concurrent use; read-modify-write cycles on the blob are
// serialised.
type SavedStore struct {
	mu    sync.Mutex
	kv    KV
	now   func() time.Time
	newID func(time.Time) string
}

// NewSavedStore wraps kv.
func NewSavedStore(kv KV) *SavedStore {
	return &SavedStore{kv: kv, now: time.Now, newID: newSavedID}
}

// WithClock overrides the time source.
func (s *SavedStore) WithClock(now func() time.Time) *SavedStore {
	s.now = now
	return s
}

func newSavedID(at time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("icon-%d-%s", at.UnixMilli(), suffix)
}

// read returns the raw entries. A missing blob is empty; an unparsable one is
// ErrStorageCorrupt.
func (s *SavedStore) read(ctx context.Context) (map[string]json.RawMessage, error) {
	blob, ok, err := s.kv.Get(ctx, constant.SavedConfigsKey)
	if err != nil {
		return nil, err
	}
	entries := map[string]json.RawMessage{}
	if !ok || strings.TrimSpace(blob) == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil, errors.Wrap(model.ErrStorageCorrupt, err.Error())
	}
	return entries, nil
}

// entries is read with storage failures logged and treated as no saved data.
func (s *SavedStore) entries(ctx context.Context) map[string]json.RawMessage {
	entries, err := s.read(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Error loading saved configurations")
		return map[string]json.RawMessage{}
	}
	return entries
}

func (s *SavedStore) write(ctx context.Context, entries map[string]json.RawMessage) error {
	blob, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, constant.SavedConfigsKey, string(blob))
}

func decodeSaved(id string, raw json.RawMessage) (model.SavedConfig, error) {
	cfg, err := model.ParseIconConfig(raw)
	if err != nil {
		return model.SavedConfig{}, err
	}
	var meta struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(raw, &meta)
	return model.SavedConfig{IconConfig: cfg, ID: id, Name: meta.Name}, nil
}

// List returns every decodable snapshot, newest first.
func (s *SavedStore) List(ctx context.Context) []model.SavedConfig {
	var out []model.SavedConfig
	for id, raw := range s.entries(ctx) {
		saved, err := decodeSaved(id, raw)
		if err != nil {
			logrus.WithError(err).WithField("id", id).Warn("skipping unreadable saved configuration")
			continue
		}
		out = append(out, saved)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Save validates cfg and stores it under a fresh id. An empty name defaults to
// "<icon> - <date>".
func (s *SavedStore) Save(ctx context.Context, cfg model.IconConfig, name string) (model.SavedConfig, error) {
	if err := cfg.Validate(); err != nil {
		return model.SavedConfig{}, err
	}
	now := s.now()
	if strings.TrimSpace(name) == "" {
		name = model.SavedName(cfg.Icon, now)
	}
	cfg.Timestamp = now.UnixMilli()
	saved := model.SavedConfig{IconConfig: cfg, ID: s.newID(now), Name: name}

	raw, err := json.Marshal(saved)
	if err != nil {
		return model.SavedConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.entries(ctx)
	entries[saved.ID] = raw
	if err := s.write(ctx, entries); err != nil {
		return model.SavedConfig{}, errors.Wrap(err, "write saved configurations")
	}
	logrus.WithFields(logrus.Fields{"id": saved.ID, "name": name}).Debug("configuration saved")
	return saved, nil
}

// Get returns the snapshot with id, validated field by field.
func (s *SavedStore) Get(ctx context.Context, id string) (model.SavedConfig, error) {
	raw, ok := s.entries(ctx)[id]
	if !ok {
		return model.SavedConfig{}, errors.Wrapf(model.ErrNotFound, "saved configuration %s", id)
	}
	return decodeSaved(id, raw)
}

// Delete removes the snapshot with id.
func (s *SavedStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.entries(ctx)
	if _, ok := entries[id]; !ok {
		return errors.Wrapf(model.ErrNotFound, "saved configuration %s", id)
	}
	delete(entries, id)
	return s.write(ctx, entries)
}

// AutoSave reports the persisted auto-save preference.
func (s *SavedStore) AutoSave(ctx context.Context) bool {
	v, ok, err := s.kv.Get(ctx, constant.AutoSaveKey)
	if err != nil || !ok {
		return false
	}
	on, _ := strconv.ParseBool(v)
	return on
}

// SetAutoSave persists the auto-save preference.
func (s *SavedStore) SetAutoSave(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(ctx, constant.AutoSaveKey, strconv.FormatBool(on))
}

// SeedAutoSave stores on as the auto-save preference unless one is already stored.
func (s *SavedStore) SeedAutoSave(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok, err := s.kv.Get(ctx, constant.AutoSaveKey)
	if err != nil || ok {
		return err
	}
	return s.kv.Set(ctx, constant.AutoSaveKey, strconv.FormatBool(on))
}
