package core

import (
	"context"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/sirupsen/logrus"
)

// SavedStore persists named configuration snapshots across sessions.
type SavedStore interface {
	List(ctx context.Context) []model.SavedConfig
	Save(ctx context.Context, cfg model.IconConfig, name string) (model.SavedConfig, error)
	Get(ctx context.Context, id string) (model.SavedConfig, error)
	Delete(ctx context.Context, id string) error
	AutoSave(ctx context.Context) bool
	SetAutoSave(ctx context.Context, on bool) error
}

var errNoSavedStore = errors.New("saved configurations are not available")

// SaveConfiguration snapshots the active configuration under name. An empty
// name gets the default "<icon> - <date>" form.
func (s *Session) SaveConfiguration(ctx context.Context, name string) (model.SavedConfig, error) {
	if s.saved == nil {
		return model.SavedConfig{}, errNoSavedStore
	}
	cfg, err := s.Config()
	if err != nil {
		s.notifier.Notify("Please select an icon first", SeverityWarning)
		return model.SavedConfig{}, err
	}
	saved, err := s.saved.Save(ctx, cfg, name)
	if err != nil {
		logrus.WithError(err).Error("failed to save configuration")
		s.notifier.Notify("Failed to save configuration: "+err.Error(), SeverityError)
		return model.SavedConfig{}, err
	}
	s.notifier.Notify("Configuration saved successfully!", SeveritySuccess)
	return saved, nil
}

// LoadSaved applies a saved configuration to the session in one step.
func (s *Session) LoadSaved(ctx context.Context, id string) error {
	if s.saved == nil {
		return errNoSavedStore
	}
	saved, err := s.saved.Get(ctx, id)
	if err != nil {
		s.notifier.Notify("Configuration not found", SeverityError)
		return err
	}
	if err := s.Apply(saved.IconConfig); err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to load configuration")
		s.notifier.Notify("Error loading configuration", SeverityError)
		return err
	}
	s.notifier.Notify("Configuration loaded", SeveritySuccess)
	return nil
}

// DeleteSaved removes a saved configuration.
func (s *Session) DeleteSaved(ctx context.Context, id string) error {
	if s.saved == nil {
		return errNoSavedStore
	}
	if err := s.saved.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify("Configuration deleted", SeverityInfo)
	return nil
}

// SavedList lists saved configurations, newest first.
func (s *Session) SavedList(ctx context.Context) []model.SavedConfig {
	if s.saved == nil {
		return []model.SavedConfig{}
	}
	return s.saved.List(ctx)
}

// AutoSave reports the persisted auto-save preference.
func (s *Session) AutoSave(ctx context.Context) bool {
	return s.saved != nil && s.saved.AutoSave(ctx)
}

// SetAutoSave persists the auto-save preference.
func (s *Session) SetAutoSave(ctx context.Context, on bool) error {
	if s.saved == nil {
		return errNoSavedStore
	}
	return s.saved.SetAutoSave(ctx, on)
}
