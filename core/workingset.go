package core

import (
	"fmt"
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/ronmurphy/iconstudio/render"
	"github.com/sirupsen/logrus"
)

const overwritePrompt = "Update existing icon configuration?"

// Ambient is the editing state the working set folds into every entry it writes.
type Ambient interface {
	GradientAngle() model.GradientAngle
	Animation() model.Animation
	// Theme supplies the colours and font axes of the exported base theme.
	Theme() model.IconConfig
}

// StaticAmbient is a fixed Ambient, used when no editing session drives the working set.
type StaticAmbient struct {
	Angle model.GradientAngle
	Anim  model.Animation
	Base  model.IconConfig
}

func (a StaticAmbient) GradientAngle() model.GradientAngle { return a.Angle }
func (a StaticAmbient) Animation() model.Animation { return a.Anim }
func (a StaticAmbient) Theme() model.IconConfig { return a.Base }

// LoadTarget receives a configuration loaded from the working set.
type LoadTarget interface {
	// Current returns the active configuration, if an icon is selected.
	Current() (model.IconConfig, bool)
	Apply(cfg model.IconConfig) error
}

// Entry is one working-set item.
type Entry struct {
	ID     string           `json:"id"`
	Config model.IconConfig `json:"config"`
}

// WorkingSetOptions configures a WorkingSet. Zero fields get defaults.
type WorkingSetOptions struct {
	Identify   model.IdentifierFunc
	Ambient    Ambient
	Confirm    Confirmer
	Notifier   Notifier
	Now        func() time.Time
	AutoUpdate bool
	// OnChange runs after every mutation.
	OnChange   func()
	Export     render.ExportOptions
}

// WorkingSet is the in-memory collection of icon configurations composed in one session.
// It is not safe for concurrent use; callers serialise access.
type WorkingSet struct {
	icons      map[string]model.IconConfig
	order      []string
	identify   model.IdentifierFunc
	ambient    Ambient
	confirm    Confirmer
	notifier   Notifier
	now        func() time.Time
	autoUpdate bool
	onChange   func()
	export     render.ExportOptions
}

// NewWorkingSet creates an empty working set.
func NewWorkingSet(opts WorkingSetOptions) *WorkingSet {
	ws := &WorkingSet{
		icons:      map[string]model.IconConfig{},
		identify:   opts.Identify,
		ambient:    opts.Ambient,
		confirm:    opts.Confirm,
		notifier:   opts.Notifier,
		now:        opts.Now,
		autoUpdate: opts.AutoUpdate,
		onChange:   opts.OnChange,
		export:     opts.Export,
	}
	if ws.now == nil {
		ws.now = time.Now
	}
	if ws.identify == nil {
		ws.identify = func(c model.IconConfig) string { return model.DailyIdentifier(c, ws.now()) }
	}
	if ws.ambient == nil {
		ws.ambient = StaticAmbient{}
	}
	if ws.confirm == nil {
		ws.confirm = NeverConfirm
	}
	if ws.notifier == nil {
		ws.notifier = LogNotifier{}
	}
	return ws
}

// SetAutoUpdate toggles overwriting existing entries without confirmation.
func (ws *WorkingSet) SetAutoUpdate(on bool) { ws.autoUpdate = on }

// AutoUpdate reports the auto-update mode.
func (ws *WorkingSet) AutoUpdate() bool { return ws.autoUpdate }

// Identify derives the working-set key for cfg.
func (ws *WorkingSet) Identify(cfg model.IconConfig) string { return ws.identify(cfg) }

// AddOrUpdate inserts cfg or, after confirmation, overwrites the entry with the same identifier.
func (ws *WorkingSet) AddOrUpdate(cfg model.IconConfig) bool {
	_, err := ws.AddOrUpdateE(cfg)
	return err == nil
}

// AddOrUpdateE is AddOrUpdate returning the identifier written or the reason nothing was.
func (ws *WorkingSet) AddOrUpdateE(cfg model.IconConfig) (string, error) {
	return ws.put(cfg, true, true)
}

// UpdateWithoutConfirm is AddOrUpdate that never asks before overwriting.
func (ws *WorkingSet) UpdateWithoutConfirm(cfg model.IconConfig) bool {
	_, err := ws.UpdateWithoutConfirmE(cfg)
	return err == nil
}

// UpdateWithoutConfirmE is UpdateWithoutConfirm returning the identifier or error.
func (ws *WorkingSet) UpdateWithoutConfirmE(cfg model.IconConfig) (string, error) {
	return ws.put(cfg, false, true)
}

// Import adds a stored configuration, keeping its own gradient angle and animation.
func (ws *WorkingSet) Import(cfg model.IconConfig) (string, error) {
	return ws.put(cfg, true, false)
}

// stamped is cfg as the working set would store it, ambient fields included.
func (ws *WorkingSet) stamped(cfg model.IconConfig) model.IconConfig {
	cfg.GradientAngle = ws.ambient.GradientAngle().OrDefault()
	cfg.Animation = ws.ambient.Animation().OrNone()
	return cfg
}

// Persisted reports whether the entry cfg maps to already holds cfg, so
// writing it again would change nothing but the timestamp.
func (ws *WorkingSet) Persisted(cfg model.IconConfig) bool {
	cfg = ws.stamped(cfg).Normalized()
	stored, ok := ws.icons[ws.identify(cfg)]
	if !ok {
		return false
	}
	stored = stored.Normalized()
	cfg.Timestamp, stored.Timestamp = 0, 0
	return reflect.DeepEqual(cfg, stored)
}

// writeBack keeps the active configuration before the caller moves away from
// it. An unchanged entry is left alone; force skips the confirmation. A
// declined overwrite is reported to the user and returned.
func (ws *WorkingSet) writeBack(cfg model.IconConfig, force bool) error {
	if ws.Persisted(cfg) {
		return nil
	}
	var err error
	if force {
		_, err = ws.UpdateWithoutConfirmE(cfg)
	} else {
		_, err = ws.AddOrUpdateE(cfg)
	}
	if model.IsKind(err, model.ErrDeclined) {
		ws.notifier.Notify(fmt.Sprintf("Unsaved changes to %s were kept; confirm the overwrite to switch", cfg.Icon), SeverityWarning)
	}
	return err
}

func (ws *WorkingSet) put(cfg model.IconConfig, ask, stamp bool) (string, error) {
	if err := cfg.Validate(); err != nil {
		logrus.WithField("icon", cfg.Icon).Warn(err.Error())
		return "", err
	}
	if stamp {
		cfg = ws.stamped(cfg)
	} else {
		cfg = cfg.Normalized()
	}
	id := ws.identify(cfg)
	if _, exists := ws.icons[id]; exists && ask && !ws.autoUpdate {
		if !ws.confirm.Confirm(overwritePrompt) {
			logrus.WithField("id", id).Debug("overwrite declined")
			return "", errors.Wrapf(model.ErrDeclined, "working set entry %s", id)
		}
	}
	cfg.Timestamp = ws.now().UnixMilli()

	if _, exists := ws.icons[id]; !exists {
		ws.order = append(ws.order, id)
	}
	ws.icons[id] = cfg
	logrus.WithField("id", id).Debug("working set entry written")
	ws.changed()
	return id, nil
}

// Get returns the entry stored under id.
func (ws *WorkingSet) Get(id string) (model.IconConfig, bool) {
	cfg, ok := ws.icons[id]
	return cfg, ok
}

// Len is the number of entries.
func (ws *WorkingSet) Len() int { return len(ws.order) }

// Entries lists the entries in insertion order.
func (ws *WorkingSet) Entries() []Entry {
	out := make([]Entry, 0, len(ws.order))
	for _, id := range ws.order {
		out = append(out, Entry{ID: id, Config: ws.icons[id]})
	}
	return out
}

// Remove deletes the entry unconditionally. It reports whether one existed.
func (ws *WorkingSet) Remove(id string) bool {
	if _, ok := ws.icons[id]; !ok {
		return false
	}
	delete(ws.icons, id)
	for i, existing := range ws.order {
		if existing == id {
			ws.order = append(ws.order[:i], ws.order[i+1:]...)
			break
		}
	}
	ws.changed()
	return true
}

// Load applies the entry stored under id to target. A different, valid active
// configuration is persisted first so in-progress edits are kept; if that
// overwrite is declined nothing is loaded.
func (ws *WorkingSet) Load(id string, target LoadTarget) error {
	return ws.load(id, target, false)
}

// LoadConfirmed is Load with the overwrite of the active entry already confirmed.
func (ws *WorkingSet) LoadConfirmed(id string, target LoadTarget) error {
	return ws.load(id, target, true)
}

func (ws *WorkingSet) load(id string, target LoadTarget, confirmed bool) error {
	cfg, ok := ws.icons[id]
	if !ok {
		err := errors.Wrapf(model.ErrNotFound, "working set entry %s", id)
		ws.notifier.Notify("Icon configuration not found", SeverityError)
		return err
	}
	if err := cfg.Validate(); err != nil {
		ws.notifier.Notify("Invalid icon configuration", SeverityError)
		return errors.Wrapf(err, "working set entry %s", id)
	}

	if current, ok := target.Current(); ok && current.Validate() == nil {
		if ws.identify(ws.stamped(current)) != id {
			if err := ws.writeBack(current, confirmed); err != nil {
				return err
			}
		}
	}

	if err := target.Apply(cfg); err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to load icon configuration")
		ws.notifier.Notify("Failed to load icon configuration", SeverityError)
		return err
	}
	ws.changed()
	return nil
}

// ExportAll renders every entry into one theme stylesheet.
func (ws *WorkingSet) ExportAll() string {
	return ws.ExportAllWithOptions(ws.export)
}

// ExportAllWithOptions is ExportAll with explicit export options.
func (ws *WorkingSet) ExportAllWithOptions(opts render.ExportOptions) string {
	configs := make([]model.IconConfig, 0, len(ws.order))
	for _, id := range ws.order {
		configs = append(configs, ws.icons[id])
	}
	return render.ExportTheme(ws.ambient.Theme(), configs, ws.now(), opts)
}

func (ws *WorkingSet) changed() {
	if ws.onChange != nil {
		ws.onChange()
	}
}
