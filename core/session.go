package core

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/catalog"
	"github.com/ronmurphy/iconstudio/constant"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/ronmurphy/iconstudio/render"
	"github.com/sirupsen/logrus"
)

// State is the full editing state of a session: the configuration being
// composed plus the ambient view settings that are not part of it.
type State struct {
	model.IconConfig
	render.Ambient
}

// DefaultState is the state of a fresh session.
func DefaultState() State {
	return State{
		IconConfig: model.IconConfig{
			Library:        model.LibraryMaterial,
			Family:         model.LibraryMaterial.DefaultFamily(),
			PrimaryColor:   "#000000",
			SecondaryColor: "#666666",
			Weight:         400,
			Fill:           0,
			Grade:          0,
			Size:           24,
			Offset:         2,
			Opacity:        0.5,
			Effects:        model.NewEffects(),
			GradientAngle:  model.DefaultGradientAngle,
			Animation:      model.AnimationNone,
		},
		Ambient: render.DefaultAmbient(),
	}
}

// Patch is a partial edit of the session state. Nil fields are left unchanged.
type Patch struct {
	PrimaryColor   *string              `json:"primaryColor,omitempty"`
	SecondaryColor *string              `json:"secondaryColor,omitempty"`
	Weight         *int                 `json:"weight,omitempty"`
	Fill           *int                 `json:"fill,omitempty"`
	Grade          *int                 `json:"grade,omitempty"`
	Size           *int                 `json:"size,omitempty"`
	Offset         *float64             `json:"offset,omitempty"`
	Opacity        *float64             `json:"opacity,omitempty"`
	Effects        *model.Effects       `json:"effects,omitempty"`
	GradientAngle  *model.GradientAngle `json:"gradientAngle,omitempty"`
	Animation      *model.Animation     `json:"animation,omitempty"`
	Zoom           *int                 `json:"zoom,omitempty"`
	BlendMode      *model.BlendMode     `json:"blendMode,omitempty"`
	Rotation       *int                 `json:"rotation,omitempty"`
	DarkBackground *bool                `json:"darkBackground,omitempty"`
}

func (p Patch) apply(st *State) {
	if p.PrimaryColor != nil {
		st.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		st.SecondaryColor = *p.SecondaryColor
	}
	if p.Weight != nil {
		st.Weight = *p.Weight
	}
	if p.Fill != nil {
		st.Fill = *p.Fill
	}
	if p.Grade != nil {
		st.Grade = *p.Grade
	}
	if p.Size != nil {
		st.Size = *p.Size
	}
	if p.Offset != nil {
		st.Offset = *p.Offset
	}
	if p.Opacity != nil {
		st.Opacity = *p.Opacity
	}
	if p.Effects != nil {
		st.Effects = model.NewEffects(*p.Effects...)
	}
	if p.GradientAngle != nil {
		st.GradientAngle = *p.GradientAngle
	}
	if p.Animation != nil {
		st.Animation = *p.Animation
	}
	if p.Zoom != nil {
		st.Zoom = clampZoom(*p.Zoom)
	}
	if p.BlendMode != nil {
		st.BlendMode = *p.BlendMode
	}
	if p.Rotation != nil {
		st.Rotation = normalizeRotation(*p.Rotation)
	}
	if p.DarkBackground != nil {
		st.DarkBackground = *p.DarkBackground
	}
}

// SessionOptions configures a Session. Zero fields get defaults.
type SessionOptions struct {
	ID       string
	Catalog  *catalog.Loader
	Saved    SavedStore
	Glyphs   render.GlyphSource
	Notifier Notifier
	// Confirm gates working-set overwrites when auto-update is off.
	Confirm    Confirmer
	Identify   model.IdentifierFunc
	Now        func() time.Time
	AutoUpdate bool
	// PNGScale multiplies the size axis to get the default PNG edge length.
	PNGScale int
	Export   render.ExportOptions
}

// Session is one user's editing context: the state every render reads, the
// working set, and access to the catalog and saved configurations.
// It is not safe for concurrent use; callers serialise access.
type Session struct {
	id       string
	state    State
	working  *WorkingSet
	catalog  *catalog.Loader
	saved    SavedStore
	glyphs   render.GlyphSource
	notifier Notifier
	now      func() time.Time
	pngScale int
}

// NewSession creates a session in the default state.
func NewSession(opts SessionOptions) *Session {
	s := &Session{
		id:       opts.ID,
		state:    DefaultState(),
		catalog:  opts.Catalog,
		saved:    opts.Saved,
		glyphs:   opts.Glyphs,
		notifier: opts.Notifier,
		now:      opts.Now,
		pngScale: opts.PNGScale,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{}
	}
	if s.pngScale <= 0 {
		s.pngScale = 2
	}
	if s.catalog == nil {
		s.catalog = catalog.NewLoader()
	}
	s.working = NewWorkingSet(WorkingSetOptions{
		Identify:   opts.Identify,
		Ambient:    s,
		Confirm:    opts.Confirm,
		Notifier:   s.notifier,
		Now:        s.now,
		AutoUpdate: opts.AutoUpdate,
		Export:     opts.Export,
	})
	return s
}

// ID is the session identifier.
func (s *Session) ID() string { return s.id }

// State returns a copy of the editing state.
func (s *Session) State() State {
	st := s.state
	st.Effects = model.NewEffects(st.Effects...)
	return st
}

// Working is the session's working set.
func (s *Session) Working() *WorkingSet { return s.working }

// GradientAngle implements Ambient.
func (s *Session) GradientAngle() model.GradientAngle { return s.state.GradientAngle }

// Animation implements Ambient.
func (s *Session) Animation() model.Animation { return s.state.Animation }

// Theme implements Ambient.
func (s *Session) Theme() model.IconConfig { return s.state.IconConfig.Normalized() }

// Current implements LoadTarget.
func (s *Session) Current() (model.IconConfig, bool) {
	if s.state.Icon == "" {
		return model.IconConfig{}, false
	}
	return s.state.IconConfig.Normalized(), true
}

// Apply implements LoadTarget. The loaded configuration replaces the
// configuration part of the state; view settings are kept.
func (s *Session) Apply(cfg model.IconConfig) error {
	return s.mutate(func(st *State) {
		st.IconConfig = cfg.Normalized()
		st.Timestamp = 0
	})
}

// mutate applies fn to a copy of the state, validates the copy and swaps it in.
// On error the state is unchanged.
func (s *Session) mutate(fn func(st *State)) error {
	next := s.State()
	fn(&next)
	if err := validateState(next); err != nil {
		logrus.WithError(err).Debug("rejected session edit")
		return err
	}
	s.state = next
	return nil
}

func validateState(st State) error {
	cfg := st.IconConfig
	if cfg.Icon == "" {
		cfg.Icon = "placeholder"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := model.ParseBlendMode(string(st.BlendMode)); err != nil {
		return &model.FieldError{Field: "blendMode", Reason: err.Error()}
	}
	if st.Zoom < constant.MinZoom || st.Zoom > constant.MaxZoom {
		return &model.FieldError{Field: "zoom", Reason: fmt.Sprintf("must be between %d and %d", constant.MinZoom, constant.MaxZoom)}
	}
	return nil
}

// Config is the active configuration.
func (s *Session) Config() (model.IconConfig, error) {
	cfg, ok := s.Current()
	if !ok {
		return cfg, model.ErrNoSelection
	}
	return cfg, nil
}

// Catalog returns the loaded icon catalog.
func (s *Session) Catalog() (*catalog.Catalog, error) {
	return s.catalog.Catalog()
}

// Preview computes the preview mutation set of the active configuration.
func (s *Session) Preview() (render.Preview, error) {
	cfg, err := s.Config()
	if err != nil {
		return render.Preview{}, err
	}
	return render.Render(cfg, s.state.Ambient), nil
}

// CSS is the generated stylesheet fragment of the active configuration.
func (s *Session) CSS() (string, error) {
	cfg, err := s.Config()
	if err != nil {
		return "", err
	}
	return render.GenerateCSS(cfg, s.state.Ambient), nil
}

// ThemeCSS is the reusable theme of the active configuration and its file name.
func (s *Session) ThemeCSS() (string, string, error) {
	cfg, err := s.Config()
	if err != nil {
		return "", "", err
	}
	now := s.now()
	return render.ThemeCSS(cfg, now), render.ThemeFileName(cfg, now), nil
}

// PNG rasterises the active configuration. A non-positive size uses the
// configured multiple of the size axis.
func (s *Session) PNG(size int) ([]byte, string, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, "", err
	}
	if s.glyphs == nil {
		return nil, "", errors.New("png export needs a glyph source")
	}
	if size <= 0 {
		size = cfg.Size * s.pngScale
	}
	img, err := render.Rasterize(cfg, s.state.Ambient, size, s.glyphs)
	if err != nil {
		s.notifier.Notify("Error exporting PNG", SeverityError)
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), render.PNGFileName(cfg, size), nil
}

// SelectIcon makes name the active icon. Edits to the previously active
// configuration are persisted to the working set first; if that overwrite is
// declined the selection does not change. The new icon is then upserted.
func (s *Session) SelectIcon(ctx context.Context, name string) error {
	return s.selectIcon(ctx, name, false)
}

// SelectIconConfirmed is SelectIcon with the overwrite of the previous entry
// already confirmed.
func (s *Session) SelectIconConfirmed(ctx context.Context, name string) error {
	return s.selectIcon(ctx, name, true)
}

func (s *Session) selectIcon(ctx context.Context, name string, confirmed bool) error {
	name = strings.TrimSpace(name)
	cat, err := s.catalog.Catalog()
	if err != nil {
		return err
	}
	lib, fam := s.state.Library, s.state.Family
	if !cat.Contains(lib, fam, name) {
		msg := fmt.Sprintf("icon %q is not in %s", name, lib.DisplayName(fam))
		if suggestions := cat.Suggest(lib, fam, name, 3); len(suggestions) > 0 {
			msg += "; did you mean " + strings.Join(suggestions, ", ") + "?"
		}
		return errors.Wrap(model.ErrNotFound, msg)
	}

	if prev, ok := s.Current(); ok && prev.Icon != name {
		if err := s.working.writeBack(prev, confirmed || s.AutoSave(ctx)); err != nil {
			return err
		}
	}

	if err := s.mutate(func(st *State) { st.Icon = name }); err != nil {
		return err
	}
	if cfg, _ := s.Current(); !s.working.Persisted(cfg) {
		s.working.AddOrUpdate(cfg)
	}
	return nil
}

// SwitchLibrary changes the library, resets the family to its default and
// clears the selection.
func (s *Session) SwitchLibrary(lib model.Library) error {
	if !lib.Valid() {
		return &model.FieldError{Field: "library", Reason: "unknown library " + string(lib)}
	}
	return s.mutate(func(st *State) {
		st.Library = lib
		st.Family = lib.DefaultFamily()
		st.Icon = ""
	})
}

// SetFamily changes the family within the current library. The selection is
// kept only if the icon exists in the new family.
func (s *Session) SetFamily(fam model.Family) error {
	return s.mutate(func(st *State) {
		st.Family = fam
		if st.Icon == "" {
			return
		}
		if cat, err := s.catalog.Catalog(); err != nil || !cat.Contains(st.Library, fam, st.Icon) {
			st.Icon = ""
		}
	})
}

// Edit applies a partial update atomically. A gradient angle change, or an
// animation change while auto-update is on, silently refreshes the active
// icon's working-set entry.
func (s *Session) Edit(p Patch) error {
	if err := s.mutate(p.apply); err != nil {
		return err
	}
	cfg, ok := s.Current()
	if !ok {
		return nil
	}
	if p.GradientAngle != nil || (p.Animation != nil && s.working.AutoUpdate()) {
		s.working.UpdateWithoutConfirm(cfg)
	}
	return nil
}

// SwapColors exchanges the primary and secondary colours.
func (s *Session) SwapColors() error {
	return s.mutate(func(st *State) {
		st.PrimaryColor, st.SecondaryColor = st.SecondaryColor, st.PrimaryColor
	})
}

// ToggleEffect flips one effect and reports whether it is now active.
func (s *Session) ToggleEffect(e model.Effect) (bool, error) {
	if _, err := model.ParseEffect(string(e)); err != nil {
		return false, &model.FieldError{Field: "effects", Reason: err.Error()}
	}
	if err := s.mutate(func(st *State) { st.Effects = st.Effects.Toggle(e) }); err != nil {
		return false, err
	}
	return s.state.Effects.Has(e), nil
}

func clampZoom(z int) int {
	return max(constant.MinZoom, min(constant.MaxZoom, z))
}

func normalizeRotation(deg int) int {
	return ((deg % 360) + 360) % 360
}

func (s *Session) zoomBy(delta int) int {
	s.state.Zoom = clampZoom(s.state.Zoom + delta)
	return s.state.Zoom
}

// ZoomIn steps the preview zoom up by one button step.
func (s *Session) ZoomIn() int { return s.zoomBy(constant.ZoomButtonStep) }

// ZoomOut steps the preview zoom down by one button step.
func (s *Session) ZoomOut() int { return s.zoomBy(-constant.ZoomButtonStep) }

// ZoomWheel zooms by one wheel step; scrolling up (negative delta) zooms in.
func (s *Session) ZoomWheel(deltaY float64) int {
	if deltaY < 0 {
		return s.zoomBy(constant.ZoomWheelStep)
	}
	if deltaY > 0 {
		return s.zoomBy(-constant.ZoomWheelStep)
	}
	return s.state.Zoom
}

// ToggleBackground flips the preview backdrop and returns whether it is dark.
func (s *Session) ToggleBackground() bool {
	s.state.DarkBackground = !s.state.DarkBackground
	return s.state.DarkBackground
}

// SetBlendMode sets the preview blend mode.
func (s *Session) SetBlendMode(m model.BlendMode) error {
	return s.mutate(func(st *State) { st.BlendMode = m })
}

// SetRotation sets the rotation in degrees.
func (s *Session) SetRotation(deg int) {
	s.state.Rotation = normalizeRotation(deg)
}

// SetGradientAngle changes the gradient direction.
func (s *Session) SetGradientAngle(a model.GradientAngle) error {
	return s.Edit(Patch{GradientAngle: &a})
}

// SetAnimation changes the animation.
func (s *Session) SetAnimation(a model.Animation) error {
	a = a.OrNone()
	return s.Edit(Patch{Animation: &a})
}

// SetAutoUpdate toggles confirmation-free working-set overwrites.
func (s *Session) SetAutoUpdate(on bool) { s.working.SetAutoUpdate(on) }

// AddCurrent writes the active configuration to the working set. confirmed
// skips the overwrite confirmation.
func (s *Session) AddCurrent(confirmed bool) (string, error) {
	cfg, err := s.Config()
	if err != nil {
		return "", err
	}
	if confirmed {
		return s.working.UpdateWithoutConfirmE(cfg)
	}
	return s.working.AddOrUpdateE(cfg)
}

// LoadWorking applies a working-set entry to the session.
func (s *Session) LoadWorking(id string) error {
	return s.working.Load(id, s)
}

// LoadWorkingConfirmed is LoadWorking with the overwrite of the active entry
// already confirmed.
func (s *Session) LoadWorkingConfirmed(id string) error {
	return s.working.LoadConfirmed(id, s)
}

// RemoveWorking deletes a working-set entry.
func (s *Session) RemoveWorking(id string) error {
	if !s.working.Remove(id) {
		return errors.Wrapf(model.ErrNotFound, "working set entry %s", id)
	}
	return nil
}

// ExportAll renders the working set and returns the stylesheet and its file name.
func (s *Session) ExportAll() (string, string) {
	return s.working.ExportAll(), render.ExportFileName(s.now())
}
