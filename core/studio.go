package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ronmurphy/iconstudio/catalog"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/ronmurphy/iconstudio/render"
	"github.com/sirupsen/logrus"
)

// StudioOptions holds what every session of a studio shares.
type StudioOptions struct {
	Catalog            *catalog.Loader
	Saved              SavedStore
	Glyphs             render.GlyphSource
	IdentifierStrategy model.IdentifierStrategy
	AutoUpdate         bool
	PNGScale           int
	FileTypeAliases    bool
	Now                func() time.Time
}

// Studio is the shared backend that editing sessions are created from.
type Studio struct {
	opts     StudioOptions
	identify model.IdentifierFunc
}

// NewStudio validates the options and returns a studio.
func NewStudio(opts StudioOptions) (*Studio, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.NewLoader()
	}
	identify, err := model.NewIdentifierFunc(opts.IdentifierStrategy, opts.Now)
	if err != nil {
		return nil, err
	}
	return &Studio{opts: opts, identify: identify}, nil
}

// Catalog is the shared catalog loader.
func (st *Studio) Catalog() *catalog.Loader { return st.opts.Catalog }

// StartCatalog begins loading the catalog in the background.
func (st *Studio) StartCatalog(ctx context.Context, load catalog.LoadFunc) {
	st.opts.Catalog.Start(ctx, load)
}

// NewSession creates an editing session. An empty id gets a random one.
func (st *Studio) NewSession(id string, notifier Notifier, confirm Confirmer) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	logrus.WithField("session", id).Debug("new editing session")
	return NewSession(SessionOptions{
		ID:         id,
		Catalog:    st.opts.Catalog,
		Saved:      st.opts.Saved,
		Glyphs:     st.opts.Glyphs,
		Notifier:   notifier,
		Confirm:    confirm,
		Identify:   st.identify,
		Now:        st.opts.Now,
		AutoUpdate: st.opts.AutoUpdate,
		PNGScale:   st.opts.PNGScale,
		Export:     st.ExportOptions(),
	})
}

// ExportOptions are the theme export settings, with codepoints resolved
// from the catalog once it is ready.
func (st *Studio) ExportOptions() render.ExportOptions {
	loader := st.opts.Catalog
	return render.ExportOptions{
		FileTypeAliases: st.opts.FileTypeAliases,
		Codepoints: func(c model.IconConfig) (rune, bool) {
			cat, err := loader.Catalog()
			if err != nil || cat == nil {
				return 0, false
			}
			return cat.Codepoint(c)
		},
	}
}
