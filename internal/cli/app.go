package cli

import (
	"context"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/catalog"
	"github.com/ronmurphy/iconstudio/core"
	"github.com/ronmurphy/iconstudio/internal/config"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/ronmurphy/iconstudio/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// catalogRetries is how often an HTTP catalog read is retried.
const catalogRetries = 3

// app is the studio wiring shared by every subcommand.
type app struct {
	cfg     *config.Config
	kv      store.KV
	saved   *store.SavedStore
	fetcher *catalog.Fetcher
	loader  *catalog.Loader
	studio  *core.Studio
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	kv, err := store.Open(cfg.StoreBackend, cfg.DataDir, cfg.StoreFormat)
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}
	saved := store.NewSavedStore(kv)
	if err := saved.SeedAutoSave(ctx, cfg.AutoSave); err != nil {
		logrus.WithError(err).Warn("could not store the auto-save preference")
	}

	loader := catalog.NewLoader()
	glyphs, err := core.NewFontGlyphs(cfg.FontDir, loader)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	studio, err := core.NewStudio(core.StudioOptions{
		Catalog:            loader,
		Saved:              saved,
		Glyphs:             glyphs,
		IdentifierStrategy: model.IdentifierStrategy(cfg.IdentifierStrategy),
		AutoUpdate:         cfg.AutoUpdate,
		PNGScale:           cfg.DefaultPNGScale,
		FileTypeAliases:    cfg.FileTypeAliases,
	})
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return &app{
		cfg:     cfg,
		kv:      kv,
		saved:   saved,
		fetcher: catalog.NewFetcher(catalogRetries),
		loader:  loader,
		studio:  studio,
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

func (a *app) source() catalog.Source {
	return catalog.Source{
		Material:           a.cfg.MaterialCatalog,
		FontAwesome:        a.cfg.FontAwesomeCatalog,
		MaterialCodepoints: a.cfg.MaterialCodepoints,
	}
}

// loadCatalog is the catalog.LoadFunc reading the configured sources.
func (a *app) loadCatalog(ctx context.Context, progress func(string)) (*catalog.Catalog, error) {
	return a.fetcher.Load(ctx, a.source(), progress)
}

// readyCatalog loads the catalog synchronously.
func (a *app) readyCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if err := a.loader.Run(ctx, a.loadCatalog); err != nil {
		return nil, err
	}
	return a.loader.Catalog()
}

// session opens a terminal editing session.
func (a *app) session(cmd *cobra.Command, assumeYes bool) *core.Session {
	return a.studio.NewSession("", core.TerminalNotifier{Out: cmd.ErrOrStderr()}, terminalConfirmer(assumeYes))
}

// terminalConfirmer asks on the terminal. Without a terminal every overwrite
// is declined unless assumeYes is set.
func terminalConfirmer(assumeYes bool) core.Confirmer {
	if assumeYes {
		return core.AlwaysConfirm
	}
	return core.ConfirmFunc(func(prompt string) bool {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			logrus.WithField("prompt", prompt).Debug("no terminal, declining")
			return false
		}
		ok := false
		if err := survey.AskOne(&survey.Confirm{Message: prompt, Default: false}, &ok); err != nil {
			logrus.WithError(err).Warn("confirmation prompt failed")
			return false
		}
		return ok
	})
}
