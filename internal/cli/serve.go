package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ronmurphy/iconstudio/internal/server"
	"github.com/sirupsen/logrus"
)

// serve loads the catalog in the background and serves until interrupted.
func serve(ctx context.Context, a *app) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.studio.StartCatalog(ctx, a.loadCatalog)
	if a.cfg.SessionSecret == "" {
		logrus.Warn("session_secret is not set; sessions will not survive a restart")
	}
	srv := server.New(a.studio, server.Options{SessionSecret: a.cfg.SessionSecret})
	return srv.Run(ctx, a.cfg.Listen)
}
