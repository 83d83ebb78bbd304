package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/core"
	"github.com/sirupsen/logrus"
)

const (
	cookieName = "iconstudio"
	sessionKey = "sid"
)

// Options configures the HTTP server.
type Options struct {
	// SessionSecret signs the session cookie. Empty means a random key per process.
	SessionSecret string
	SecureCookie  bool
	// SessionTTL is how long an idle editing session is kept.
	SessionTTL time.Duration
}

// Server exposes a studio over HTTP. Each browser gets its own editing session.
type Server struct {
	echo     *echo.Echo
	studio   *core.Studio
	sessions *registry
}

// New builds the server and registers its routes.
func New(studio *core.Studio, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	secret := []byte(opts.SessionSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	cookies := sessions.NewCookieStore(secret)
	cookies.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.SecureCookie,
		MaxAge:   int(opts.SessionTTL / time.Second),
		SameSite: http.SameSiteLaxMode,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(e)
	e.Use(middleware.Recover())
	e.Use(accessLogger())
	e.Use(session.Middleware(cookies))

	s := &Server{
		echo:     e,
		studio:   studio,
		sessions: newRegistry(studio, opts.SessionTTL),
	}
	s.routes()
	return s
}

// accessLogger logs every request through logrus.
func accessLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"remote_ip": c.RealIP(),
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Debug("request")
			return nil
		},
	})
}

// Handler is the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("listen", addr).Info("icon studio listening")
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down http server")
	}
	return nil
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.GET("/status", s.status)
	api.GET("/catalog/:library/:family", s.catalogIcons)

	api.GET("/session", s.withSession(s.getSession))
	api.PATCH("/session", s.withSession(s.patchSession))
	api.POST("/session/library", s.withSession(s.switchLibrary))
	api.POST("/session/family", s.withSession(s.setFamily))
	api.POST("/session/select", s.withSession(s.selectIcon))
	api.POST("/session/swap", s.withSession(s.swapColors))
	api.POST("/session/zoom", s.withSession(s.zoom))
	api.POST("/session/effects/:effect", s.withSession(s.toggleEffect))

	api.GET("/preview", s.withSession(s.preview))
	api.GET("/css", s.withSession(s.css))
	api.GET("/theme", s.withSession(s.theme))
	api.GET("/png", s.withSession(s.png))

	api.GET("/working", s.withSession(s.listWorking))
	api.PUT("/working", s.withSession(s.putWorking))
	api.GET("/working/export", s.withSession(s.exportWorking))
	api.POST("/working/:id/load", s.withSession(s.loadWorking))
	api.DELETE("/working/:id", s.withSession(s.removeWorking))

	api.GET("/saved", s.withSession(s.listSaved))
	api.POST("/saved", s.withSession(s.saveCurrent))
	api.POST("/saved/:id/load", s.withSession(s.loadSaved))
	api.DELETE("/saved/:id", s.withSession(s.deleteSaved))

	api.GET("/preferences/autosave", s.withSession(s.getAutoSave))
	api.PUT("/preferences/autosave", s.withSession(s.putAutoSave))

	api.GET("/notifications", s.withSession(s.notifications))
}

type sessionHandler func(c echo.Context, e *sessionEntry) error

// withSession resolves the caller's editing session, creating one on first
// contact, and runs h while holding the session lock.
func (s *Server) withSession(h sessionHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := session.Get(cookieName, c)
		if cookie == nil {
			return errors.Wrap(err, "reading session cookie")
		}
		if err != nil {
			// signed with an old secret; start over
			logrus.WithError(err).Debug("discarding unreadable session cookie")
		}
		id, _ := cookie.Values[sessionKey].(string)
		entry, ok := s.sessions.get(id)
		if !ok {
			entry = s.sessions.create()
			cookie.Values[sessionKey] = entry.session.ID()
			if err := cookie.Save(c.Request(), c.Response()); err != nil {
				return errors.Wrap(err, "saving session cookie")
			}
		}

		entry.mu.Lock()
		defer entry.mu.Unlock()
		return h(c, entry)
	}
}
