package catalog

import (
	"context"
	"sync"

	fcore "github.com/frostbyte73/core"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/sirupsen/logrus"
)

// State is the lifecycle of the catalog load.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// LoadFunc produces the catalog, reporting stage messages through progress.
type LoadFunc func(ctx context.Context, progress func(string)) (*Catalog, error)

// Loader gates access to the catalog until the single load completes.
type Loader struct {
	done fcore.Fuse
	once sync.Once

	mu      sync.RWMutex
	catalog *Catalog
	err     error
	status  string
}

// NewLoader returns a loader in the loading state.
func NewLoader() *Loader {
	return &Loader{status: "Loading..."}
}

// Preloaded returns a loader that is already ready with c.
func Preloaded(c *Catalog) *Loader {
	l := NewLoader()
	l.once.Do(func() { l.finish(c, nil) })
	return l
}

// Start runs load in the background. Only the first call has an effect.
func (l *Loader) Start(ctx context.Context, load LoadFunc) {
	go func() { _ = l.Run(ctx, load) }()
}

// Run loads synchronously. Only the first call has an effect; later calls
// return the outcome of the first.
func (l *Loader) Run(ctx context.Context, load LoadFunc) error {
	l.once.Do(func() {
		c, err := load(ctx, l.setStatus)
		l.finish(c, err)
	})
	<-l.done.Watch()
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

func (l *Loader) finish(c *Catalog, err error) {
	l.mu.Lock()
	if err != nil {
		logrus.WithError(err).Error("Error loading icons")
		l.err = err
		l.status = "Error loading icons. Please refresh the page."
	} else {
		l.catalog = c
		l.status = ""
	}
	l.mu.Unlock()
	l.done.Break()
}

func (l *Loader) setStatus(msg string) {
	l.mu.Lock()
	l.status = msg
	l.mu.Unlock()
}

// State reports whether the load is pending, done or failed.
func (l *Loader) State() State {
	if !l.done.IsBroken() {
		return StateLoading
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return StateFailed
	}
	return StateReady
}

// Status is the current loading message.
func (l *Loader) Status() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Catalog returns the loaded catalog without waiting.
func (l *Loader) Catalog() (*Catalog, error) {
	if !l.done.IsBroken() {
		return nil, model.ErrCatalogNotReady
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog, l.err
}

// Wait blocks until the load finishes or ctx ends.
func (l *Loader) Wait(ctx context.Context) (*Catalog, error) {
	select {
	case <-l.done.Watch():
		return l.Catalog()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
