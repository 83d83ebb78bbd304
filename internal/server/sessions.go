package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ronmurphy/iconstudio/core"
	"github.com/sirupsen/logrus"
)

const pendingNotifications = 20

// sessionEntry serialises the requests of one browser session.
type sessionEntry struct {
	mu       sync.Mutex
	session  *core.Session
	notes    *core.Recorder
	lastSeen time.Time
}

// registry maps session cookie ids to editing sessions.
type registry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	studio  *core.Studio
	ttl     time.Duration
	now     func() time.Time
}

func newRegistry(studio *core.Studio, ttl time.Duration) *registry {
	return &registry{
		entries: map[string]*sessionEntry{},
		studio:  studio,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *registry) get(id string) (*sessionEntry, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if ok {
		e.lastSeen = r.now()
	}
	return e, ok
}

func (r *registry) create() *sessionEntry {
	notes := core.NewRecorder(pendingNotifications)
	notifier := core.MultiNotifier{notes, core.LogNotifier{}}
	// browsers confirm overwrites themselves and retry with confirm=true
	s := r.studio.NewSession(uuid.NewString(), notifier, core.NeverConfirm)
	e := &sessionEntry{session: s, notes: notes, lastSeen: r.now()}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	r.entries[s.ID()] = e
	return e
}

// sweep drops sessions idle for longer than the ttl. Callers hold r.mu.
func (r *registry) sweep() {
	if r.ttl <= 0 {
		return
	}
	cutoff := r.now().Add(-r.ttl)
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			logrus.WithField("session", id).Debug("expired editing session")
		}
	}
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
