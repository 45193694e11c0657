package handler

import (
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/portfolio/internal/sidebar"
	"github.com/portfolio/internal/view"
)

const (
	visitorSessionKey  = "visitor_id"
	defaultIdleTimeout = 30 * time.Minute
)

// Visitor is one browser's sidebar state. Handlers hold mu while they drive
// the navigator and flush the frame so responses never interleave.
type Visitor struct {
	Navigator *sidebar.Navigator
	Frame     *view.Frame

	mu       sync.Mutex
	lastSeen time.Time
}

// VisitorRegistry keeps a navigator per visitor id and drops the ones idle
// for longer than the timeout.
type VisitorRegistry struct {
	mu       sync.Mutex
	visitors map[string]*Visitor
	idle     time.Duration
	factory  func() *Visitor
	now      func() time.Time
}

// NewVisitorRegistry creates a registry building new visitors with factory.
func NewVisitorRegistry(idle time.Duration, factory func() *Visitor) *VisitorRegistry {
	if idle <= 0 {
		idle = defaultIdleTimeout
	}
	return &VisitorRegistry{
		visitors: make(map[string]*Visitor),
		idle:     idle,
		factory:  factory,
		now:      time.Now,
	}
}

// Start replaces any state for id with a fresh visitor.
func (r *VisitorRegistry) Start(id string) *Visitor {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()

	v := r.factory()
	v.lastSeen = r.now()
	r.visitors[id] = v
	return v
}

// Get returns the visitor for id, creating one when none is live. created
// reports whether the visitor is new.
func (r *VisitorRegistry) Get(id string) (v *Visitor, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()

	if existing, ok := r.visitors[id]; ok {
		existing.lastSeen = r.now()
		return existing, false
	}
	v = r.factory()
	v.lastSeen = r.now()
	r.visitors[id] = v
	return v, true
}

// Len reports how many visitors are tracked.
func (r *VisitorRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// Sweep evicts idle visitors and returns how many were removed.
func (r *VisitorRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *VisitorRegistry) sweepLocked() int {
	cutoff := r.now().Add(-r.idle)
	removed := 0
	for id, v := range r.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(r.visitors, id)
			removed++
		}
	}
	return removed
}

// visitorID returns the visitor id stored in the session cookie, issuing a
// new one when absent.
func visitorID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(visitorSessionKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	session.Set(visitorSessionKey, id)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
	return id
}
