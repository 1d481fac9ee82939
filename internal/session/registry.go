package session

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultLimit caps how many sessions a registry keeps.
const DefaultLimit = 1000

type entry struct {
	state State
	used  uint64 // registry clock at last access
}

// Registry keeps session state per browser session for the life of the
// process. Only IDs issued by NewID are tracked; once the registry is full
// the least recently used session is dropped.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry // session id -> state
	limit    int
	clock    uint64
}

func NewRegistry() *Registry {
	return NewRegistryWithLimit(DefaultLimit)
}

func NewRegistryWithLimit(limit int) *Registry {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Registry{sessions: make(map[string]*entry), limit: limit}
}

// NewID issues a session identifier and registers it with the initial state.
func (r *Registry) NewID() string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.limit {
		r.evictOldest()
	}
	r.clock++
	r.sessions[id] = &entry{state: New(), used: r.clock}
	return id
}

// Known reports whether id was issued by this registry and is still held.
func (r *Registry) Known(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok
}

// Get returns the state for id, or the initial state if none is stored.
func (r *Registry) Get(id string) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[id]; ok {
		r.clock++
		e.used = r.clock
		return e.state
	}
	return New()
}

// Put stores s for an issued id. Unknown ids are ignored.
func (r *Registry) Put(id string, s State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[id]; ok {
		r.clock++
		e.state, e.used = s, r.clock
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) evictOldest() {
	var (
		oldest string
		least  uint64
	)
	for id, e := range r.sessions {
		if oldest == "" || e.used < least {
			oldest, least = id, e.used
		}
	}
	delete(r.sessions, oldest)
}
