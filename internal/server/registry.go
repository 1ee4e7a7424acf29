package server

import (
	"errors"
	"sync"
)

// Registry maps game ids to live sessions. It is injected rather than held
// as a package-level variable so the engine stays a function library and
// tests can run against an isolated instance.
type Registry interface {
	Insert(s *Session) error
	Lookup(id string) (*Session, bool)
	Evict(id string)
}

var ErrGameExists = errors.New("game id already registered")

type MemoryRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *MemoryRegistry {
	return &MemoryRegistry{sessions: make(map[string]*Session)}
}

func (r *MemoryRegistry) Insert(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[s.ID()]; exists {
		return ErrGameExists
	}
	r.sessions[s.ID()] = s
	return nil
}

func (r *MemoryRegistry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *MemoryRegistry) Evict(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}
