package bridge

import (
	"context"
	"sync"
)

// Session holds the Wails runtime context while the window is alive.
// The app attaches it in OnStartup and detaches it in OnShutdown.
type Session struct {
	mu  sync.RWMutex
	ctx context.Context
}

// NewSession creates a detached session
func NewSession() *Session {
	return &Session{}
}

func (s *Session) Attach(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
}

func (s *Session) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = nil
}

// Context returns the runtime context and whether one is attached
func (s *Session) Context() (context.Context, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx, s.ctx != nil
}
