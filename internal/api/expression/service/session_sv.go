package expressionService

import (
	"ProjectMimic/internal/entity"
	"sync"
)

// Session is the per-view detection loop state: readiness gates, the
// lifecycle state machine and the cancellation epoch. A continuation may
// only act while it owns the epoch it captured.
type Session struct {
	ID string

	mu          sync.Mutex
	state       entity.SessionState
	epoch       uint64
	modelsReady bool
	videoReady  bool
	display     entity.Surface
	displaySet  bool
	surfaceSent bool
}

func newSession(id string) *Session {
	return &Session{
		ID:    id,
		state: entity.SessionIdle,
	}
}

// Begin moves Idle to WaitingForModels. Any other state is left alone.
func (s *Session) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == entity.SessionIdle {
		s.state = entity.SessionWaitingForModels
	}
}

// MarkModelsReady records the one-way false-to-true model readiness
// transition and advances WaitingForModels to WaitingForVideo.
func (s *Session) MarkModelsReady() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == entity.SessionStopped {
		return
	}

	s.modelsReady = true
	if s.state == entity.SessionWaitingForModels {
		s.state = entity.SessionWaitingForVideo
		if s.videoReady {
			s.state = entity.SessionRunning
		}
	}
}

// MarkVideoReady records playback readiness. The loop only enters Running
// when models are ready as well. Returns true on the first call that
// fixes the surface, so the caller can tell the client to size its canvas.
func (s *Session) MarkVideoReady(frame entity.Surface) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == entity.SessionStopped {
		return false
	}

	first := !s.videoReady
	s.videoReady = true
	if !s.displaySet && frame.Width > 0 && frame.Height > 0 {
		s.display = frame
		s.displaySet = true
	}

	if s.state == entity.SessionWaitingForVideo && s.modelsReady {
		s.state = entity.SessionRunning
	}

	return first
}

// SetDisplay pins the display-space dimensions used for box mapping.
// A zero dimension is ignored.
func (s *Session) SetDisplay(display entity.Surface) {
	if display.Width <= 0 || display.Height <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.display = display
	s.displaySet = true
}

// Stop is terminal. It bumps the epoch so pending continuations see they
// no longer own the session. Safe to call repeatedly.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.state = entity.SessionStopped
}

func (s *Session) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Owns reports whether a continuation that captured epoch may still act.
func (s *Session) Owns(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != entity.SessionStopped && s.epoch == epoch
}

func (s *Session) displaySurface() entity.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

func (s *Session) surfaceAnnounced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.surfaceSent {
		return true
	}
	s.surfaceSent = true
	return false
}

// sessionRegistry enforces at most one active stream handle per session ID.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*Session)}
}

// acquire registers a fresh session, stopping and replacing any prior
// holder of the same ID so the old handle cannot leak.
func (r *sessionRegistry) acquire(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.sessions[id]; ok {
		prev.Stop()
	}

	sess := newSession(id)
	r.sessions[id] = sess
	return sess
}

// release is idempotent and ignores handles that were already replaced.
func (r *sessionRegistry) release(s *Session) {
	if s == nil {
		return
	}

	s.Stop()

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.sessions[s.ID]; ok && current == s {
		delete(r.sessions, s.ID)
	}
}