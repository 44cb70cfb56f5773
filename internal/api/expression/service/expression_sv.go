package expressionService

import (
	"ProjectMimic/internal/api/expression"
	"ProjectMimic/internal/entity"
	"ProjectMimic/pkg/modelclient"
	"errors"
)

func (s *expressionService) OpenSession(sessionID string) *Session {
	sess := s.registry.acquire(sessionID)
	sess.Begin()
	if s.detector.Ready() {
		sess.MarkModelsReady()
	}

	s.log.Debugf("Opened detection session %s in state %s", sess.ID, sess.State())
	return sess
}

func (s *expressionService) CloseSession(sess *Session) {
	if sess == nil {
		return
	}
	s.registry.release(sess)
	s.log.Debugf("Released detection session %s", sess.ID)
}

func (s *expressionService) SetDisplay(sess *Session, display entity.Surface) {
	sess.SetDisplay(display)
}

// ProcessFrame is one loop iteration: gate on readiness, run the
// detection pass, then build the render plan. The caller awaits the
// returned plan before reading the next frame, so passes never overlap.
func (s *expressionService) ProcessFrame(sess *Session, frame []byte) (*expression.FramePlan, error) {
	epoch := sess.Epoch()

	if sess.State() == entity.SessionStopped {
		return nil, expression.ErrSessionStopped
	}

	// Fail closed while models are loading: the loop does not start and
	// the client stays on its loading screen.
	if !s.detector.Ready() {
		return &expression.FramePlan{Status: expression.StatusLoading, Clear: true}, nil
	}
	sess.MarkModelsReady()

	result, err := s.detector.Detect(frame)
	if err != nil {
		if errors.Is(err, modelclient.ErrModelsNotReady) {
			return &expression.FramePlan{Status: expression.StatusLoading, Clear: true}, nil
		}

		// A single failed pass is not fatal; this frame becomes "no face"
		// and the loop keeps going.
		s.log.Warnf("Detection pass failed for session %s: %v", sess.ID, err)
		result = entity.NoFace(sess.displaySurface())
	}

	sess.MarkVideoReady(result.Frame)

	// Post-cancellation guard: the session may have been torn down while
	// the inference was in flight.
	if !sess.Owns(epoch) {
		return nil, expression.ErrSessionStopped
	}

	display := sess.displaySurface()
	plan := BuildPlan(result, display)
	if display.Width > 0 && display.Height > 0 && !sess.surfaceAnnounced() {
		plan.Surface = &expression.SurfaceSize{Width: display.Width, Height: display.Height}
	}

	return plan, nil
}
