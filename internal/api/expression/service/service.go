package expressionService

import (
	"ProjectMimic/internal/api/expression"
	"ProjectMimic/internal/entity"
	"ProjectMimic/pkg/modelclient"

	"github.com/sirupsen/logrus"
)

type IExpressionService interface {
	// OpenSession acquires the stream handle for sessionID, releasing any
	// prior handle with the same ID first.
	OpenSession(sessionID string) *Session
	// CloseSession releases the handle. Releasing an already-released or
	// foreign handle is a no-op.
	CloseSession(s *Session)
	// SetDisplay fixes the client's display resolution for overlay mapping.
	SetDisplay(s *Session, display entity.Surface)
	// ProcessFrame runs one detection pass and returns the render plan.
	// It returns ErrSessionStopped when the session no longer owns its
	// epoch; the caller must not write anything in that case.
	ProcessFrame(s *Session, frame []byte) (*expression.FramePlan, error)
	ModelsReady() bool
}

type expressionService struct {
	log      *logrus.Logger
	detector modelclient.IModelClient
	registry *sessionRegistry
}

func New(log *logrus.Logger, detector modelclient.IModelClient) IExpressionService {
	return &expressionService{
		log:      log,
		detector: detector,
		registry: newSessionRegistry(),
	}
}

func (s *expressionService) ModelsReady() bool {
	return s.detector.Ready()
}
