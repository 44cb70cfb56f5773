package captureService

import (
	"ProjectMimic/internal/api/capture"
	"ProjectMimic/internal/entity"
	contextPkg "ProjectMimic/pkg/context"
	"fmt"

	"golang.org/x/net/context"
)

const defaultSession = "default"

func (s *captureService) SaveImage(ctx context.Context, sessionID, dataURI string) (string, error) {
	if sessionID == "" {
		sessionID = defaultSession
	}

	img, err := s.utils.ParseImageDataURI(dataURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", capture.ErrInvalidImagePayload, err)
	}

	fileName, err := s.utils.NewSnapshotName(img.Ext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", capture.ErrStoreFailed, err)
	}

	if err := s.store.Save(ctx, fileName, img.Data); err != nil {
		return "", fmt.Errorf("%w: %v", capture.ErrStoreFailed, err)
	}

	s.mu.Lock()
	state, ok := s.sessions[sessionID]
	if !ok {
		state = &entity.CaptureState{}
		s.sessions[sessionID] = state
	}
	previous := state.SavedFileName
	state.SavedFileName = fileName
	s.mu.Unlock()

	// A new capture supersedes the old saved reference; the stale photo
	// is removed best-effort.
	if previous != "" && previous != fileName {
		if err := s.store.Delete(ctx, previous); err != nil {
			s.log.Warnf("Failed to remove superseded snapshot %s: %v", previous, err)
		}
	}

	s.log.WithField("request_id", contextPkg.GetRequestID(ctx)).
		Infof("Stored snapshot %s for session %s (%d bytes)", fileName, sessionID, len(img.Data))
	return fileName, nil
}

func (s *captureService) Retake(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		sessionID = defaultSession
	}

	s.mu.Lock()
	state, ok := s.sessions[sessionID]
	var discarded string
	if ok {
		discarded = state.SavedFileName
		state.SavedFileName = ""
	}
	s.mu.Unlock()

	if discarded != "" {
		if err := s.store.Delete(ctx, discarded); err != nil {
			s.log.WithField("request_id", contextPkg.GetRequestID(ctx)).
				Warnf("Failed to remove discarded snapshot %s: %v", discarded, err)
		}
	}

	return nil
}

func (s *captureService) SavedFileName(sessionID string) string {
	if sessionID == "" {
		sessionID = defaultSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.sessions[sessionID]; ok {
		return state.SavedFileName
	}
	return ""
}
