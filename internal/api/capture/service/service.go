package captureService

import (
	"ProjectMimic/internal/entity"
	"ProjectMimic/pkg/storage"
	"ProjectMimic/pkg/utils"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ICaptureService interface {
	// SaveImage decodes a data-URI snapshot and stores it under a
	// server-assigned random name, returning that name.
	SaveImage(ctx context.Context, sessionID, dataURI string) (string, error)
	// Retake discards the session's saved-file reference (and the stored
	// photo it pointed at) so the next capture starts clean.
	Retake(ctx context.Context, sessionID string) error
	// SavedFileName returns the session's current saved-file reference,
	// or "" when none exists.
	SavedFileName(sessionID string) string
}

type captureService struct {
	log   *logrus.Logger
	store storage.IPhotoStore
	utils utils.IUtils

	mu       sync.Mutex
	sessions map[string]*entity.CaptureState
}

func New(log *logrus.Logger, store storage.IPhotoStore, utils utils.IUtils) ICaptureService {
	return &captureService{
		log:      log,
		store:    store,
		utils:    utils,
		sessions: make(map[string]*entity.CaptureState),
	}
}
