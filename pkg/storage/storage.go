package storage

import (
	"fmt"
	"os"

	"golang.org/x/net/context"
)

// IPhotoStore persists captured snapshots under server-assigned names.
//
// Implementations must be atomic at the storage boundary: a snapshot is
// either fully visible under its final name or not visible at all.
type IPhotoStore interface {
	Save(ctx context.Context, fileName string, data []byte) error
	Delete(ctx context.Context, fileName string) error
}

// New selects the backend from PHOTO_STORAGE ("local" or "s3").
func New() (IPhotoStore, error) {
	backend := os.Getenv("PHOTO_STORAGE")
	switch backend {
	case "", "local":
		dir := os.Getenv("PHOTO_DIR")
		if dir == "" {
			dir = "./public/photos"
		}
		return NewLocalStore(dir)
	case "s3":
		return NewS3Store()
	default:
		return nil, fmt.Errorf("unknown photo storage backend: %q", backend)
	}
}
