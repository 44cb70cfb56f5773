package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/net/context"
)

type localStore struct {
	dir string
}

// NewLocalStore writes snapshots into a fixed, publicly servable directory.
func NewLocalStore(dir string) (IPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &localStore{dir: dir}, nil
}

// Save writes to a temp file in the same directory, then renames it into
// place. Readers never observe a half-written snapshot.
func (s *localStore) Save(ctx context.Context, fileName string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	final := filepath.Join(s.dir, fileName)
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	return nil
}

func (s *localStore) Delete(ctx context.Context, fileName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, filepath.Base(fileName)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
