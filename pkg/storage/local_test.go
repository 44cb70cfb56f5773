package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/net/context"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	data := []byte("snapshot-bytes")
	if err := store.Save(context.Background(), "abc.png", data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("saved content = %q, want %q", got, data)
	}

	// No temp files may survive a successful save.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries after save, want 1", len(entries))
	}

	if err := store.Delete(context.Background(), "abc.png"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Deleting a missing file is a no-op.
	if err := store.Delete(context.Background(), "abc.png"); err != nil {
		t.Errorf("repeated Delete() error = %v", err)
	}
}

func TestLocalStoreOverwriteIsAtomic(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save(context.Background(), "abc.png", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(context.Background(), "abc.png", []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}
}

func TestLocalStoreCancelledContext(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Save(ctx, "abc.png", []byte("data")); err == nil {
		t.Error("Save() with cancelled context must fail")
	}
	if _, err := os.Stat(filepath.Join(dir, "abc.png")); !os.IsNotExist(err) {
		t.Error("no file may appear for a cancelled save")
	}
}
