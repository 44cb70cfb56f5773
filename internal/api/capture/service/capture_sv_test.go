package captureService

import (
	"ProjectMimic/internal/api/capture"
	"ProjectMimic/pkg/utils"
	"encoding/base64"
	"errors"
	"io"
	"regexp"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[string][]byte)}
}

func (f *fakeStore) Save(ctx context.Context, fileName string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[fileName] = data
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, fileName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, fileName)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func pngDataURI(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

var nameRe = regexp.MustCompile(`^[0-9a-f]{32}\.png$`)

func TestSaveImage(t *testing.T) {
	store := newFakeStore()
	svc := New(testLogger(), store, utils.New())

	fileName, err := svc.SaveImage(context.Background(), "view-1", pngDataURI("frame-bytes"))
	if err != nil {
		t.Fatalf("SaveImage() error = %v", err)
	}
	if !nameRe.MatchString(fileName) {
		t.Errorf("fileName %q does not match %s", fileName, nameRe)
	}
	if string(store.files[fileName]) != "frame-bytes" {
		t.Error("stored bytes do not match the decoded payload")
	}
	if svc.SavedFileName("view-1") != fileName {
		t.Error("saved-file reference not recorded")
	}
}

func TestSaveImageRejectsMalformedPayload(t *testing.T) {
	svc := New(testLogger(), newFakeStore(), utils.New())

	_, err := svc.SaveImage(context.Background(), "view-1", "not a data uri")
	if !errors.Is(err, capture.ErrInvalidImagePayload) {
		t.Errorf("error = %v, want ErrInvalidImagePayload", err)
	}
}

func TestSaveImageReportsStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	svc := New(testLogger(), store, utils.New())

	_, err := svc.SaveImage(context.Background(), "view-1", pngDataURI("x"))
	if !errors.Is(err, capture.ErrStoreFailed) {
		t.Errorf("error = %v, want ErrStoreFailed", err)
	}
	if svc.SavedFileName("view-1") != "" {
		t.Error("failed save must not record a file reference")
	}
}

func TestNewCaptureSupersedesOldSnapshot(t *testing.T) {
	store := newFakeStore()
	svc := New(testLogger(), store, utils.New())

	first, err := svc.SaveImage(context.Background(), "view-1", pngDataURI("one"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.SaveImage(context.Background(), "view-1", pngDataURI("two"))
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatal("second capture reused the first name")
	}
	if _, ok := store.files[first]; ok {
		t.Error("superseded snapshot must be removed")
	}
	if svc.SavedFileName("view-1") != second {
		t.Error("reference must point at the latest snapshot")
	}
}

func TestRetakeClearsCaptureState(t *testing.T) {
	store := newFakeStore()
	svc := New(testLogger(), store, utils.New())

	fileName, err := svc.SaveImage(context.Background(), "view-1", pngDataURI("one"))
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Retake(context.Background(), "view-1"); err != nil {
		t.Fatalf("Retake() error = %v", err)
	}

	if svc.SavedFileName("view-1") != "" {
		t.Error("retake must clear the saved-file reference")
	}
	if _, ok := store.files[fileName]; ok {
		t.Error("retake must discard the stored snapshot")
	}

	// A capture after retake starts clean.
	next, err := svc.SaveImage(context.Background(), "view-1", pngDataURI("fresh"))
	if err != nil {
		t.Fatal(err)
	}
	if string(store.files[next]) != "fresh" {
		t.Error("post-retake capture must store the new frame")
	}
}

func TestRetakeWithoutCaptureIsNoOp(t *testing.T) {
	svc := New(testLogger(), newFakeStore(), utils.New())

	if err := svc.Retake(context.Background(), "view-1"); err != nil {
		t.Errorf("Retake() on empty session error = %v", err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := newFakeStore()
	svc := New(testLogger(), store, utils.New())

	a, err := svc.SaveImage(context.Background(), "view-a", pngDataURI("a"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveImage(context.Background(), "view-b", pngDataURI("b")); err != nil {
		t.Fatal(err)
	}

	if err := svc.Retake(context.Background(), "view-b"); err != nil {
		t.Fatal(err)
	}

	if svc.SavedFileName("view-a") != a {
		t.Error("retake on one session must not touch another")
	}
}
