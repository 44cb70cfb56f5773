package utils

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
)

// Minimal valid PNG header bytes, enough to round-trip through base64.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

func TestParseImageDataURI(t *testing.T) {
	u := New()

	tests := []struct {
		name    string
		uri     string
		wantErr error
		wantExt string
	}{
		{
			name:    "valid png",
			uri:     pngDataURI(),
			wantExt: "png",
		},
		{
			name:    "valid jpeg",
			uri:     "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF}),
			wantExt: "jpg",
		},
		{
			name:    "not a data URI",
			uri:     "https://example.com/cat.png",
			wantErr: ErrNotDataURI,
		},
		{
			name:    "missing base64 marker",
			uri:     "data:image/png,rawbytes",
			wantErr: errMalformedDataURI,
		},
		{
			name:    "no comma",
			uri:     "data:image/png;base64",
			wantErr: errMalformedDataURI,
		},
		{
			name:    "unsupported media type",
			uri:     "data:application/pdf;base64,QUJD",
			wantErr: ErrUnsupportedImage,
		},
		{
			name:    "invalid base64 payload",
			uri:     "data:image/png;base64,!!!not-base64!!!",
			wantErr: ErrInvalidBase64,
		},
		{
			name:    "empty payload",
			uri:     "data:image/png;base64,",
			wantErr: ErrInvalidBase64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := u.ParseImageDataURI(tt.uri)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Ext != tt.wantExt {
				t.Errorf("ext = %q, want %q", img.Ext, tt.wantExt)
			}
			if len(img.Data) == 0 {
				t.Error("decoded payload is empty")
			}
		})
	}
}

func TestNewSnapshotName(t *testing.T) {
	u := New()
	pattern := regexp.MustCompile(`^[0-9a-f]{32}\.png$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name, err := u.NewSnapshotName("png")
		if err != nil {
			t.Fatalf("NewSnapshotName() error = %v", err)
		}
		if !pattern.MatchString(name) {
			t.Fatalf("name %q does not match %s", name, pattern)
		}
		if seen[name] {
			t.Fatalf("name %q generated twice", name)
		}
		seen[name] = true
	}
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	id, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp() error = %v", err)
	}
	if len(id) != 26 {
		t.Errorf("ULID length = %d, want 26", len(id))
	}
	if strings.ToUpper(id) != id {
		t.Errorf("ULID %q is not canonical uppercase", id)
	}
}
