package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrNotDataURI       = errors.New("payload is not a data URI")
	ErrUnsupportedImage = errors.New("unsupported image media type")
	ErrInvalidBase64    = errors.New("invalid base64 payload")
	errMalformedDataURI = errors.New("malformed data URI")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ParseImageDataURI(uri string) (*DecodedImage, error)
	NewSnapshotName(ext string) (string, error)
}

type utils struct {
	maxImageSize int
}

func New() IUtils {
	return &utils{
		maxImageSize: 10 * 1024 * 1024,
	}
}

// DecodedImage is the result of unpacking a data-URI-encoded snapshot.
type DecodedImage struct {
	MediaType string
	Ext       string
	Data      []byte
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ParseImageDataURI unpacks "data:image/<type>;base64,<payload>" into raw bytes.
func (u *utils) ParseImageDataURI(uri string) (*DecodedImage, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, ErrNotDataURI
	}

	rest := strings.TrimPrefix(uri, "data:")
	comma := strings.Index(rest, ",")
	if comma == -1 {
		return nil, errMalformedDataURI
	}

	meta := rest[:comma]
	payload := rest[comma+1:]

	if !strings.HasSuffix(meta, ";base64") {
		return nil, errMalformedDataURI
	}
	mediaType := strings.TrimSuffix(meta, ";base64")

	ext, ok := extensionFor(mediaType)
	if !ok {
		return nil, ErrUnsupportedImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	if len(data) == 0 || len(data) > u.maxImageSize {
		return nil, ErrInvalidBase64
	}

	return &DecodedImage{
		MediaType: mediaType,
		Ext:       ext,
		Data:      data,
	}, nil
}

// NewSnapshotName returns a collision-resistant "<32 hex chars>.<ext>" name.
// The name is never derived from client input.
func (u *utils) NewSnapshotName(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + "." + ext, nil
}

func extensionFor(mediaType string) (string, bool) {
	switch mediaType {
	case "image/png":
		return "png", true
	case "image/jpeg", "image/jpg":
		return "jpg", true
	case "image/webp":
		return "webp", true
	default:
		return "", false
	}
}
