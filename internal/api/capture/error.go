package capture

import "errors"

var (
	ErrInvalidImagePayload = errors.New("invalid image payload")
	ErrStoreFailed         = errors.New("failed to store snapshot")
)
