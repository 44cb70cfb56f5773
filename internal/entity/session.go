package entity

// SessionState is the detection loop's lifecycle state.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionWaitingForModels
	SessionWaitingForVideo
	SessionRunning
	SessionStopped
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionWaitingForModels:
		return "waiting_for_models"
	case SessionWaitingForVideo:
		return "waiting_for_video"
	case SessionRunning:
		return "running"
	case SessionStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// CaptureState is a session's snapshot-and-save state: at most one
// captured image and one saved file reference at a time.
type CaptureState struct {
	SavedFileName string
}
