package expression

// FramePlan tells the client canvas exactly what to draw for one
// detection pass. The surface is always cleared first, so a plan with no
// box and no label leaves the overlay empty.
type FramePlan struct {
	Status  string       `json:"status"`
	Clear   bool         `json:"clear"`
	Surface *SurfaceSize `json:"surface,omitempty"`
	Box     *BoxPlan     `json:"box,omitempty"`
	Label   *LabelPlan   `json:"label,omitempty"`
}

const (
	StatusLoading = "loading"
	StatusOK      = "ok"
)

// SurfaceSize is sent once, on the first plan of a session, so the client
// sizes its drawing surface to the video's native resolution.
type SurfaceSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxPlan is the bounding rectangle in display-space coordinates.
type BoxPlan struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LabelPlan is the dominant-expression text, drawn stroked then filled.
type LabelPlan struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// DisplayHello is the optional first text message on the stream socket,
// fixing the client's display resolution for overlay alignment.
type DisplayHello struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// ModelStatusResponse reports model readiness for the loading screen.
type ModelStatusResponse struct {
	Ready bool `json:"ready"`
}
