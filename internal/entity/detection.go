package entity

// Box is a face bounding region in detector-space pixels.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Expressions maps an expression label to a confidence score in [0,1].
type Expressions map[string]float64

// Dominant returns the highest-confidence entry. The reduction seeds with
// the first entry and only replaces it on a strictly greater score, so on
// exact ties the winner depends on map iteration order.
func (e Expressions) Dominant() (string, float64) {
	var label string
	var best float64

	first := true
	for name, score := range e {
		if first || score > best {
			label = name
			best = score
			first = false
		}
	}

	return label, best
}

// Surface holds the pixel dimensions of a video frame or drawing surface.
type Surface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DetectionResult is one detection pass: either no face was found, or a
// bounding region plus expression confidences. Results are consumed
// immediately and never cached across frames.
type DetectionResult struct {
	FaceFound   bool        `json:"face_found"`
	Box         *Box        `json:"box,omitempty"`
	Expressions Expressions `json:"expressions,omitempty"`
	Frame       Surface     `json:"frame"`
}

// NoFace is the result used when a pass finds nothing or a single
// inference fails; the loop keeps running either way.
func NoFace(frame Surface) *DetectionResult {
	return &DetectionResult{FaceFound: false, Frame: frame}
}
