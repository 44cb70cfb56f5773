package capture

// SaveImageRequest carries one captured frame as a data URI
// ("data:image/<type>;base64,<payload>").
type SaveImageRequest struct {
	Image   string `json:"image" validate:"required"`
	Session string `json:"session"`
}

type SaveImageResponse struct {
	Success  bool   `json:"success"`
	FileName string `json:"fileName,omitempty"`
	Error    string `json:"error,omitempty"`
}

type RetakeRequest struct {
	Session string `json:"session"`
}

type RetakeResponse struct {
	Success bool `json:"success"`
}
