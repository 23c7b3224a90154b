package handlers

// SelectRequest chooses the category for the next draw
type SelectRequest struct {
	Category string `json:"category"`
}

// BaseURLRequest sets the URL encoded in the operator QR code
type BaseURLRequest struct {
	BaseURL string `json:"base_url"`
}
