package models

import "time"

// Draw statuses recorded in the history
const (
	DrawRecorded = "recorded"
	DrawFailed   = "failed"
)

// DrawRecord is one row of the draw history
type DrawRecord struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	DrawnAt     time.Time `json:"drawn_at"`
}

// CategoryCount is a category with the number of winners archived under it
type CategoryCount struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Skip     bool   `json:"skip"`
	Selected bool   `json:"selected"`
}

// Winner describes the most recent successful draw
type Winner struct {
	DrawID      string    `json:"draw_id"`
	Category    string    `json:"category"`
	FileName    string    `json:"file_name"`
	Destination string    `json:"destination"`
	Remaining   int       `json:"remaining"`
	Count       int       `json:"count"`
	DrawnAt     time.Time `json:"drawn_at"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
