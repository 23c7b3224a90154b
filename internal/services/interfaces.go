package services

import (
	"context"

	"github.com/abrezinsky/luckydraw/internal/draw"
	"github.com/abrezinsky/luckydraw/internal/models"
)

// DrawServicer defines the interface for draw operations
type DrawServicer interface {
	Categories(ctx context.Context) ([]models.CategoryCount, error)
	Select(ctx context.Context, category string) error
	Draw(ctx context.Context) (*DrawOutcome, error)
	LastWinner(ctx context.Context) (*models.Winner, error)
	Preview(ctx context.Context, maxDimension uint) ([]byte, error)
	History(ctx context.Context, limit int) ([]models.DrawRecord, error)
	HistoryEntry(ctx context.Context, id string) (*models.DrawRecord, error)
	HistorySummary(ctx context.Context) (map[string]int, error)
	ClearHistory(ctx context.Context) error
	Status(ctx context.Context) (*Status, error)
}

// SettingsServicer defines the interface for operator settings
type SettingsServicer interface {
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	OperatorQR(ctx context.Context) ([]byte, error)
}

// Broadcaster pushes events to connected operator pages
type Broadcaster interface {
	BroadcastMessage(msgType string, payload interface{})
}

// Session is the part of *draw.Session the draw service drives
type Session interface {
	Categories() []string
	SkipCategory() string
	Select(category string) error
	Selected() string
	State() draw.State
	CanDraw() bool
	Trigger() (*draw.Result, error)
	Counts() (map[string]int, error)
	Candidates() ([]string, error)
	OnRearm(fn func())
}

var (
	_ DrawServicer     = (*DrawService)(nil)
	_ SettingsServicer = (*SettingsService)(nil)
	_ Session          = (*draw.Session)(nil)
)
