package repository

import (
	"context"

	"github.com/abrezinsky/luckydraw/internal/models"
)

// DrawRepository defines draw history operations
type DrawRepository interface {
	SaveDraw(ctx context.Context, d models.DrawRecord) error
	GetDraw(ctx context.Context, id string) (*models.DrawRecord, error)
	ListDraws(ctx context.Context, limit int) ([]models.DrawRecord, error)
	CountDraws(ctx context.Context) (map[string]int, error)
	ClearDraws(ctx context.Context) error
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// FullRepository combines all repository interfaces
type FullRepository interface {
	DrawRepository
	SettingsRepository
}

var _ FullRepository = (*Repository)(nil)
