package handlers

import (
	"github.com/abrezinsky/luckydraw/internal/models"
	"github.com/abrezinsky/luckydraw/internal/services"
)

// CategoriesResponse lists every category with its winner count
type CategoriesResponse struct {
	Categories []models.CategoryCount `json:"categories"`
	Status     *services.Status       `json:"status"`
}

// DrawResponse is returned by the draw trigger
type DrawResponse struct {
	Skipped bool           `json:"skipped"`
	Winner  *models.Winner `json:"winner,omitempty"`
	Message string         `json:"message,omitempty"`
}

// HistoryResponse lists recent draws
type HistoryResponse struct {
	Draws []models.DrawRecord `json:"draws"`
}
