package repository

import (
	"time"

	"github.com/abrezinsky/luckydraw/internal/models"
)

func drawFixture() models.DrawRecord {
	return models.DrawRecord{
		ID:       "fixture",
		Category: "A",
		Source:   "photos/a.jpg",
		Status:   models.DrawFailed,
		Error:    "permission denied",
		DrawnAt:  time.Date(2024, 1, 19, 18, 0, 0, 0, time.UTC),
	}
}
