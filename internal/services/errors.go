package services

import apperrors "github.com/abrezinsky/luckydraw/internal/errors"

var (
	ErrNoWinnerYet     = apperrors.NotFound("no winner has been drawn yet")
	ErrBaseURLNotSet   = apperrors.Validation("base_url not configured")
	ErrDrawNotFound    = apperrors.NotFound("draw not found")
	ErrPreviewTooLarge = apperrors.InvalidInput("preview size must be between 1 and 4096")
)
