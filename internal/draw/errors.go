package draw

import (
	"fmt"

	apperrors "github.com/abrezinsky/luckydraw/internal/errors"
)

var (
	ErrEmptyPool          = apperrors.Conflict("no candidates left to draw")
	ErrNoCategorySelected = apperrors.Validation("no category selected")
	ErrUnknownCategory    = apperrors.InvalidInput("unknown category")
	ErrCooldown           = apperrors.Unavailable("draw is cooling down")
)

// RelocationError reports a winner file that could not be moved into the
// winners archive. The file is left where it was.
type RelocationError struct {
	Category    string
	Source      string
	Destination string
	Err         error
}

func (e *RelocationError) Error() string {
	return fmt.Sprintf("move %s to %s: %v", e.Source, e.Destination, e.Err)
}

func (e *RelocationError) Unwrap() error {
	return e.Err
}
