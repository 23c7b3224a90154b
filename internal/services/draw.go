package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/abrezinsky/luckydraw/internal/draw"
	apperrors "github.com/abrezinsky/luckydraw/internal/errors"
	"github.com/abrezinsky/luckydraw/internal/logger"
	"github.com/abrezinsky/luckydraw/internal/models"
	"github.com/abrezinsky/luckydraw/internal/repository"
)

// WebSocket message types sent by the draw service
const (
	MsgDrawResult = "draw_result"
	MsgDrawError  = "draw_error"
	MsgCounts     = "counts"
	MsgSelected   = "selected"
	MsgDrawReady  = "draw_ready"
)

// DrawOutcome is what the operator sees after pressing the trigger
type DrawOutcome struct {
	Skipped bool           `json:"skipped"`
	Winner  *models.Winner `json:"winner,omitempty"`
}

// Status summarises the session for the operator page
type Status struct {
	Selected   string `json:"selected"`
	State      string `json:"state"`
	CanDraw    bool   `json:"can_draw"`
	Candidates int    `json:"candidates"`

	// Winner is the draw on display; choosing a category clears it.
	Winner *models.Winner `json:"winner,omitempty"`
}

// DrawService runs draws on a session and records them in the history
type DrawService struct {
	log         logger.Logger
	repo        repository.DrawRepository
	session     Session
	broadcaster Broadcaster
	newID       func() string

	mu      sync.RWMutex
	last    *models.Winner
	showing *models.Winner
}

// NewDrawService creates a new DrawService
func NewDrawService(log logger.Logger, repo repository.DrawRepository, session Session) *DrawService {
	s := &DrawService{
		log:     log,
		repo:    repo,
		session: session,
		newID:   func() string { return uuid.NewString() },
	}
	session.OnRearm(func() {
		s.broadcast(MsgDrawReady, map[string]interface{}{"can_draw": true})
	})
	return s
}

// SetBroadcaster sets the target for live updates
func (s *DrawService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	s.broadcaster = b
	s.mu.Unlock()
}

func (s *DrawService) broadcast(msgType string, payload interface{}) {
	s.mu.RLock()
	b := s.broadcaster
	s.mu.RUnlock()
	if b != nil {
		b.BroadcastMessage(msgType, payload)
	}
}

// Categories returns every category with its archived winner count
func (s *DrawService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	counts, err := s.session.Counts()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to count winners")
	}

	selected := s.session.Selected()
	skip := s.session.SkipCategory()
	names := s.session.Categories()
	result := make([]models.CategoryCount, 0, len(names))
	for _, name := range names {
		result = append(result, models.CategoryCount{
			Name:     name,
			Count:    counts[name],
			Skip:     name == skip,
			Selected: name == selected,
		})
	}
	return result, nil
}

// Select chooses the category for the next draw
func (s *DrawService) Select(ctx context.Context, category string) error {
	if err := s.session.Select(category); err != nil {
		return err
	}
	s.mu.Lock()
	s.showing = nil
	s.mu.Unlock()
	s.log.Debug("Category selected", "category", category)
	s.broadcast(MsgSelected, map[string]interface{}{"category": category})
	return nil
}

// Draw triggers one draw and writes it to the history
func (s *DrawService) Draw(ctx context.Context) (*DrawOutcome, error) {
	res, err := s.session.Trigger()
	if err != nil {
		s.recordFailure(ctx, err)
		return nil, err
	}
	if res.Skipped {
		s.log.Info("Draw skipped", "category", res.Category)
		return &DrawOutcome{Skipped: true}, nil
	}

	winner := &models.Winner{
		DrawID:      s.newID(),
		Category:    res.Category,
		FileName:    filepath.Base(res.Source),
		Destination: res.Destination,
		Remaining:   res.Remaining,
		Count:       res.Count,
		DrawnAt:     res.DrawnAt,
	}

	s.mu.Lock()
	s.last = winner
	s.showing = winner
	s.mu.Unlock()

	s.log.Info("Winner drawn",
		"category", winner.Category,
		"file", winner.FileName,
		"destination", winner.Destination,
		"remaining", winner.Remaining)
	if res.CountErr != nil {
		s.log.Warn("Failed to count winners after draw", "category", winner.Category, "error", res.CountErr)
	}

	err = s.repo.SaveDraw(ctx, models.DrawRecord{
		ID:          winner.DrawID,
		Category:    winner.Category,
		Source:      res.Source,
		Destination: res.Destination,
		Status:      models.DrawRecorded,
		DrawnAt:     res.DrawnAt,
	})
	if err != nil {
		// The file has already moved; the archive is the source of truth.
		s.log.Warn("Failed to save draw history", "draw_id", winner.DrawID, "error", err)
	}

	s.broadcast(MsgDrawResult, winner)
	s.broadcastCounts(ctx)
	return &DrawOutcome{Winner: winner}, nil
}

// recordFailure logs a failed draw. Only relocation failures reach the
// history, since they are the only ones that picked a winner.
func (s *DrawService) recordFailure(ctx context.Context, err error) {
	var relErr *draw.RelocationError
	if !stderrors.As(err, &relErr) {
		if apperrors.KindOf(err) == apperrors.ErrInternal {
			s.log.Error("Draw failed", "error", err)
		} else {
			s.log.Debug("Draw refused", "error", err)
		}
		return
	}

	category := relErr.Category
	s.log.Error("Failed to move winner", "category", category, "source", relErr.Source, "error", relErr.Err)
	rec := models.DrawRecord{
		ID:          s.newID(),
		Category:    category,
		Source:      relErr.Source,
		Destination: relErr.Destination,
		Status:      models.DrawFailed,
		Error:       relErr.Err.Error(),
		DrawnAt:     time.Now(),
	}
	if saveErr := s.repo.SaveDraw(ctx, rec); saveErr != nil {
		s.log.Warn("Failed to save draw history", "draw_id", rec.ID, "error", saveErr)
	}
	s.broadcast(MsgDrawError, map[string]interface{}{
		"category": category,
		"file":     filepath.Base(relErr.Source),
		"error":    relErr.Err.Error(),
	})
}

func (s *DrawService) broadcastCounts(ctx context.Context) {
	cats, err := s.Categories(ctx)
	if err != nil {
		s.log.Warn("Failed to refresh counts", "error", err)
		return
	}
	s.broadcast(MsgCounts, cats)
}

// LastWinner returns the most recent winner of this run
func (s *DrawService) LastWinner(ctx context.Context) (*models.Winner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, ErrNoWinnerYet
	}
	w := *s.last
	return &w, nil
}

// Preview returns the latest winner's image as a JPEG no larger than
// maxDimension on either side.
func (s *DrawService) Preview(ctx context.Context, maxDimension uint) ([]byte, error) {
	if maxDimension == 0 || maxDimension > 4096 {
		return nil, ErrPreviewTooLarge
	}
	w, err := s.LastWinner(ctx)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(w.Destination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNotFound, "winner image is no longer in the archive")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to decode winner image")
	}

	thumb := resize.Thumbnail(maxDimension, maxDimension, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// History returns recent draws, newest first
func (s *DrawService) History(ctx context.Context, limit int) ([]models.DrawRecord, error) {
	return s.repo.ListDraws(ctx, limit)
}

// HistoryEntry returns one draw by id
func (s *DrawService) HistoryEntry(ctx context.Context, id string) (*models.DrawRecord, error) {
	rec, err := s.repo.GetDraw(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, ErrDrawNotFound
	}
	return rec, err
}

// HistorySummary counts history rows by status
func (s *DrawService) HistorySummary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountDraws(ctx)
}

// ClearHistory empties the audit log. Archived winner files are untouched.
func (s *DrawService) ClearHistory(ctx context.Context) error {
	if err := s.repo.ClearDraws(ctx); err != nil {
		return err
	}
	s.log.Info("Draw history cleared")
	return nil
}

// Status reports the selected category and whether a draw can run
func (s *DrawService) Status(ctx context.Context) (*Status, error) {
	candidates, err := s.session.Candidates()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to list candidates")
	}
	st := &Status{
		Selected:   s.session.Selected(),
		State:      string(s.session.State()),
		CanDraw:    s.session.CanDraw(),
		Candidates: len(candidates),
	}
	s.mu.RLock()
	if s.showing != nil {
		w := *s.showing
		st.Winner = &w
	}
	s.mu.RUnlock()
	return st, nil
}
