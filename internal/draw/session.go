package draw

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCooldown is how long the trigger stays disarmed after a draw.
const DefaultCooldown = time.Second

// State is the position of a Session in its draw cycle.
type State string

const (
	StateIdle    State = "idle"
	StateArmed   State = "armed"
	StateDrawing State = "drawing"
)

// Config describes where a Session reads candidates and files winners.
type Config struct {
	SourceDir   string
	WinnersRoot string
	// Categories is the closed set of labels, in display order.
	Categories []string
	// Skip is the category that performs no draw. It may be empty.
	Skip     string
	Cooldown time.Duration
	Picker   Picker
}

// Result describes one completed draw.
type Result struct {
	Category    string    `json:"category"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Remaining   int       `json:"remaining"`
	Count       int       `json:"count"`
	Skipped     bool      `json:"skipped"`
	DrawnAt     time.Time `json:"drawn_at"`

	// CountErr is set when the winner moved but Count could not be read.
	CountErr error `json:"-"`
}

// Session holds the operator's selection, the candidate pool and the
// re-arm guard for one run of the program.
type Session struct {
	cfg Config

	mu       sync.Mutex
	selected string
	canDraw  bool

	// drawing is read without mu so State does not wait on a running draw.
	drawing atomic.Bool

	// afterFunc and countWinners are replaced in tests.
	afterFunc    func(time.Duration, func()) *time.Timer
	countWinners func(winnersRoot, category string) (int, error)
	onRearm      func()
}

// NewSession validates cfg and returns an armed session with no category
// selected.
func NewSession(cfg Config) (*Session, error) {
	if cfg.SourceDir == "" || cfg.WinnersRoot == "" {
		return nil, fmt.Errorf("source and winners directories are required")
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("at least one category is required")
	}
	seen := make(map[string]bool, len(cfg.Categories))
	for _, c := range cfg.Categories {
		if c == "" {
			return nil, fmt.Errorf("category names must not be empty")
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}
	if cfg.Skip != "" && !seen[cfg.Skip] {
		return nil, fmt.Errorf("skip category %q is not in the category list", cfg.Skip)
	}
	if cfg.Picker == nil {
		cfg.Picker = NewPicker()
	}
	if cfg.Cooldown < 0 {
		cfg.Cooldown = 0
	}

	return &Session{
		cfg:          cfg,
		canDraw:      true,
		afterFunc:    time.AfterFunc,
		countWinners: CountWinners,
	}, nil
}

// Categories returns the closed category set in display order.
func (s *Session) Categories() []string {
	return slices.Clone(s.cfg.Categories)
}

// SkipCategory returns the no-draw category, or "".
func (s *Session) SkipCategory() string {
	return s.cfg.Skip
}

// OnRearm registers fn to run each time the trigger is armed again after a
// cooldown. fn runs on the timer goroutine.
func (s *Session) OnRearm(fn func()) {
	s.mu.Lock()
	s.onRearm = fn
	s.mu.Unlock()
}

// Select chooses the category for the next draw.
func (s *Session) Select(category string) error {
	if !slices.Contains(s.cfg.Categories, category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	s.mu.Lock()
	s.selected = category
	s.mu.Unlock()
	return nil
}

// Selected returns the current category, or "".
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// State reports Drawing while a draw runs, Armed when a category is chosen
// and the trigger is enabled, and Idle otherwise.
func (s *Session) State() State {
	if s.drawing.Load() {
		return StateDrawing
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.selected != "" && s.canDraw:
		return StateArmed
	default:
		return StateIdle
	}
}

// CanDraw reports whether the trigger is enabled.
func (s *Session) CanDraw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canDraw
}

// Trigger runs one draw for the selected category. The candidate pool is
// listed fresh and the winner leaves it only once its file has moved.
// After a successful draw the trigger is disarmed for the cooldown.
func (s *Session) Trigger() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == "" {
		return nil, ErrNoCategorySelected
	}
	if s.selected == s.cfg.Skip {
		return &Result{Category: s.selected, Skipped: true, DrawnAt: time.Now()}, nil
	}
	if !s.canDraw {
		return nil, ErrCooldown
	}

	s.drawing.Store(true)
	defer s.drawing.Store(false)

	candidates, err := ListCandidates(s.cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	winner, remaining, err := Draw(candidates, s.cfg.Picker)
	if err != nil {
		return nil, err
	}

	dest, err := RecordWinner(winner, s.selected, s.cfg.WinnersRoot)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Category:    s.selected,
		Source:      winner,
		Destination: dest,
		Remaining:   len(remaining),
		DrawnAt:     time.Now(),
	}
	// The file has moved; a failed count does not undo the draw.
	if result.Count, err = s.countWinners(s.cfg.WinnersRoot, s.selected); err != nil {
		result.CountErr = fmt.Errorf("count winners: %w", err)
	}
	s.disarm()
	return result, nil
}

// disarm lowers the guard and schedules the re-arm. Callers hold s.mu.
func (s *Session) disarm() {
	if s.cfg.Cooldown == 0 {
		return
	}
	s.canDraw = false
	s.afterFunc(s.cfg.Cooldown, func() {
		s.mu.Lock()
		s.canDraw = true
		fn := s.onRearm
		s.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

// Counts returns the archived winner count for every category.
func (s *Session) Counts() (map[string]int, error) {
	counts := make(map[string]int, len(s.cfg.Categories))
	for _, c := range s.cfg.Categories {
		if c == s.cfg.Skip {
			continue
		}
		n, err := CountWinners(s.cfg.WinnersRoot, c)
		if err != nil {
			return nil, fmt.Errorf("count %q: %w", c, err)
		}
		counts[c] = n
	}
	return counts, nil
}

// Candidates lists the current candidate pool without drawing.
func (s *Session) Candidates() ([]string, error) {
	return ListCandidates(s.cfg.SourceDir)
}
