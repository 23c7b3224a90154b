package draw

import (
	"errors"
	"testing"

	apperrors "github.com/abrezinsky/luckydraw/internal/errors"
)

// seqPicker returns its values in order, each reduced modulo n.
type seqPicker struct {
	values []int
	next   int
}

func (p *seqPicker) IntN(n int) int {
	if len(p.values) == 0 {
		return 0
	}
	v := p.values[p.next%len(p.values)]
	p.next++
	return v % n
}

func TestDraw_EmptyPool(t *testing.T) {
	_, _, err := Draw(nil, &seqPicker{})
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if apperrors.KindOf(err) != apperrors.ErrConflict {
		t.Errorf("expected conflict kind, got %v", apperrors.KindOf(err))
	}
}

func TestDraw_RemovesWinner(t *testing.T) {
	pool := []string{"a", "b", "c"}

	winner, remaining, err := Draw(pool, &seqPicker{values: []int{1}})
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if winner != "b" {
		t.Errorf("expected b, got %s", winner)
	}
	if len(remaining) != 2 || remaining[0] != "a" || remaining[1] != "c" {
		t.Errorf("expected [a c], got %v", remaining)
	}
	if len(pool) != 3 || pool[1] != "b" {
		t.Errorf("input pool was modified: %v", pool)
	}
}

func TestDraw_NeverRepeatsWithinRun(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f", "g"}
	picker := NewPicker()
	seen := make(map[string]bool)

	for len(pool) > 0 {
		winner, remaining, err := Draw(pool, picker)
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if seen[winner] {
			t.Fatalf("%s drawn twice", winner)
		}
		seen[winner] = true
		pool = remaining
	}

	if len(seen) != 7 {
		t.Errorf("expected 7 distinct winners, got %d", len(seen))
	}
	if _, _, err := Draw(pool, picker); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool after exhausting the pool, got %v", err)
	}
}

func TestDraw_CoversEveryIndex(t *testing.T) {
	pool := []string{"a", "b", "c"}
	got := make(map[string]bool)
	for i := 0; i < 3; i++ {
		winner, _, err := Draw(pool, &seqPicker{values: []int{i}})
		if err != nil {
			t.Fatal(err)
		}
		got[winner] = true
	}
	if len(got) != 3 {
		t.Errorf("expected each element to be selectable, got %v", got)
	}
}
