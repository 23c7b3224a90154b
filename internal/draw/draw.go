// Package draw picks lottery winners from a directory of candidate images
// and archives each winner under a per-category directory.
package draw

import (
	"math/rand/v2"
)

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

// NewPicker returns a Picker seeded from the runtime's random source.
func NewPicker() Picker {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Draw selects one element of pool uniformly at random and returns it along
// with the rest of the pool. pool is not modified.
func Draw(pool []string, picker Picker) (string, []string, error) {
	if len(pool) == 0 {
		return "", nil, ErrEmptyPool
	}

	i := picker.IntN(len(pool))
	remaining := make([]string, 0, len(pool)-1)
	remaining = append(remaining, pool[:i]...)
	remaining = append(remaining, pool[i+1:]...)
	return pool[i], remaining, nil
}
