// Package remarks assigns the REMARKS annotation labels: fixed category
// proportions over the row count, randomized assignment order.
package remarks

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
)

// ColumnName is the header of the appended annotation column.
const ColumnName = "REMARKS"

// Label categories.
const (
	LabelInformed   = "informed"
	LabelOff        = "off"
	LabelNoPick     = "no pick"
	LabelNoResponse = "no response"
	LabelNoBene     = "no bene"
)

// Category ratios applied to the row count, each rounded up.
const (
	ratioInformed         = 0.70
	ratioOff              = 0.25
	ratioNoPickOrResponse = 0.045
	ratioNoBene           = 0.005
)

// ErrInvalidRowCount is returned for row counts below 1.
var ErrInvalidRowCount = errors.New("row count must be at least 1")

// Allocator builds label multisets. Order is non-reproducible run-to-run
// unless a seed is injected. Safe for concurrent use: rand.Rand is not,
// so the source is mutex-guarded.
type Allocator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Allocator)

// WithSeed fixes the random source for deterministic output.
func WithSeed(seed uint64) Option {
	return func(a *Allocator) {
		a.rnd = rand.New(rand.NewPCG(seed, 0))
	}
}

func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Allocate returns exactly n labels whose category counts match the fixed
// ratios within one rounding unit each, in uniformly shuffled order.
func (a *Allocator) Allocate(n int) ([]string, error) {
	if n < 1 {
		return nil, ErrInvalidRowCount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	informed := ceilOf(ratioInformed, n)
	off := ceilOf(ratioOff, n)
	noPickOrResponse := ceilOf(ratioNoPickOrResponse, n)
	noBene := max(1, ceilOf(ratioNoBene, n))

	labels := make([]string, 0, informed+off+noPickOrResponse+noBene)
	for range informed {
		labels = append(labels, LabelInformed)
	}
	for range off {
		labels = append(labels, LabelOff)
	}
	for range noPickOrResponse {
		if a.rnd.IntN(2) == 0 {
			labels = append(labels, LabelNoPick)
		} else {
			labels = append(labels, LabelNoResponse)
		}
	}
	for range noBene {
		labels = append(labels, LabelNoBene)
	}

	// The independent ceilings normally overshoot n; pad with the dominant
	// label if they ever undershoot so the final truncation stays in range.
	for len(labels) < n {
		labels = append(labels, LabelInformed)
	}

	a.rnd.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})
	return labels[:n], nil
}

func ceilOf(ratio float64, n int) int {
	return int(math.Ceil(ratio * float64(n)))
}
