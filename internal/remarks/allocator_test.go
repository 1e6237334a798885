package remarks

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLabels() map[string]struct{} {
	return map[string]struct{}{
		LabelInformed:   {},
		LabelOff:        {},
		LabelNoPick:     {},
		LabelNoResponse: {},
		LabelNoBene:     {},
	}
}

func countLabels(labels []string) map[string]int {
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

func TestAllocate_RejectsInvalidRowCount(t *testing.T) {
	a := NewAllocator()
	for _, n := range []int{0, -1, -100} {
		_, err := a.Allocate(n)
		require.ErrorIs(t, err, ErrInvalidRowCount, "n=%d", n)
	}
}

func TestAllocate_ExactLengthAndValidCategories(t *testing.T) {
	a := NewAllocator()
	valid := validLabels()

	for _, n := range []int{1, 2, 3, 7, 42, 100, 150, 999, 1000} {
		labels, err := a.Allocate(n)
		require.NoError(t, err, "n=%d", n)
		require.Len(t, labels, n, "n=%d", n)
		for i, l := range labels {
			_, ok := valid[l]
			require.True(t, ok, "n=%d row %d has unknown label %q", n, i, l)
		}
	}
}

func TestAllocate_ProportionsWithinRoundingTolerance(t *testing.T) {
	a := NewAllocator()

	for _, n := range []int{100, 150, 1000} {
		labels, err := a.Allocate(n)
		require.NoError(t, err)
		counts := countLabels(labels)

		ceilInformed := int(math.Ceil(0.70 * float64(n)))
		ceilOff := int(math.Ceil(0.25 * float64(n)))
		ceilNoPickResp := int(math.Ceil(0.045 * float64(n)))
		ceilNoBene := max(1, int(math.Ceil(0.005*float64(n))))

		// The working multiset holds the full ceilings; truncation to n can
		// drop at most the overshoot from any one category.
		overshoot := ceilInformed + ceilOff + ceilNoPickResp + ceilNoBene - n
		require.GreaterOrEqual(t, overshoot, 0, "n=%d", n)

		assertInRange := func(name string, got, ceil int) {
			assert.LessOrEqual(t, got, ceil, "n=%d category %s", n, name)
			assert.GreaterOrEqual(t, got, ceil-overshoot, "n=%d category %s", n, name)
		}
		assertInRange("informed", counts[LabelInformed], ceilInformed)
		assertInRange("off", counts[LabelOff], ceilOff)
		assertInRange("no pick/no response", counts[LabelNoPick]+counts[LabelNoResponse], ceilNoPickResp)
		assertInRange("no bene", counts[LabelNoBene], ceilNoBene)
	}
}

func TestAllocate_SingleRow(t *testing.T) {
	a := NewAllocator()
	labels, err := a.Allocate(1)
	require.NoError(t, err)
	require.Len(t, labels, 1)
	_, ok := validLabels()[labels[0]]
	assert.True(t, ok)
}

func TestAllocate_ConcurrentCallsShareOneSource(t *testing.T) {
	a := NewAllocator()
	valid := validLabels()

	// One allocator serves the whole worker pool; concurrent jobs must not
	// corrupt the shared random source (run under -race).
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				labels, err := a.Allocate(200)
				assert.NoError(t, err)
				assert.Len(t, labels, 200)
				for _, l := range labels {
					_, ok := valid[l]
					assert.True(t, ok, "unknown label %q", l)
				}
			}
		}()
	}
	wg.Wait()
}

func TestAllocate_OrderNotReproducibleAcrossCalls(t *testing.T) {
	a := NewAllocator()

	first, err := a.Allocate(1000)
	require.NoError(t, err)
	second, err := a.Allocate(1000)
	require.NoError(t, err)

	// 1000! orderings; two identical shuffles means a broken source.
	assert.NotEqual(t, first, second)
}

func TestAllocate_SeedMakesOutputDeterministic(t *testing.T) {
	first, err := NewAllocator(WithSeed(42)).Allocate(500)
	require.NoError(t, err)
	second, err := NewAllocator(WithSeed(42)).Allocate(500)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := NewAllocator(WithSeed(7)).Allocate(500)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
