package ddmin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// printableOracle fails iff every digit 0-9 appears in the candidate.
func printableOracle(cfg configuration.Configuration[byte]) outcome.Outcome {
	s := string(cfg.Elements())
	for _, d := range "0123456789" {
		found := false
		for _, r := range s {
			if r == d {
				found = true
				break
			}
		}
		if !found {
			return outcome.Pass
		}
	}
	return outcome.Fail
}

func TestDDMinReducesToDigits(t *testing.T) {
	input := configuration.New([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890ABCDEFGHI"))

	d := New[byte]()
	result := d.Run(input, printableOracle, nil)

	assert.Equal(t, "1234567890", string(result.Elements()))
	assert.Equal(t, outcome.Fail, printableOracle(result))
}

// intervalOracle is unresolved without 5, fails when 3 and 7 are both
// present, and passes otherwise.
func intervalOracle(cfg configuration.Configuration[int]) outcome.Outcome {
	has := func(v int) bool {
		for _, e := range cfg.Elements() {
			if e == v {
				return true
			}
		}
		return false
	}
	if !has(5) {
		return outcome.Unresolved
	}
	if has(3) && has(7) {
		return outcome.Fail
	}
	return outcome.Pass
}

func TestDDMinIntervalOracle(t *testing.T) {
	input := configuration.New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	d := New[int]()
	result := d.Run(input, intervalOracle, nil)

	assert.Equal(t, []int{3, 5, 7}, result.Elements())
}

func TestDDMinAlreadyMinimal(t *testing.T) {
	input := configuration.New([]int{3, 5, 7})
	c := cache.NewHashCache[int]()

	d := New[int]()
	result := d.Run(input, intervalOracle, c)

	assert.Equal(t, []int{3, 5, 7}, result.Elements())
	assert.LessOrEqual(t, d.CallCount(), 6)
}

func TestDDMinCacheHitParity(t *testing.T) {
	input := configuration.New([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890ABCDEFGHI"))
	shared := cache.NewHashCache[byte]()

	first := New[byte]()
	firstResult := first.Run(input, printableOracle, shared)

	calls := 0
	countingOracle := func(cfg configuration.Configuration[byte]) outcome.Outcome {
		calls++
		return printableOracle(cfg)
	}

	second := New[byte]()
	secondResult := second.Run(input, countingOracle, shared)

	assert.True(t, firstResult.Equal(secondResult))
	assert.Equal(t, 0, calls, "second run sharing the cache should not invoke the oracle")
}

func TestDDMinIsDeterministic(t *testing.T) {
	input := configuration.New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	d1 := New[int]()
	r1 := d1.Run(input, intervalOracle, nil)
	d2 := New[int]()
	r2 := d2.Run(input, intervalOracle, nil)

	assert.True(t, r1.Equal(r2))
	assert.Equal(t, d1.CallCount(), d2.CallCount())
}

func TestDDMinIs1Minimal(t *testing.T) {
	input := configuration.New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	d := New[int]()
	result := d.Run(input, intervalOracle, nil)

	require.Equal(t, outcome.Fail, intervalOracle(result))

	for i := 0; i < result.Len(); i++ {
		without := result.Without(map[int]bool{i: true})
		assert.NotEqual(t, outcome.Fail, intervalOracle(without), "removing element %d should not still fail", i)
	}
}

func TestDDMinEmptyInput(t *testing.T) {
	var empty configuration.Configuration[byte]
	d := New[byte]()
	result := d.Run(empty, printableOracle, nil)
	assert.Equal(t, 0, result.Len())
}

func TestDDMinImplementsAlgorithm(t *testing.T) {
	var _ algorithm.Algorithm[byte] = New[byte]()
}
