package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/ddmin"
	"ddmin/internal/outcome"
	"ddmin/internal/tictocmin"
)

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

func TestResultReductionRatio(t *testing.T) {
	r := Result{InputSize: 10, OutputSize: 4}
	assert.InDelta(t, 0.6, r.ReductionRatio(), 1e-9)

	empty := Result{InputSize: 0, OutputSize: 0}
	assert.Equal(t, 1.0, empty.ReductionRatio())
}

func TestTestCaseValidateAndRun(t *testing.T) {
	tc := TestCase[int]{
		File:       "interval.txt",
		Input:      configuration.New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}),
		Algorithms: []algorithm.Algorithm[int]{ddmin.New[int](), tictocmin.New[int]()},
		Caches:     []cache.Cache[int]{nil, cache.NewHashCache[int]()},
		Oracle:     intervalOracle,
	}

	require.True(t, tc.Validate())

	rc := tc.Run()
	assert.Equal(t, 4, rc.Len())
	for _, r := range rc.Results() {
		assert.Equal(t, 10, r.InputSize)
		assert.LessOrEqual(t, r.OutputSize, r.InputSize)
	}
}

func TestBenchmarkRunStoresResults(t *testing.T) {
	dir := t.TempDir()
	resultsFile := filepath.Join(dir, "results.json")

	b := NewBenchmark([]TestCase[int]{{
		File:       "interval.txt",
		Input:      configuration.New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}),
		Algorithms: []algorithm.Algorithm[int]{ddmin.New[int]()},
		Caches:     []cache.Cache[int]{nil},
		Oracle:     intervalOracle,
	}}, resultsFile)

	require.True(t, allTrue(b.Validate()))
	require.NoError(t, b.Run())

	_, err := os.Stat(resultsFile)
	require.NoError(t, err)

	loaded, err := LoadResultCollection(resultsFile)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	assert.Equal(t, "DDMin", loaded.Results()[0].Algorithm)
}

func TestResultCollectionString(t *testing.T) {
	rc := NewResultCollection()
	rc.Add(Result{File: "a.txt", Algorithm: "DDMin", Cache: "None", InputSize: 10, OutputSize: 3, Count: 5})
	out := rc.String()
	assert.Contains(t, out, "Input Size")
	assert.Contains(t, out, "a.txt")
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}
