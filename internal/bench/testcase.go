package bench

import (
	"time"

	"github.com/segmentio/ksuid"

	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// callCounter is satisfied by any Algorithm embedding algorithm.Base;
// Result.Count is 0 for an algorithm that does not expose one.
type callCounter interface {
	CallCount() int
}

// TestCase pairs one failing input with the algorithms, caches, and
// oracle to run it against. Command-driven cases are built by layering
// an internal/debugger oracle on top rather than duplicated here.
type TestCase[T comparable] struct {
	File       string
	Input      configuration.Configuration[T]
	Algorithms []algorithm.Algorithm[T]
	// Caches lists the cache instances to run each algorithm against;
	// a nil entry means "no cache".
	Caches []cache.Cache[T]
	Oracle algorithm.Oracle[T]
}

// Validate reports whether the test case's own precondition holds:
// the unreduced input must itself reproduce FAIL.
func (tc TestCase[T]) Validate() bool {
	return tc.Oracle(tc.Input) == outcome.Fail
}

// Run executes every algorithm against every cache and collects one
// Result per combination.
func (tc TestCase[T]) Run() *ResultCollection {
	rc := NewResultCollection()
	for _, alg := range tc.Algorithms {
		for _, c := range tc.Caches {
			start := time.Now()
			reduced := alg.Run(tc.Input, tc.Oracle, c)
			elapsed := time.Since(start)

			count := 0
			if cc, ok := alg.(callCounter); ok {
				count = cc.CallCount()
			}

			cacheName := "None"
			if c != nil {
				cacheName = c.Name()
			}

			rc.Add(Result{
				File:       tc.File,
				Algorithm:  alg.Name(),
				Cache:      cacheName,
				InputSize:  tc.Input.Len(),
				OutputSize: reduced.Len(),
				Count:      count,
				Elapsed:    elapsed,
			})
		}
	}
	return rc
}

// Benchmark runs a batch of test cases and accumulates their results.
type Benchmark[T comparable] struct {
	// ID identifies one benchmark invocation for correlating log lines
	// across its test cases; it has no bearing on the result schema.
	ID          ksuid.KSUID
	TestCases   []TestCase[T]
	ResultsFile string
	Logger      algorithm.Logger
	Results     *ResultCollection
}

func NewBenchmark[T comparable](testCases []TestCase[T], resultsFile string) *Benchmark[T] {
	return &Benchmark[T]{
		ID:          ksuid.New(),
		TestCases:   testCases,
		ResultsFile: resultsFile,
		Results:     NewResultCollection(),
	}
}

// Validate reports, per test case, whether its input reproduces FAIL.
func (b *Benchmark[T]) Validate() []bool {
	out := make([]bool, len(b.TestCases))
	for i, tc := range b.TestCases {
		out[i] = tc.Validate()
		if b.Logger != nil {
			b.Logger("benchmark %s: validate %s => %v", b.ID, tc.File, out[i])
		}
	}
	return out
}

// Run executes every test case, appends its results to b.Results, and
// persists the collection to ResultsFile if one was given.
func (b *Benchmark[T]) Run() error {
	for _, tc := range b.TestCases {
		if b.Logger != nil {
			b.Logger("benchmark %s: running %s", b.ID, tc.File)
		}
		rc := tc.Run()
		for _, r := range rc.Results() {
			b.Results.Add(r)
		}
	}
	if b.ResultsFile == "" {
		return nil
	}
	return b.Results.Store(b.ResultsFile)
}
