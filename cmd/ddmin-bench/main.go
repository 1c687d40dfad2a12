// SPDX-License-Identifier: Apache-2.0

// Command ddmin-bench runs a matrix of (file, command, algorithm,
// cache) combinations and prints a result table: load the matrix,
// validate that every test case reproduces FAIL, run the benchmark,
// print the collected results.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"ddmin/internal/algorithm"
	"ddmin/internal/bench"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/ddmin"
	"ddmin/internal/debugger"
	"ddmin/internal/outcome"
	"ddmin/internal/probdd"
	"ddmin/internal/tictocmin"
)

func main() {
	configPath := flag.String("config", "", "YAML test-case matrix (required)")
	resultsOverride := flag.String("results", "", "override the matrix's results file path")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ddmin-bench -config=matrix.yaml [-results=results.json]")
		os.Exit(2)
	}

	m, err := loadMatrix(*configPath)
	if err != nil {
		fail("%s", err)
	}
	resultsFile := m.Results
	if *resultsOverride != "" {
		resultsFile = *resultsOverride
	}

	testCases, err := buildTestCases(m.Cases)
	if err != nil {
		fail("%s", err)
	}

	b := bench.NewBenchmark(testCases, resultsFile)
	b.Logger = func(format string, args ...any) { fmt.Printf(format+"\n", args...) }

	validations := b.Validate()
	if !allTrue(validations) {
		for i, ok := range validations {
			if !ok {
				color.Red("❌ test case %s does not reproduce FAIL", testCases[i].File)
			}
		}
		os.Exit(1)
	}

	if err := b.Run(); err != nil {
		fail("%s", err)
	}

	color.Green("✅ ran %d test case(s)", len(testCases))
	fmt.Println(b.Results.String())
}

func buildTestCases(entries []caseEntry) ([]bench.TestCase[byte], error) {
	var out []bench.TestCase[byte]
	for _, e := range entries {
		if e.Skip {
			continue
		}
		input, err := configuration.LoadBytes(e.File)
		if err != nil {
			return nil, err
		}

		timeout := time.Duration(e.Timeout)
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		fd := debugger.FileDebugger{
			Command: e.Command,
			Args:    e.Args,
			Timeout: timeout,
			Check:   matchCheck(e.Match),
		}

		out = append(out, bench.TestCase[byte]{
			File:       e.File,
			Input:      input,
			Algorithms: pickAlgorithms(e.Algorithms),
			Caches:     pickCaches(e.Caches),
			Oracle:     fd.Oracle(),
		})
	}
	return out, nil
}

func matchCheck(needle string) func(int, []byte, []byte) outcome.Outcome {
	return func(exitCode int, _, stderr []byte) outcome.Outcome {
		if needle == "" {
			if exitCode != 0 {
				return outcome.Fail
			}
			return outcome.Pass
		}
		if bytes.Contains(stderr, []byte(needle)) {
			return outcome.Fail
		}
		return outcome.Pass
	}
}

func pickAlgorithms(names []string) []algorithm.Algorithm[byte] {
	if len(names) == 0 {
		return []algorithm.Algorithm[byte]{ddmin.New[byte](), tictocmin.New[byte](), probdd.New[byte]()}
	}
	out := make([]algorithm.Algorithm[byte], 0, len(names))
	for _, n := range names {
		switch n {
		case "tictocmin":
			out = append(out, tictocmin.New[byte]())
		case "probdd":
			out = append(out, probdd.New[byte]())
		default:
			out = append(out, ddmin.New[byte]())
		}
	}
	return out
}

func pickCaches(names []string) []cache.Cache[byte] {
	if len(names) == 0 {
		return []cache.Cache[byte]{nil}
	}
	out := make([]cache.Cache[byte], 0, len(names))
	for _, n := range names {
		switch n {
		case "tree":
			out = append(out, cache.NewTreeCache[byte]())
		case "none":
			out = append(out, nil)
		default:
			out = append(out, cache.NewHashCache[byte]())
		}
	}
	return out
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

func fail(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}
