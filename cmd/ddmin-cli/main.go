// SPDX-License-Identifier: Apache-2.0

// Command ddmin-cli reduces a failing input file against a checked
// command: it writes each candidate to a file, runs the command, and
// keeps a removal only when the failure still reproduces.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/ddmin"
	"ddmin/internal/debugger"
	"ddmin/internal/hdd"
	"ddmin/internal/outcome"
	"ddmin/internal/probdd"
	"ddmin/internal/textparser"
	"ddmin/internal/tictocmin"
)

func main() {
	var (
		input     = flag.String("input", "", "path to the failing input file (required)")
		output    = flag.String("output", "", "path to write the reduced input (required)")
		configure = flag.String("config", "", "optional YAML config (algorithm, cache, parser, timeout, command, args)")
		algoFlag  = flag.String("algorithm", "ddmin", "ddmin | tictocmin | probdd | hdd")
		cacheFlag = flag.String("cache", "hash", "hash | tree | none")
		parser    = flag.String("parser", "record", "parser to use when -algorithm=hdd")
		timeout   = flag.Duration("timeout", 5*time.Second, "per-candidate timeout for the checked command")
		match     = flag.String("match", "", "if set, FAIL means this substring appears in the checked command's stderr; otherwise FAIL means it exits non-zero")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: ddmin-cli -input=crash.bin -output=reduced.bin [-config=ddmin.yaml] -- <command> [args...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config{
		Algorithm: *algoFlag,
		Cache:     *cacheFlag,
		Parser:    *parser,
		Timeout:   duration(*timeout),
	}
	if positional := flag.Args(); len(positional) > 0 {
		cfg.Command, cfg.Args = positional[0], positional[1:]
	}
	if *configure != "" {
		loaded, err := loadConfig(*configure)
		if err != nil {
			fail("%s", err)
		}
		cfg = mergeConfig(cfg, loaded)
	}

	if *input == "" || *output == "" || cfg.Command == "" {
		flag.Usage()
		os.Exit(2)
	}

	original, err := configuration.LoadBytes(*input)
	if err != nil {
		fail("read input: %s", err)
	}

	check := exitCodeCheck
	if *match != "" {
		check = substringCheck(*match)
	}
	fd := debugger.FileDebugger{
		Command: cfg.Command,
		Args:    cfg.Args,
		Timeout: time.Duration(cfg.Timeout),
		Check:   check,
	}
	oracle := fd.Oracle()

	if oracle(original) != outcome.Fail {
		color.Red("❌ input does not reproduce FAIL; nothing to reduce")
		os.Exit(1)
	}

	reduced, err := run(cfg, original, oracle)
	if err != nil {
		fail("%s", err)
	}

	if err := configuration.StoreBytes(*output, reduced); err != nil {
		fail("write output: %s", err)
	}

	color.Green("✅ reduced %d bytes to %d bytes (%s)", original.Len(), reduced.Len(), *output)
	printDiff(original, reduced)
}

func run(cfg config, input configuration.Configuration[byte], oracle algorithm.Oracle[byte]) (configuration.Configuration[byte], error) {
	if cfg.Algorithm == "hdd" {
		return runHDD(cfg, input, oracle)
	}
	return pickAlgorithm(cfg.Algorithm).Run(input, oracle, pickCache[byte](cfg.Cache)), nil
}

// runHDD always uses textparser.RecordParser: it is the only
// parsetree.Parser this repository ships a concrete implementation
// for. cfg.Parser is accepted and validated so a future second
// adapter has somewhere to plug in without changing the CLI's flag
// surface.
func runHDD(cfg config, input configuration.Configuration[byte], oracle algorithm.Oracle[byte]) (configuration.Configuration[byte], error) {
	if cfg.Parser != "" && cfg.Parser != "record" {
		return configuration.Configuration[byte]{}, errors.Errorf("unknown parser %q (only \"record\" is available)", cfg.Parser)
	}
	h := hdd.New[byte]()
	return h.Run(input, textparser.RecordParser{}, ddmin.New[int](), oracle, pickCache[byte](cfg.Cache))
}

func pickAlgorithm(name string) algorithm.Algorithm[byte] {
	switch name {
	case "tictocmin":
		return tictocmin.New[byte]()
	case "probdd":
		return probdd.New[byte]()
	default:
		return ddmin.New[byte]()
	}
}

func pickCache[T comparable](name string) cache.Cache[T] {
	switch name {
	case "tree":
		return cache.NewTreeCache[T]()
	case "none":
		return nil
	default:
		return cache.NewHashCache[T]()
	}
}

func exitCodeCheck(exitCode int, _, _ []byte) outcome.Outcome {
	if exitCode != 0 {
		return outcome.Fail
	}
	return outcome.Pass
}

func substringCheck(needle string) func(int, []byte, []byte) outcome.Outcome {
	return func(_ int, _, stderr []byte) outcome.Outcome {
		if bytes.Contains(stderr, []byte(needle)) {
			return outcome.Fail
		}
		return outcome.Pass
	}
}

func mergeConfig(flags, file config) config {
	if file.Algorithm != "" {
		flags.Algorithm = file.Algorithm
	}
	if file.Cache != "" {
		flags.Cache = file.Cache
	}
	if file.Parser != "" {
		flags.Parser = file.Parser
	}
	if file.Timeout != 0 {
		flags.Timeout = file.Timeout
	}
	if flags.Command == "" && file.Command != "" {
		flags.Command = file.Command
		flags.Args = file.Args
	}
	return flags
}

func printDiff(before, after configuration.Configuration[byte]) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before.Elements())),
		B:        difflib.SplitLines(string(after.Elements())),
		FromFile: "input",
		ToFile:   "reduced",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil || text == "" {
		return
	}
	fmt.Println(text)
}

func fail(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}
