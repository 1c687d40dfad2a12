// SPDX-License-Identifier: Apache-2.0

// Package repl is an interactive console for exploring an oracle: it
// reads one line at a time, classifies it as a byte Configuration, and
// prints the resulting Outcome. Useful for probing what a checked
// command's oracle actually considers failing before starting a long
// reduction.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"ddmin/internal/algorithm"
	"ddmin/internal/configuration"
)

// Prompt is printed before reading each line.
const Prompt = ">> "

// Start reads lines from in until EOF, classifies each against oracle,
// and writes "<outcome>  <line>" to out, with the line Go-quoted.
func Start(in io.Reader, out io.Writer, oracle algorithm.Oracle[byte]) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		cfg := configuration.New([]byte(line))
		o := oracle(cfg)
		fmt.Fprintf(out, "%s  %q\n", o, line)
	}
}
