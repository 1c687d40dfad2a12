package debugger

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"ddmin/internal/algorithm"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// Check classifies a finished child process invocation, typically by
// a substring match against stdout/stderr; the exit code is passed
// too for checkers that only care whether the command crashed.
type Check func(exitCode int, stdout, stderr []byte) outcome.Outcome

// CommandDebugger turns a command invocation into an
// algorithm.Oracle[byte]: it serialises the candidate configuration to
// the child's stdin, spawns it with a wall-clock Timeout, and maps the
// exit code plus captured stdout/stderr through Check. A timeout is
// reported as Unresolved, never as Fail or Pass: the algorithms treat
// Unresolved like Pass and reject the removal, the safe default when
// the oracle could not render a verdict in time.
type CommandDebugger struct {
	// Command is the executable to run; Args are passed as-is (the
	// candidate travels over stdin, not argv, for this variant).
	Command string
	Args    []string
	Timeout time.Duration
	Check   Check
}

// Oracle returns the algorithm.Oracle[byte] this CommandDebugger
// implements.
func (d CommandDebugger) Oracle() algorithm.Oracle[byte] {
	return func(cfg configuration.Configuration[byte]) outcome.Outcome {
		o, err := d.run(cfg.Elements())
		if err != nil {
			return outcome.Unresolved
		}
		return o
	}
}

func (d CommandDebugger) run(input []byte) (outcome.Outcome, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.Command, d.Args...)
	cmd.Stdin = bytes.NewReader(input)
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		killProcessGroup(cmd)
		return outcome.Unresolved, nil
	}

	exitCode := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return outcome.Unresolved, errors.Wrapf(err, "spawn %s", d.Command)
		}
		exitCode = exitErr.ExitCode()
	}
	return d.Check(exitCode, stdout.Bytes(), stderr.Bytes()), nil
}
