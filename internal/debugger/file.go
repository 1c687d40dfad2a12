package debugger

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"

	"ddmin/internal/algorithm"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// placeholder is substituted with the candidate's file path in a
// FileDebugger's Args: the candidate is written to disk before the
// checked command runs against it rather than being piped over stdin.
const placeholder = "{}"

// FileDebugger turns a command invocation into an
// algorithm.Oracle[byte] by first writing the candidate configuration
// to a file (Path, or a fresh temp file per call when Path is empty)
// and substituting that path for placeholder in Args.
type FileDebugger struct {
	Command string
	Args    []string
	// Path, if set, is reused for every call. Leaving it empty creates
	// a fresh temp file per invocation instead, which is safer when
	// candidates may be tested concurrently below the oracle boundary.
	Path    string
	Timeout time.Duration
	Check   Check
}

func (d FileDebugger) Oracle() algorithm.Oracle[byte] {
	return func(cfg configuration.Configuration[byte]) outcome.Outcome {
		o, err := d.run(cfg.Elements())
		if err != nil {
			return outcome.Unresolved
		}
		return o
	}
}

func (d FileDebugger) run(input []byte) (outcome.Outcome, error) {
	path := d.Path
	cleanup := func() {}
	if path == "" {
		f, err := os.CreateTemp("", "ddmin-*")
		if err != nil {
			return outcome.Unresolved, errors.Wrap(err, "create candidate file")
		}
		path = f.Name()
		_ = f.Close()
		cleanup = func() { _ = os.Remove(path) }
	}
	defer cleanup()

	if err := os.WriteFile(path, input, 0o644); err != nil {
		return outcome.Unresolved, errors.Wrapf(err, "write candidate file %s", path)
	}

	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		args[i] = strings.ReplaceAll(a, placeholder, path)
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.Command, args...)
	setProcessGroup(cmd)

	var stdout, stderr strings.Builder
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
	return d.Check(exitCode, []byte(stdout.String()), []byte(stderr.String())), nil
}
