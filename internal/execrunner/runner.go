// Package execrunner runs the watched command once and captures its output.
package execrunner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Iron-Ham/watch/internal/errors"
)

// Output is the captured result of one run.
type Output struct {
	Stdout []byte
	Stderr []byte
	// ExitCode is the process exit code, or -1 when the process was
	// terminated by a signal and has none.
	ExitCode int
	Success  bool
}

// Combined returns stdout followed by stderr.
func (o Output) Combined() string {
	var b strings.Builder
	b.Grow(len(o.Stdout) + len(o.Stderr))
	b.Write(o.Stdout)
	b.Write(o.Stderr)
	return b.String()
}

// Runner starts commands either through a shell or directly.
type Runner struct {
	// Shell is the program invoked as `<Shell> -c "<command>"` in shell mode.
	Shell string
	// Exec runs argv[0] with the remaining arguments, bypassing the shell.
	Exec bool
}

// Command builds the process for argv without starting it.
func (r *Runner) Command(argv []string) (*exec.Cmd, error) {
	if len(argv) == 0 {
		return nil, errors.ErrMissingCommand
	}

	if r.Exec {
		return exec.Command(argv[0], argv[1:]...), nil
	}

	shell := strings.TrimSpace(r.Shell)
	if shell == "" {
		return nil, errors.ErrShellNotFound
	}
	return exec.Command(shell, "-c", strings.Join(argv, " ")), nil
}

// Run executes argv to completion. A non-zero exit is reported through
// Output, not as an error. ctx is only consulted before the process starts;
// a running command is never interrupted.
func (r *Runner) Run(ctx context.Context, argv []string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	cmd, err := r.Command(argv)
	if err != nil {
		return Output{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Output{}, errors.NewExecError("start process", fmt.Errorf("%w: %w", errors.ErrSpawnFailed, err)).
				WithCommand(strings.Join(argv, " "))
		}
	}

	return Output{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Success:  cmd.ProcessState.Success(),
	}, nil
}
