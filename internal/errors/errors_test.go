package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExecError(t *testing.T) {
	err := NewExecError("spawn", ErrSpawnFailed).WithCommand("ls -l")

	want := "exec error [command=ls -l]: spawn: failed to run command"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrSpawnFailed) {
		t.Error("errors.Is(err, ErrSpawnFailed) = false, want true")
	}
}

func TestIOError(t *testing.T) {
	err := NewIOError("write screenshot", ErrScreenshot).WithPath("/tmp/shots")

	want := "io error [path=/tmp/shots]: write screenshot: screenshot error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := fmt.Errorf("iteration 3: %w", err)
	var ioErr *IOError
	if !errors.As(wrapped, &ioErr) {
		t.Fatal("errors.As(wrapped, *IOError) = false, want true")
	}
	if ioErr.Path != "/tmp/shots" {
		t.Errorf("Path = %q, want %q", ioErr.Path, "/tmp/shots")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"invalid config", Wrap(ErrInvalidConfig, "interval"), ExitSetupFailure},
		{"terminal setup", NewIOError("enter raw mode", ErrTerminal), ExitSetupFailure},
		{"spawn failure", NewExecError("spawn", ErrSpawnFailed), ExitFailure},
		{"plain error", errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	err := Wrap(ErrShellNotFound, "resolve shell")
	if err.Error() != "resolve shell: shell not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrShellNotFound) {
		t.Error("wrapped error should match sentinel")
	}
}
