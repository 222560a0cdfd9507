package execrunner

import (
	"context"
	"runtime"
	"testing"

	"github.com/Iron-Ham/watch/internal/errors"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestOutputCombined(t *testing.T) {
	out := Output{Stdout: []byte("out\n"), Stderr: []byte("err\n")}
	if got := out.Combined(); got != "out\nerr\n" {
		t.Errorf("Combined() = %q, want %q", got, "out\nerr\n")
	}
	if got := (Output{}).Combined(); got != "" {
		t.Errorf("Combined() of empty output = %q, want empty", got)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		runner   Runner
		argv     []string
		wantArgs []string
		wantErr  error
	}{
		{
			name:     "shell mode joins arguments",
			runner:   Runner{Shell: "/bin/sh"},
			argv:     []string{"echo", "a", "b"},
			wantArgs: []string{"/bin/sh", "-c", "echo a b"},
		},
		{
			name:     "exec mode passes arguments through",
			runner:   Runner{Exec: true},
			argv:     []string{"echo", "a b"},
			wantArgs: []string{"echo", "a b"},
		},
		{
			name:    "missing command",
			runner:  Runner{Shell: "/bin/sh"},
			argv:    nil,
			wantErr: errors.ErrMissingCommand,
		},
		{
			name:    "blank shell",
			runner:  Runner{Shell: "  "},
			argv:    []string{"true"},
			wantErr: errors.ErrShellNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tt.runner.Command(tt.argv)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Command() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Command() unexpected error: %v", err)
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("Args = %q, want %q", cmd.Args, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestRun(t *testing.T) {
	skipOnWindows(t)
	r := &Runner{Shell: "/bin/sh"}

	t.Run("captures stdout and stderr", func(t *testing.T) {
		out, err := r.Run(context.Background(), []string{"echo out; echo err >&2"})
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if !out.Success || out.ExitCode != 0 {
			t.Errorf("Success = %v, ExitCode = %d, want true, 0", out.Success, out.ExitCode)
		}
		if got := out.Combined(); got != "out\nerr\n" {
			t.Errorf("Combined() = %q, want %q", got, "out\nerr\n")
		}
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		out, err := r.Run(context.Background(), []string{"exit", "3"})
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if out.Success || out.ExitCode != 3 {
			t.Errorf("Success = %v, ExitCode = %d, want false, 3", out.Success, out.ExitCode)
		}
	})

	t.Run("missing program is a spawn error", func(t *testing.T) {
		direct := &Runner{Exec: true}
		_, err := direct.Run(context.Background(), []string{"/nonexistent/watch-test-binary"})
		if !errors.Is(err, errors.ErrSpawnFailed) {
			t.Fatalf("Run() error = %v, want ErrSpawnFailed", err)
		}
		var execErr *errors.ExecError
		if !errors.As(err, &execErr) || execErr.Command != "/nonexistent/watch-test-binary" {
			t.Errorf("Run() error = %#v, want ExecError with command", err)
		}
	})

	t.Run("canceled context does not spawn", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := r.Run(ctx, []string{"true"}); !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	})
}
