package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/watch/internal/config"
	"github.com/Iron-Ham/watch/internal/errors"
	"github.com/Iron-Ham/watch/internal/keymap"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=...".
var version = "dev"

// runFunc starts watching command with cfg and returns the exit code.
type runFunc func(ctx context.Context, cfg *config.Config, command []string) (int, error)

// Execute runs watch with args (without the program name) and returns the
// process exit code. Errors are reported on stderr.
func Execute(ctx context.Context, args []string) int {
	return execute(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := errors.ExitOK
	root := newRootCmd(viper.New(), func(ctx context.Context, cfg *config.Config, command []string) (int, error) {
		return watch(ctx, cfg, command, stdin, stdout)
	}, &code)
	root.SetArgs(normalizeArgs(args))
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "watch: %v\n", err)
		if errors.Is(err, errors.ErrInvalidConfig) {
			_ = root.Usage()
		}
		return errors.ExitCode(err)
	}
	return code
}

func newRootCmd(v *viper.Viper, run runFunc, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:   "watch [flags] command [args...]",
		Short: "Execute a program periodically, showing output fullscreen",
		Long: `watch runs command repeatedly, displaying its output and errors full screen.
By default the command runs every 2 seconds until interrupted.
Screenshots are written to --shotsdir.

` + keyHelp(keymap.Default()),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, errors.ErrMissingCommand)
			}
			return nil
		},
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			*code, err = run(cmd.Context(), cfg, args)
			return err
		},
	}

	// Stop at the first positional argument so the command keeps its flags.
	root.Flags().SetInterspersed(false)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	})

	f := root.Flags()
	f.BoolP("beep", "b", false, "beep if command has a non-zero exit")
	f.BoolP("color", "c", false, "interpret ANSI color and style sequences")
	f.BoolP("no-color", "C", false, "do not interpret ANSI color and style sequences")
	f.StringP("differences", "d", "", "highlight changes between updates (=permanent keeps the first output as the baseline)")
	f.Lookup("differences").NoOptDefVal = "changes"
	f.BoolP("errexit", "e", false, "exit if command has a non-zero exit")
	f.BoolP("follow", "f", false, "append output instead of redrawing the screen")
	f.BoolP("chgexit", "g", false, "exit when output from command changes")
	f.StringP("interval", "n", "", "seconds to wait between updates")
	f.BoolP("precise", "p", false, "attempt to run command in precise intervals")
	f.IntP("equexit", "q", -1, "exit when output from command does not change for the given number of cycles")
	f.BoolP("no-rerun", "r", false, "do not rerun program on window resize")
	f.StringP("shotsdir", "s", "", "directory to save screenshots to")
	f.BoolP("no-title", "t", false, "turn off header")
	f.BoolP("no-wrap", "w", false, "turn off line wrapping")
	f.BoolP("exec", "x", false, "pass command to exec instead of sh -c")
	f.String("config", "", fmt.Sprintf("config file (default %s)", config.ConfigFile()))
	f.String("log-level", "", "log level: debug, info, warn, error")
	f.String("log-dir", "", "write a debug log to this directory")

	bindFlags(v, f)
	return root
}

// keyHelp lists the keys understood while watching, one command per line.
func keyHelp(km *keymap.Keymap) string {
	var sb strings.Builder
	sb.WriteString("Keys while watching:\n")
	for _, cmd := range []keymap.Command{keymap.CmdQuit, keymap.CmdTrigger, keymap.CmdScreenshot} {
		bindings := km.BindingsForCommand(cmd)
		if len(bindings) == 0 {
			continue
		}
		names := make([]string, len(bindings))
		for i, b := range bindings {
			names[i] = b.String()
		}
		fmt.Fprintf(&sb, "  %-14s %s\n", strings.Join(names, ", "), bindings[0].Description)
	}
	return sb.String()
}

// flagKeys maps flags that pass straight through to their config keys.
// color, no-color, differences and config are translated in initConfig.
var flagKeys = map[string]string{
	"beep":      "beep",
	"errexit":   "errexit",
	"follow":    "follow",
	"chgexit":   "chgexit",
	"interval":  "interval",
	"precise":   "precise",
	"equexit":   "equexit",
	"no-rerun":  "no_rerun",
	"shotsdir":  "shotsdir",
	"no-title":  "no_title",
	"no-wrap":   "no_wrap",
	"exec":      "exec",
	"log-level": "logging.level",
	"log-dir":   "logging.dir",
}

func bindFlags(v *viper.Viper, f *pflag.FlagSet) {
	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

// initConfig loads defaults, the config file, and the flags whose values
// need translating before they reach viper.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	config.SetDefaults(v)

	f := cmd.Flags()
	cfgFile, _ := f.GetString("config")
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = config.ConfigFile()
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		// The default file is optional; a file named on the command line is not.
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: read %s: %w", errors.ErrInvalidConfig, cfgFile, err)
		}
	}

	color, _ := f.GetBool("color")
	noColor, _ := f.GetBool("no-color")
	switch {
	case color && noColor:
		return fmt.Errorf("%w: options --color and --no-color are mutually exclusive", errors.ErrInvalidConfig)
	case color:
		v.Set("color", "always")
	case noColor:
		v.Set("color", "never")
	}

	if f.Changed("differences") {
		mode, _ := f.GetString("differences")
		if strings.TrimSpace(mode) == "" {
			mode = "changes"
		}
		v.Set("differences", mode)
	}

	if f.Changed("log-dir") || f.Changed("log-level") {
		v.Set("logging.enabled", true)
	}
	return nil
}

// valueFlags are the flags that consume the following argument.
var valueFlags = map[string]bool{
	"-n": true, "--interval": true,
	"-q": true, "--equexit": true,
	"-s": true, "--shotsdir": true,
	"--config": true, "--log-level": true, "--log-dir": true,
}

// normalizeArgs rewrites the attached forms of -d (-d=permanent, -d1) into
// --differences=VALUE. Only watch's own flags are rewritten; everything
// from the command onwards is passed through untouched.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--" || arg == "-" || !strings.HasPrefix(arg, "-"):
			return append(out, args[i:]...)
		case arg == "-d":
			out = append(out, arg)
		case strings.HasPrefix(arg, "-d"):
			out = append(out, "--differences="+strings.TrimPrefix(arg[2:], "="))
		default:
			out = append(out, arg)
			if takesValue(arg) && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		}
	}
	return out
}

func takesValue(arg string) bool {
	if valueFlags[arg] {
		return true
	}
	// A shorthand cluster such as -pn consumes a value when it ends in a
	// value flag.
	if len(arg) > 2 && arg[1] != '-' && !strings.Contains(arg, "=") {
		return valueFlags["-"+arg[len(arg)-1:]] && isShorthandCluster(arg[1:])
	}
	return false
}

func isShorthandCluster(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("bcCdefgnpqrstwx", c) {
			return false
		}
	}
	return true
}
