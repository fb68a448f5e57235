package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/whichshell/internal/config"
	"github.com/pranshuparmar/whichshell/internal/detect"
	"github.com/pranshuparmar/whichshell/internal/logging"
	"github.com/pranshuparmar/whichshell/internal/output"
	"github.com/pranshuparmar/whichshell/internal/proc"
	"github.com/pranshuparmar/whichshell/internal/shell"
	"github.com/pranshuparmar/whichshell/pkg/model"
)

var (
	flagPID            int
	flagJSON           bool
	flagShort          bool
	flagTree           bool
	flagNoFallback     bool
	flagPreferLoginEnv bool
	flagEnvVar         string
	flagProvider       string
	flagSnapshot       string
	flagMaxDepth       int
	flagShells         []string
	flagNotShells      []string
	flagConfig         string
	flagLogLevel       string
	flagNoColor        bool
)

// settings is the merged view of defaults, config file and flags for one run.
type settings struct {
	cfg   config.Config
	log   zerolog.Logger
	color bool
}

var current settings

var rootCmd = &cobra.Command{
	Use:   "whichshell",
	Short: "Report the shell that launched a process",
	Long: `whichshell walks the process tree upward from a pid (itself by default)
and reports the nearest ancestor that looks like a shell. When no shell is
found it falls back to $SHELL.`,
	Example: `  whichshell
  whichshell --pid 4242 --tree
  eval "$(whichshell export EDITOR=vim)"`,
	Args:              usageArgs(cobra.NoArgs),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              runRoot,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagPID, "pid", 0, "start the walk at this pid instead of whichshell itself")
	pf.BoolVar(&flagNoFallback, "no-fallback", false, "fail instead of reading the environment when no shell is found")
	pf.BoolVar(&flagPreferLoginEnv, "prefer-login-env", false, "report the environment path for a matching login shell")
	pf.StringVar(&flagEnvVar, "env-var", detect.DefaultEnvVar, "environment variable used for the fallback")
	pf.StringVar(&flagProvider, "provider", "", "process table provider (default: platform specific)")
	pf.StringVar(&flagSnapshot, "snapshot", "", "read the process table from a YAML/JSON file")
	pf.IntVar(&flagMaxDepth, "max-depth", 0, "stop after this many ancestors (0 = unbounded)")
	pf.StringSliceVar(&flagShells, "shell", nil, "extra program names to treat as shells")
	pf.StringSliceVar(&flagNotShells, "not-shell", nil, "program names never treated as shells")
	pf.StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/whichshell/config.yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colors")

	f := rootCmd.Flags()
	f.BoolVar(&flagJSON, "json", false, "output as JSON")
	f.BoolVar(&flagShort, "short", false, "print the shell name only")
	f.BoolVar(&flagTree, "tree", false, "show the walked ancestry")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})
	registerFlagCompletions(rootCmd)

	rootCmd.AddCommand(exportCmd, inspectCmd, snapshotCmd, completionCmd)
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	path, required := flagConfig, flags.Changed("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}

	if flags.Changed("provider") {
		cfg.Provider = flagProvider
	}
	if flags.Changed("env-var") {
		cfg.EnvVar = flagEnvVar
	}
	if flags.Changed("no-fallback") {
		cfg.Fallback = !flagNoFallback
	}
	if flags.Changed("prefer-login-env") {
		cfg.PreferLoginEnv = flagPreferLoginEnv
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = flagMaxDepth
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	cfg.Shells = append(cfg.Shells, flagShells...)
	cfg.Exclude = append(cfg.Exclude, flagNotShells...)

	if flagPID < 0 {
		return &usageError{fmt.Errorf("invalid --pid %d", flagPID)}
	}
	if cfg.MaxDepth < 0 {
		return &usageError{fmt.Errorf("invalid --max-depth %d", cfg.MaxDepth)}
	}

	color := !flagNoColor && os.Getenv("NO_COLOR") == ""
	current = settings{
		cfg:   cfg,
		log:   logging.New(cmd.ErrOrStderr(), cfg.LogLevel, color),
		color: color,
	}
	return nil
}

func (s settings) snapshotter() (proc.Snapshotter, error) {
	if flagSnapshot != "" {
		return proc.LoadSnapshotFile(flagSnapshot)
	}
	return proc.NewSnapshotter(s.cfg.Provider, s.log)
}

func (s settings) resolver() (*shell.Resolver, error) {
	snap, err := s.snapshotter()
	if err != nil {
		return nil, err
	}
	return shell.NewResolver(snap,
		shell.WithMatcher(s.cfg.Matcher()),
		shell.WithInterpreters(s.cfg.InterpreterList()...),
		shell.WithMaxDepth(s.cfg.MaxDepth),
		shell.WithLogger(s.log),
	), nil
}

func (s settings) detect(ctx context.Context) (model.Result, error) {
	r, err := s.resolver()
	if err != nil {
		return model.Result{}, err
	}
	opts := detect.Options{
		EnvVar:         s.cfg.EnvVar,
		NoFallback:     !s.cfg.Fallback,
		PreferLoginEnv: s.cfg.PreferLoginEnv,
		Log:            s.log,
	}
	if flagPID > 0 {
		pid := flagPID
		opts.PID = func() int { return pid }
	}
	return detect.Detect(ctx, r, opts)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	modes := 0
	for _, on := range []bool{flagJSON, flagShort, flagTree} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return &usageError{errors.New("--json, --short and --tree are mutually exclusive")}
	}

	res, err := current.detect(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case flagJSON:
		data, err := output.ToJSON(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, data)
		return nil
	case flagShort:
		output.RenderShort(out, res)
	case flagTree:
		output.PrintTree(out, res, current.color)
	default:
		output.RenderStandard(out, res, current.color)
	}
	output.RenderWarnings(cmd.ErrOrStderr(), res.Warnings, current.color)
	return nil
}
