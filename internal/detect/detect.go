package detect

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pranshuparmar/whichshell/internal/shell"
	"github.com/pranshuparmar/whichshell/pkg/model"
)

// DefaultEnvVar is consulted when the process walk finds nothing.
const DefaultEnvVar = "SHELL"

type Options struct {
	// PID returns the pid to start from. Defaults to os.Getpid.
	PID func() int
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// EnvVar defaults to DefaultEnvVar.
	EnvVar string
	// NoFallback disables the environment fallback.
	NoFallback bool
	// PreferLoginEnv reports $SHELL as the path of a login shell whose name
	// matches it, instead of the login token.
	PreferLoginEnv bool
	Log            zerolog.Logger
}

func (o *Options) defaults() {
	if o.PID == nil {
		o.PID = os.Getpid
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	if o.EnvVar == "" {
		o.EnvVar = DefaultEnvVar
	}
}

// Detect resolves the shell for the calling process. The walk result wins;
// the environment is only read when the walk could not run or found nothing.
func Detect(ctx context.Context, r *shell.Resolver, opts Options) (model.Result, error) {
	opts.defaults()
	log := opts.Log

	pid := opts.PID()
	sh, steps, err := r.Trace(ctx, pid)
	if err == nil {
		if opts.PreferLoginEnv && sh.Login {
			if env := opts.Getenv(opts.EnvVar); env != "" && envName(env) == sh.Name {
				log.Debug().Str("path", env).Msg("login shell path taken from environment")
				sh.Path = env
			}
		}
		return model.Result{Shell: sh, Steps: steps}, nil
	}

	if errors.Is(err, shell.ErrProcessNotFound) || errors.Is(err, shell.ErrCycleDetected) {
		log.Error().Err(err).Int("pid", pid).Msg("process table inconsistent")
		return model.Result{Steps: steps}, err
	}

	if opts.NoFallback {
		return model.Result{Steps: steps}, err
	}

	env := opts.Getenv(opts.EnvVar)
	if env == "" {
		log.Debug().Str("var", opts.EnvVar).Msg("no fallback value in environment")
		return model.Result{Steps: steps}, err
	}

	log.Warn().Err(err).Str("var", opts.EnvVar).Str("shell", env).Msg("falling back to environment")
	return model.Result{
		Shell: model.Shell{
			Name:   envName(env),
			Path:   env,
			Source: model.SourceEnv,
		},
		Steps:    steps,
		Warnings: []string{"shell taken from $" + opts.EnvVar + ": " + err.Error()},
	}, nil
}

func envName(value string) string {
	return shell.ParseCandidate(strings.TrimSpace(value)).Name
}
