package shell

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

// Snapshotter returns a complete, point-in-time listing of processes.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]model.Process, error)
}

type SnapshotFunc func(ctx context.Context) ([]model.Process, error)

func (f SnapshotFunc) Snapshot(ctx context.Context) ([]model.Process, error) {
	return f(ctx)
}

// Resolver finds the nearest shell-like ancestor of a process.
// It keeps no state between calls and is safe for concurrent use.
type Resolver struct {
	snapshotter  Snapshotter
	matcher      Matcher
	interpreters []Interpreter
	maxDepth     int
	log          zerolog.Logger
}

type Option func(*Resolver)

func WithMatcher(m Matcher) Option {
	return func(r *Resolver) {
		if m != nil {
			r.matcher = m
		}
	}
}

func WithInterpreters(in ...Interpreter) Option {
	return func(r *Resolver) {
		r.interpreters = in
	}
}

// WithMaxDepth stops the walk after n ancestors. Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		r.maxDepth = n
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

func NewResolver(s Snapshotter, opts ...Option) *Resolver {
	r := &Resolver{
		snapshotter:  s,
		matcher:      DefaultMatcher(),
		interpreters: DefaultInterpreters,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve takes a fresh snapshot and walks up from pid.
func (r *Resolver) Resolve(ctx context.Context, pid int) (model.Shell, error) {
	sh, _, err := r.Trace(ctx, pid)
	return sh, err
}

// Trace is Resolve that also returns the ancestors visited, including on
// failure.
func (r *Resolver) Trace(ctx context.Context, pid int) (model.Shell, []model.Step, error) {
	procs, err := r.snapshotter.Snapshot(ctx)
	if err != nil {
		r.log.Debug().Err(err).Msg("snapshot failed")
		return model.Shell{}, nil, &Error{Kind: ErrSnapshotUnavailable, PID: pid, Err: err}
	}
	r.log.Debug().Int("processes", len(procs)).Int("start", pid).Msg("snapshot taken")
	return r.Walk(NewIndex(procs), pid)
}

// Walk runs the ancestor walk against an existing index. The first
// shell-like ancestor wins; nothing past it is consulted.
func (r *Resolver) Walk(ix *Index, start int) (model.Shell, []model.Step, error) {
	visited := make(map[int]bool)
	var steps []model.Step

	current := start
	for {
		if visited[current] {
			return model.Shell{}, steps, &Error{Kind: ErrCycleDetected, PID: current}
		}
		visited[current] = true

		if r.maxDepth > 0 && len(visited) > r.maxDepth {
			r.log.Debug().Int("max_depth", r.maxDepth).Msg("walk depth exhausted")
			return model.Shell{}, steps, &Error{Kind: ErrShellNotFound, PID: current}
		}

		p, ok := ix.Lookup(current)
		if !ok {
			return model.Shell{}, steps, &Error{Kind: ErrProcessNotFound, PID: current}
		}

		c, matched := r.candidate(p)
		steps = append(steps, model.Step{PID: current, Argv0: p.Argv0(), Name: c.Name, Matched: matched})
		r.log.Debug().
			Int("pid", current).
			Str("argv0", p.Argv0()).
			Str("name", c.Name).
			Bool("matched", matched).
			Msg("visit")

		if matched {
			return model.Shell{
				Name:   c.Name,
				Path:   c.Path,
				PID:    current,
				Login:  c.Login,
				Source: model.SourceProcess,
			}, steps, nil
		}

		ppid, ok := ix.Parent(current)
		if !ok {
			return model.Shell{}, steps, &Error{Kind: ErrShellNotFound, PID: current}
		}
		current = ppid
	}
}
