package shell

import (
	"errors"
	"fmt"
)

var (
	// ErrSnapshotUnavailable means the process table could not be read.
	// Nothing was traversed; a later call may succeed.
	ErrSnapshotUnavailable = errors.New("process snapshot unavailable")
	// ErrProcessNotFound means a pid on the walk has no record in the snapshot.
	ErrProcessNotFound = errors.New("process not found in snapshot")
	// ErrCycleDetected means the parent chain loops back onto itself.
	ErrCycleDetected = errors.New("cycle in process ancestry")
	// ErrShellNotFound means the walk reached the top of the tree without a
	// shell-like ancestor. This is an expected outcome, not a fault.
	ErrShellNotFound = errors.New("no shell in process ancestry")
)

// Error is returned by Resolver. Kind is one of the Err* sentinels, so
// callers branch with errors.Is.
type Error struct {
	Kind error
	PID  int
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v (pid %d)", e.Kind, e.PID)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
