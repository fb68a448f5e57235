package proc

import (
	"context"
	"os/exec"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks github.com/pranshuparmar/whichshell/internal/proc Executor

// Snapshotter returns every running process at one point in time. It never
// returns partial results: either the whole table or an error.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]model.Process, error)
}

type Executor interface {
	Run(name string, args ...string) ([]byte, error)
}

type RealExecutor struct{}

func (r *RealExecutor) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

var executor Executor = &RealExecutor{}

func SetExecutor(e Executor) {
	executor = e
}

func ResetExecutor() {
	executor = &RealExecutor{}
}

// Run executes a command using the current executor
func Run(name string, args ...string) ([]byte, error) {
	return executor.Run(name, args...)
}

// newRecord treats a non-positive or self-referencing ppid as "no parent":
// pid 0 is the kernel on posix and the idle process on windows.
func newRecord(pid, ppid int, args []string) model.Process {
	if ppid <= 0 || ppid == pid {
		return model.NewRootProcess(pid, args...)
	}
	return model.NewProcess(pid, ppid, args...)
}
