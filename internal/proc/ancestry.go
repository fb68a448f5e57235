package proc

import (
	"fmt"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

// Ancestry returns the chain from the topmost known ancestor down to pid,
// using only the given snapshot.
func Ancestry(procs []model.Process, pid int) ([]model.Process, error) {
	byPID := make(map[int]model.Process, len(procs))
	for _, p := range procs {
		byPID[p.PID()] = p
	}

	var chain []model.Process
	seen := make(map[int]bool)

	current := pid
	for {
		if seen[current] {
			break // loop protection
		}
		seen[current] = true

		p, ok := byPID[current]
		if !ok {
			break
		}

		chain = append([]model.Process{p}, chain...)

		ppid, ok := p.Parent()
		if !ok {
			break
		}
		current = ppid
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("no process ancestry found for pid %d", pid)
	}

	return chain, nil
}
