package shell

import "github.com/pranshuparmar/whichshell/pkg/model"

// Index maps pids of one snapshot to their records and parents. It is built
// per resolution and never reused, because the process table changes.
type Index struct {
	procs   map[int]model.Process
	parents map[int]int
}

// NewIndex builds an index. When a pid appears twice the later record wins.
func NewIndex(snapshot []model.Process) *Index {
	ix := &Index{
		procs:   make(map[int]model.Process, len(snapshot)),
		parents: make(map[int]int, len(snapshot)),
	}
	for _, p := range snapshot {
		pid := p.PID()
		ix.procs[pid] = p
		if ppid, ok := p.Parent(); ok {
			ix.parents[pid] = ppid
		} else {
			delete(ix.parents, pid)
		}
	}
	return ix
}

func (ix *Index) Lookup(pid int) (model.Process, bool) {
	p, ok := ix.procs[pid]
	return p, ok
}

func (ix *Index) Parent(pid int) (int, bool) {
	ppid, ok := ix.parents[pid]
	return ppid, ok
}

func (ix *Index) Len() int {
	return len(ix.procs)
}
