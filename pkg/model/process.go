package model

import "encoding/json"

// Process is a single entry of a process snapshot. It is immutable once
// built; use NewProcess or NewRootProcess.
type Process struct {
	pid       int
	ppid      int
	hasParent bool
	args      []string
}

// NewProcess returns a record whose parent pid is known.
func NewProcess(pid, ppid int, args ...string) Process {
	return Process{pid: pid, ppid: ppid, hasParent: true, args: cloneArgs(args)}
}

// NewRootProcess returns a record with no known parent.
func NewRootProcess(pid int, args ...string) Process {
	return Process{pid: pid, args: cloneArgs(args)}
}

func (p Process) PID() int {
	return p.pid
}

// Parent reports the parent pid and whether it is known.
func (p Process) Parent() (int, bool) {
	return p.ppid, p.hasParent
}

// Args returns a copy of the command line.
func (p Process) Args() []string {
	return cloneArgs(p.args)
}

// Argv0 returns the invoked program token, or "" for an empty command line.
func (p Process) Argv0() string {
	if len(p.args) == 0 {
		return ""
	}
	return p.args[0]
}

// Arg returns args[i], or "" when out of range.
func (p Process) Arg(i int) string {
	if i < 0 || i >= len(p.args) {
		return ""
	}
	return p.args[i]
}

func (p Process) MarshalJSON() ([]byte, error) {
	var ppid *int
	if p.hasParent {
		v := p.ppid
		ppid = &v
	}
	return json.Marshal(struct {
		PID  int      `json:"pid"`
		PPID *int     `json:"ppid"`
		Args []string `json:"args"`
	}{p.pid, ppid, p.Args()})
}

func cloneArgs(args []string) []string {
	if len(args) == 0 {
		return []string{}
	}
	out := make([]string, len(args))
	copy(out, args)
	return out
}
