package model

type ShellSource string

const (
	SourceProcess ShellSource = "process"
	SourceEnv     ShellSource = "env"
)

// Shell is the outcome of a detection.
type Shell struct {
	Name   string      `json:"name"`
	Path   string      `json:"path"`
	PID    int         `json:"pid,omitempty"`
	Login  bool        `json:"login"`
	Source ShellSource `json:"source"`
}

// Step records one ancestor visited while walking the process tree.
type Step struct {
	PID     int    `json:"pid"`
	Argv0   string `json:"argv0"`
	Name    string `json:"name"`
	Matched bool   `json:"matched"`
}

// Result bundles a detection with the walk that produced it.
type Result struct {
	Shell    Shell    `json:"shell"`
	Steps    []Step   `json:"steps,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
