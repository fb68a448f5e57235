package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

// PrintTree draws the walk from the outermost ancestor visited down to the
// starting process, then a summary line for the detected shell.
func PrintTree(w io.Writer, r model.Result, colorEnabled bool) {
	steps := r.Steps
	for i := range steps {
		s := steps[len(steps)-1-i]
		prefix := strings.Repeat("  ", i)
		if i > 0 {
			prefix += paint(branchStyle, "└─ ", colorEnabled)
		}
		label := s.Argv0
		if label == "" {
			label = "?"
		}
		mark := ""
		if s.Matched {
			mark = " " + paint(shellNameStyle, "[shell]", colorEnabled)
		}
		fmt.Fprintf(w, "%s%s %s%s\n", prefix, label, paint(dimStyle, fmt.Sprintf("(pid %d)", s.PID), colorEnabled), mark)
	}

	origin := "from environment"
	if r.Shell.Source == model.SourceProcess {
		origin = fmt.Sprintf("pid %d", r.Shell.PID)
		if r.Shell.Login {
			origin += ", login"
		}
	}
	if r.Shell.Name != "" {
		fmt.Fprintf(w, "=> %s %s %s\n", paint(shellNameStyle, r.Shell.Name, colorEnabled), r.Shell.Path, paint(dimStyle, "("+origin+")", colorEnabled))
	}
}
