package output

import (
	"fmt"
	"io"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

// RenderShort prints the shell name alone, the form scripts consume.
func RenderShort(w io.Writer, r model.Result) {
	fmt.Fprintln(w, r.Shell.Name)
}

// RenderStandard prints "name<TAB>path".
func RenderStandard(w io.Writer, r model.Result, colorEnabled bool) {
	fmt.Fprintf(w, "%s\t%s\n", paint(shellNameStyle, r.Shell.Name, colorEnabled), r.Shell.Path)
}

// RenderWarnings writes one line per warning. The CLI sends these to stderr
// so stdout stays machine-readable.
func RenderWarnings(w io.Writer, warnings []string, colorEnabled bool) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "%s %s\n", paint(warningStyle, "warning:", colorEnabled), msg)
	}
}
