package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

var bashResult = model.Result{
	Shell: model.Shell{Name: "bash", Path: "/usr/local/bin/bash", PID: 1558, Login: true, Source: model.SourceProcess},
	Steps: []model.Step{
		{PID: 77061, Argv0: "/usr/local/bin/aspell", Name: "aspell"},
		{PID: 1706, Argv0: "/Applications/Emacs.app/Contents/MacOS/Emacs-x86_64-10_10", Name: "emacs-x86_64-10_10"},
		{PID: 1558, Argv0: "-/usr/local/bin/bash", Name: "bash", Matched: true},
	},
}

var envResult = model.Result{
	Shell:    model.Shell{Name: "fish", Path: "/usr/bin/fish", Source: model.SourceEnv},
	Warnings: []string{"shell taken from $SHELL: shell not found"},
}

func TestToJSON(t *testing.T) {
	tests := []struct {
		name   string
		result model.Result
	}{
		{"empty", model.Result{}},
		{"process", bashResult},
		{"env", envResult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToJSON(tt.result)
			if err != nil {
				t.Fatalf("ToJSON() error = %v", err)
			}
			var parsed struct {
				Shell map[string]interface{} `json:"shell"`
			}
			if err := json.Unmarshal([]byte(got), &parsed); err != nil {
				t.Fatalf("ToJSON() produced invalid JSON: %v", err)
			}
			if parsed.Shell["name"] != tt.result.Shell.Name {
				t.Errorf("shell.name = %v, want %q", parsed.Shell["name"], tt.result.Shell.Name)
			}
		})
	}
}

func TestRenderShort(t *testing.T) {
	var buf bytes.Buffer
	RenderShort(&buf, bashResult)
	if buf.String() != "bash\n" {
		t.Errorf("RenderShort() = %q", buf.String())
	}
}

func TestRenderStandard(t *testing.T) {
	tests := []struct {
		name   string
		result model.Result
		want   string
	}{
		{"login", bashResult, "bash\t/usr/local/bin/bash\n"},
		{"bare name", model.Result{Shell: model.Shell{Name: "zsh", Path: "zsh", PID: 9}}, "zsh\tzsh\n"},
		{"env", envResult, "fish\t/usr/bin/fish\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderStandard(&buf, tt.result, false)
			if buf.String() != tt.want {
				t.Errorf("RenderStandard() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRenderWarnings(t *testing.T) {
	var buf bytes.Buffer
	RenderWarnings(&buf, nil, false)
	if buf.Len() != 0 {
		t.Errorf("RenderWarnings(nil) wrote %q", buf.String())
	}
	RenderWarnings(&buf, []string{"one", "two"}, false)
	if buf.String() != "warning: one\nwarning: two\n" {
		t.Errorf("RenderWarnings() = %q", buf.String())
	}
	RenderWarnings(&buf, []string{"three"}, true)
	if !strings.Contains(buf.String(), "three") {
		t.Errorf("colored warning missing text: %q", buf.String())
	}
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	PrintTree(&buf, bashResult, false)
	want := "-/usr/local/bin/bash (pid 1558) [shell]\n" +
		"  └─ /Applications/Emacs.app/Contents/MacOS/Emacs-x86_64-10_10 (pid 1706)\n" +
		"    └─ /usr/local/bin/aspell (pid 77061)\n" +
		"=> bash /usr/local/bin/bash (pid 1558, login)\n"
	if buf.String() != want {
		t.Errorf("PrintTree() =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	PrintTree(&buf, envResult, false)
	if buf.String() != "=> fish /usr/bin/fish (from environment)\n" {
		t.Errorf("PrintTree(env) = %q", buf.String())
	}

	buf.Reset()
	PrintTree(&buf, model.Result{Steps: []model.Step{{PID: 4}}}, true)
	if !strings.Contains(buf.String(), "?") {
		t.Errorf("PrintTree() with empty argv0 = %q", buf.String())
	}
}
