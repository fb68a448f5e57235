package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/whichshell/internal/shell"
)

const emacsSnapshot = `
- {pid: 1558, ppid: 1557, args: ["-/usr/local/bin/bash"]}
- {pid: 1706, ppid: 1558, args: ["/Applications/Emacs.app/Contents/MacOS/Emacs-x86_64-10_10", "-nw"]}
- {pid: 77061, ppid: 1706, args: ["/usr/local/bin/aspell", "-a"]}
`

const supervisedSnapshot = `
- {pid: 1, args: ["/sbin/init"]}
- {pid: 300, ppid: 1, args: ["/usr/bin/supervisord"]}
- {pid: 301, ppid: 300, args: ["/usr/bin/node", "server.js"]}
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		sub.Flags().VisitAll(reset)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunApp_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--prefer-login-env")
}

func TestRunApp_Detect(t *testing.T) {
	snap := writeFile(t, "snap.yaml", emacsSnapshot)
	t.Setenv("SHELL", "/bin/zsh")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"standard", nil, "bash\t/usr/local/bin/bash\n"},
		{"short", []string{"--short"}, "bash\n"},
		{"json", []string{"--json"}, `"name": "bash"`},
		{"tree", []string{"--tree"}, "    └─ /usr/local/bin/aspell (pid 77061)\n=> bash /usr/local/bin/bash (pid 1558, login)"},
		{"login env", []string{"--prefer-login-env", "--short"}, "bash\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--snapshot", snap, "--pid", "77061"}, tt.args...)
			out, errOut, err := execute(t, args...)
			require.NoError(t, err, errOut)
			assert.Contains(t, out, tt.want)
			assert.Empty(t, errOut)
		})
	}
}

func TestRunApp_Fallback(t *testing.T) {
	snap := writeFile(t, "snap.yaml", supervisedSnapshot)
	t.Setenv("SHELL", "/usr/bin/fish")

	out, errOut, err := execute(t, "--snapshot", snap, "--pid", "301")
	require.NoError(t, err)
	assert.Equal(t, "fish\t/usr/bin/fish\n", out)
	assert.Contains(t, errOut, "warning: shell taken from $SHELL")

	_, _, err = execute(t, "--snapshot", snap, "--pid", "301", "--no-fallback")
	assert.ErrorIs(t, err, shell.ErrShellNotFound)
	assert.Equal(t, exitFailure, exitCode(&bytes.Buffer{}, err))
}

func TestRunApp_MatcherFlags(t *testing.T) {
	snap := writeFile(t, "snap.yaml", emacsSnapshot)

	out, _, err := execute(t, "--snapshot", snap, "--pid", "77061", "--shell", "aspell", "--short")
	require.NoError(t, err)
	assert.Equal(t, "aspell\n", out)

	_, _, err = execute(t, "--snapshot", snap, "--pid", "77061", "--not-shell", "bash")
	assert.ErrorIs(t, err, shell.ErrProcessNotFound)

	out, _, err = execute(t, "--snapshot", snap, "--pid", "77061", "--short")
	require.NoError(t, err)
	assert.Equal(t, "bash\n", out, "slice flags must not leak between runs")
}

func TestRunApp_ConfigFile(t *testing.T) {
	snap := writeFile(t, "snap.yaml", emacsSnapshot)
	cfg := writeFile(t, "config.yaml", "shells: [emacs-x86_64-10_10]\n")

	out, _, err := execute(t, "--config", cfg, "--snapshot", snap, "--pid", "77061", "--short")
	require.NoError(t, err)
	assert.Equal(t, "emacs-x86_64-10_10\n", out)

	_, _, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--snapshot", snap)
	assert.Error(t, err)
}

func TestRunApp_Export(t *testing.T) {
	snap := writeFile(t, "snap.yaml", emacsSnapshot)

	out, _, err := execute(t, "export", "--snapshot", snap, "--pid", "77061", "EDITOR=vim", "MSG=it's")
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR='vim'\nexport MSG='it'\\''s'\n", out)
}

func TestRunApp_Snapshot(t *testing.T) {
	snap := writeFile(t, "snap.yaml", supervisedSnapshot)

	out, _, err := execute(t, "snapshot", "--snapshot", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "pid: 301")
	assert.Contains(t, out, "server.js")

	out, _, err = execute(t, "snapshot", "--snapshot", snap, "--pid", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "pid: 300")
	assert.NotContains(t, out, "pid: 301")

	_, _, err = execute(t, "snapshot", "--snapshot", snap, "--pid", "999")
	assert.Error(t, err)
}

func TestRunApp_Completion(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "whichshell")

	_, _, err = execute(t, "completion", "tcsh")
	assert.Equal(t, exitUsage, exitCode(&bytes.Buffer{}, err))
}

func TestRunApp_UsageErrors(t *testing.T) {
	snap := writeFile(t, "snap.yaml", emacsSnapshot)

	tests := []struct {
		name string
		args []string
	}{
		{"conflicting outputs", []string{"--snapshot", snap, "--json", "--short"}},
		{"unknown flag", []string{"--bogus"}},
		{"stray argument", []string{"bash"}},
		{"negative pid", []string{"--pid", "-4"}},
		{"export without pairs", []string{"export"}},
		{"malformed pair", []string{"export", "--snapshot", snap, "NOVALUE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)

			var buf bytes.Buffer
			assert.Equal(t, exitUsage, exitCode(&buf, err))
			assert.True(t, strings.HasPrefix(buf.String(), "Error: "))
		})
	}
}

func TestExitCode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, exitOK, exitCode(&buf, nil))
	assert.Empty(t, buf.String())

	assert.Equal(t, exitFailure, exitCode(&buf, errors.New("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())
}
