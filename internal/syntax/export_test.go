package syntax

import (
	"errors"
	"testing"
)

func TestExport(t *testing.T) {
	tests := []struct {
		shell string
		key   string
		value string
		want  string
	}{
		{"bash", "EDITOR", "vim", `export EDITOR='vim'`},
		{"zsh", "MSG", "it's", `export MSG='it'\''s'`},
		{"mksh", "A", "b", `export A='b'`},
		{"fish", "PATH_X", `a\b'c`, `set -gx PATH_X 'a\\b\'c'`},
		{"tcsh", "X", "hi!", `setenv X 'hi\!'`},
		{"pwsh", "X", "it's", `$env:X = 'it''s'`},
		{"PowerShell", "X", "y", `$env:X = 'y'`},
		{"cmd", "X", "a b", `set "X=a b"`},
		{"nu", "X", `say "hi"`, `$env.X = "say \"hi\""`},
		{"elvish", "X", "y", `set-env X 'y'`},
		{"xonsh", "X", "y", `$X = 'y'`},
		{"bash", "EMPTY", "", `export EMPTY=''`},
	}
	for _, tt := range tests {
		t.Run(tt.shell+"/"+tt.key, func(t *testing.T) {
			got, err := Export(tt.shell, tt.key, tt.value)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Export() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name    string
		shell   string
		key     string
		wantErr error
	}{
		{"unknown shell", "emacs", "X", ErrUnsupportedShell},
		{"empty shell", "", "X", ErrUnsupportedShell},
		{"leading digit", "bash", "1X", ErrInvalidKey},
		{"dash in key", "bash", "MY-VAR", ErrInvalidKey},
		{"empty key", "bash", "", ErrInvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Export(tt.shell, tt.key, "v")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Export() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		arg       string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"FOO=bar", "FOO", "bar", false},
		{"FOO=a=b", "FOO", "a=b", false},
		{"FOO=", "FOO", "", false},
		{"FOO", "", "", true},
		{"=bar", "", "", true},
	}
	for _, tt := range tests {
		key, value, err := ParseAssignment(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAssignment(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			continue
		}
		if key != tt.wantKey || value != tt.wantValue {
			t.Errorf("ParseAssignment(%q) = (%q, %q), want (%q, %q)", tt.arg, key, value, tt.wantKey, tt.wantValue)
		}
	}
}

func TestFamilyOf(t *testing.T) {
	if f, _ := FamilyOf("Bash"); f != FamilyPOSIX {
		t.Errorf("FamilyOf(Bash) = %s", f)
	}
	if f, _ := FamilyOf("tcsh"); f != FamilyCsh {
		t.Errorf("FamilyOf(tcsh) = %s", f)
	}
}
