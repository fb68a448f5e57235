package syntax

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrUnsupportedShell = errors.New("unsupported shell")
	ErrInvalidKey       = errors.New("invalid environment variable name")
)

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Family string

const (
	FamilyPOSIX      Family = "posix"
	FamilyFish       Family = "fish"
	FamilyCsh        Family = "csh"
	FamilyPowerShell Family = "powershell"
	FamilyCmd        Family = "cmd"
	FamilyNu         Family = "nu"
	FamilyElvish     Family = "elvish"
	FamilyXonsh      Family = "xonsh"
)

var families = map[string]Family{
	"sh":         FamilyPOSIX,
	"bash":       FamilyPOSIX,
	"zsh":        FamilyPOSIX,
	"ksh":        FamilyPOSIX,
	"mksh":       FamilyPOSIX,
	"dash":       FamilyPOSIX,
	"ash":        FamilyPOSIX,
	"osh":        FamilyPOSIX,
	"oil":        FamilyPOSIX,
	"fish":       FamilyFish,
	"csh":        FamilyCsh,
	"tcsh":       FamilyCsh,
	"powershell": FamilyPowerShell,
	"pwsh":       FamilyPowerShell,
	"cmd":        FamilyCmd,
	"nu":         FamilyNu,
	"elvish":     FamilyElvish,
	"xonsh":      FamilyXonsh,
}

// FamilyOf maps a shell name to its syntax family. Unknown names ending in
// "sh" are assumed to be POSIX-like.
func FamilyOf(shellName string) (Family, error) {
	name := strings.ToLower(shellName)
	if f, ok := families[name]; ok {
		return f, nil
	}
	if strings.HasSuffix(name, "sh") {
		return FamilyPOSIX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedShell, shellName)
}

// Export renders a single assignment that exports key=value to child
// processes of the given shell.
func Export(shellName, key, value string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	family, err := FamilyOf(shellName)
	if err != nil {
		return "", err
	}

	switch family {
	case FamilyPOSIX:
		return "export " + key + "=" + singleQuote(value), nil
	case FamilyFish:
		return "set -gx " + key + " " + fishQuote(value), nil
	case FamilyCsh:
		return "setenv " + key + " " + cshQuote(value), nil
	case FamilyPowerShell:
		return "$env:" + key + " = " + psQuote(value), nil
	case FamilyCmd:
		return `set "` + key + "=" + value + `"`, nil
	case FamilyNu:
		return "$env." + key + " = " + doubleQuote(value), nil
	case FamilyElvish:
		return "set-env " + key + " " + psQuote(value), nil
	default:
		return "$" + key + " = " + pyQuote(value), nil
	}
}

// ParseAssignment splits a KEY=VALUE argument.
func ParseAssignment(arg string) (string, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || !keyPattern.MatchString(key) {
		return "", "", fmt.Errorf("%w: %q (want KEY=VALUE)", ErrInvalidKey, arg)
	}
	return key, value, nil
}

// POSIX: close the quote, emit an escaped quote, reopen.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// csh has no escape inside single quotes and expands '!' everywhere.
func cshQuote(s string) string {
	s = strings.ReplaceAll(s, "'", `'\''`)
	s = strings.ReplaceAll(s, "!", `\!`)
	return "'" + s + "'"
}

// PowerShell and elvish single quotes escape a quote by doubling it.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// nu single quotes cannot hold a quote at all.
func doubleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func pyQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
