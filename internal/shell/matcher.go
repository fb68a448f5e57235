package shell

import "strings"

// Matcher decides whether a normalized program name denotes a shell.
type Matcher interface {
	Match(name string) bool
}

type MatcherFunc func(name string) bool

func (f MatcherFunc) Match(name string) bool {
	return f(name)
}

// DefaultShells is the built-in allow-list.
var DefaultShells = []string{
	"sh", "bash", "zsh", "fish", "csh", "tcsh", "ksh", "dash", "ash",
	"powershell", "pwsh", "cmd",
	"xonsh", "elvish", "nu", "oil", "osh", "ion",
}

// DefaultSuffixes makes the test lenient: any name ending in "sh" counts.
// Names such as "ssh" or "whoosh" are known false positives of this rule.
var DefaultSuffixes = []string{"sh"}

type MatcherConfig struct {
	Names    []string
	Suffixes []string
	Exclude  []string
}

// NameMatcher is the default Matcher. Exclude wins over Names, and Names
// over Suffixes.
type NameMatcher struct {
	names    map[string]bool
	suffixes []string
	exclude  map[string]bool
}

func NewNameMatcher(cfg MatcherConfig) *NameMatcher {
	m := &NameMatcher{
		names:   toSet(cfg.Names),
		exclude: toSet(cfg.Exclude),
	}
	for _, s := range cfg.Suffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			m.suffixes = append(m.suffixes, s)
		}
	}
	return m
}

func DefaultMatcher() *NameMatcher {
	return NewNameMatcher(MatcherConfig{Names: DefaultShells, Suffixes: DefaultSuffixes})
}

func (m *NameMatcher) Match(name string) bool {
	if name == "" || m.exclude[name] {
		return false
	}
	if m.names[name] {
		return true
	}
	for _, s := range m.suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = true
		}
	}
	return set
}
