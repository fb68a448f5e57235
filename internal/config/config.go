package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pranshuparmar/whichshell/internal/detect"
	"github.com/pranshuparmar/whichshell/internal/shell"
)

// Config holds settings shared by every command. Flags override file values.
type Config struct {
	Provider       string              `yaml:"provider"`
	EnvVar         string              `yaml:"env_var"`
	Fallback       bool                `yaml:"fallback"`
	PreferLoginEnv bool                `yaml:"prefer_login_env"`
	MaxDepth       int                 `yaml:"max_depth"`
	Shells         []string            `yaml:"shells"`
	Suffixes       []string            `yaml:"suffixes"`
	Exclude        []string            `yaml:"exclude"`
	Interpreters   map[string][]string `yaml:"interpreters"`
	LogLevel       string              `yaml:"log_level"`
}

func Default() Config {
	return Config{
		EnvVar:   detect.DefaultEnvVar,
		Fallback: true,
		Suffixes: append([]string(nil), shell.DefaultSuffixes...),
		LogLevel: "warn",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/whichshell/config.yaml, falling back to
// $HOME/.config on every OS.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "whichshell", "config.yaml")
}

// Load reads path on top of Default. A missing file is not an error unless
// required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.MaxDepth < 0 {
		return cfg, fmt.Errorf("parse config %s: max_depth must not be negative", path)
	}
	return cfg, nil
}

// Matcher builds the shell-likeness test: the built-in names plus Shells,
// with Suffixes and Exclude applied.
func (c Config) Matcher() *shell.NameMatcher {
	names := append(append([]string(nil), shell.DefaultShells...), c.Shells...)
	return shell.NewNameMatcher(shell.MatcherConfig{
		Names:    names,
		Suffixes: c.Suffixes,
		Exclude:  c.Exclude,
	})
}

// InterpreterList returns the built-in interpreter rules plus the
// configured program -> hosted shells entries, in name order.
func (c Config) InterpreterList() []shell.Interpreter {
	list := append([]shell.Interpreter(nil), shell.DefaultInterpreters...)
	names := make([]string, 0, len(c.Interpreters))
	for name := range c.Interpreters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		list = append(list, shell.ExactInterpreter(name, c.Interpreters[name]...))
	}
	return list
}
