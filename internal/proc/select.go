package proc

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

const (
	ProviderPS       = "ps"
	ProviderProcfs   = "procfs"
	ProviderGopsutil = "gopsutil"
	ProviderWMIC     = "wmic"
)

var providers = map[string]func(zerolog.Logger) Snapshotter{
	ProviderPS:       func(l zerolog.Logger) Snapshotter { return NewPSSnapshotter(l) },
	ProviderProcfs:   func(l zerolog.Logger) Snapshotter { return NewProcfsSnapshotter("", l) },
	ProviderGopsutil: func(l zerolog.Logger) Snapshotter { return NewGopsutilSnapshotter(l) },
	ProviderWMIC:     func(l zerolog.Logger) Snapshotter { return NewWMICSnapshotter(l) },
}

// NewSnapshotter returns the named provider, or the platform default when
// name is empty.
func NewSnapshotter(name string, log zerolog.Logger) (Snapshotter, error) {
	if name == "" {
		name = DefaultProvider
	}
	ctor, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown process provider %q (available: %v)", name, ProviderNames())
	}
	return ctor(log.With().Str("provider", name).Logger()), nil
}

func ProviderNames() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
