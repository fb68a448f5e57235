//go:build windows

package proc

const DefaultProvider = ProviderWMIC
