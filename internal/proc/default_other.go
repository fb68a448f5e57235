//go:build !linux && !windows

package proc

const DefaultProvider = ProviderPS
