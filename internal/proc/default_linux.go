//go:build linux

package proc

// DefaultProvider reads /proc directly; no external command needed.
const DefaultProvider = ProviderProcfs
