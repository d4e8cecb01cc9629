package engmat

import "github.com/hsiuhsiu/engmat-go/internal/bindings"

var (
	Version       = "v0.0.0-in-progress"
	MATLABRelease = "unknown"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// NativeVersion returns the MATLAB release the bindings were linked against
// if known; otherwise it falls back to MATLABRelease.
func NativeVersion() string {
	if v := bindings.Version(); v != "" {
		return v
	}
	return MATLABRelease
}
