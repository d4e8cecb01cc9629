package bindings

import "errors"

var (
	// ErrNotBuilt reports that the MATLAB libraries were not linked into the
	// current binary. Build with cgo and the "matlab" tag to link them.
	ErrNotBuilt = errors.New("engmat/internal/bindings: native bindings not built")

	// ErrLegacyUnavailable reports that a pre-R14 entry point was requested
	// from a binary built without the "matlab_legacy" tag.
	ErrLegacyUnavailable = errors.New("engmat/internal/bindings: legacy entry points not built")
)

// failed is the return code handed back by entry points that cannot reach
// the native library.
const failed = 1
