package engmat

import (
	"errors"

	"github.com/hsiuhsiu/engmat-go/internal/bindings"
)

var (
	// ErrNotBuilt reports that the binary was built without the MATLAB
	// libraries. Build with cgo and the "matlab" tag, or pass a
	// native.Library such as memnative through Config.Native.
	ErrNotBuilt = errors.New("engmat: native bindings not built")

	// ErrLegacyUnavailable reports that TransferLegacy was requested from a
	// binary built without the "matlab_legacy" tag.
	ErrLegacyUnavailable = errors.New("engmat: legacy transfer functions not built")

	// ErrLibraryClosed is returned by every constructor after Library.Close.
	ErrLibraryClosed = errors.New("engmat: library closed")

	ErrOpenFailed   = errors.New("engmat: open failed")
	ErrCreateFailed = errors.New("engmat: array creation failed")

	// ErrModeNotPermitted reports an operation the file's open mode rules
	// out, such as a put on a file opened with ModeRead.
	ErrModeNotPermitted = errors.New("engmat: operation not permitted in file mode")

	// ErrTypeMismatch reports a double-only operation on an array of another
	// class.
	ErrTypeMismatch = errors.New("engmat: array is not double")

	ErrClosed    = errors.New("engmat: session closed")
	ErrNilMatrix = errors.New("engmat: nil or closed matrix")

	ErrAlreadyOpen     = errors.New("engmat: file already open")
	ErrNotFound        = errors.New("engmat: variable not found")
	ErrEvalFailed      = errors.New("engmat: evaluation failed")
	ErrNativeCall      = errors.New("engmat: native call failed")
	ErrInvalidShape    = errors.New("engmat: invalid shape")
	ErrIndexOutOfRange = errors.New("engmat: index out of range")
)

// RemapError converts bindings layer errors to public API errors.
func RemapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bindings.ErrNotBuilt):
		return ErrNotBuilt
	case errors.Is(err, bindings.ErrLegacyUnavailable):
		return ErrLegacyUnavailable
	}
	return err
}
