package engmat

import (
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/logging"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

// DefaultBufferSize is the engine output capture size used when
// Config.BufferSize is zero.
const DefaultBufferSize = 128

// Transfer selects which generation of the put/get functions moves arrays
// between Go and MATLAB.
type Transfer int

const (
	// TransferVariable uses the named-variable functions (engPutVariable,
	// matGetVariable and friends) introduced in R14.
	TransferVariable Transfer = iota

	// TransferLegacy uses the 6.x functions that carry the name on the array
	// itself (mxSetName followed by engPutArray, matGetArray and friends).
	TransferLegacy
)

// String returns the transfer style name.
func (t Transfer) String() string {
	switch t {
	case TransferVariable:
		return "variable"
	case TransferLegacy:
		return "legacy"
	default:
		return "Transfer(unknown)"
	}
}

// Config expresses the knobs used to bind the MATLAB engine, mx and mat
// libraries. The zero value links the compiled-in bindings with default
// settings.
type Config struct {
	// Native overrides the native implementation. Leaving it nil selects the
	// cgo bindings, which are only present in builds with the "matlab" tag.
	Native native.Library

	// Logger receives open/close events at debug and native failures at
	// warn. Nil means logging.New(nil).
	Logger logging.Logger

	// StartCommand is handed to engOpen. Empty starts MATLAB the default way.
	StartCommand string

	// BufferSize is the number of bytes of engine output captured per
	// evaluation. Zero means DefaultBufferSize.
	BufferSize int

	Transfer Transfer

	// LogExpressions logs evaluated expressions verbatim. When false they
	// are redacted.
	LogExpressions bool
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = logging.New(nil)
	}
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	return c
}
