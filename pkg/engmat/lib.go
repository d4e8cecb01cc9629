package engmat

import (
	"fmt"
	"sync/atomic"

	"github.com/hsiuhsiu/engmat-go/internal/bindings"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/logging"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

// Library represents an opened binding to the MATLAB libraries. It holds
// only configuration and may be shared between goroutines; the engines,
// matrices and files it creates may not.
type Library struct {
	cfg    Config
	nat    native.Library
	log    logging.Logger
	closed atomic.Bool
}

// Open prepares the native library. Without Config.Native it links the cgo
// bindings and fails with ErrNotBuilt when they were not compiled in.
func Open(cfg Config) (*Library, error) {
	cfg = cfg.withDefaults()

	nat := cfg.Native
	if nat == nil {
		b, err := bindings.New()
		if err != nil {
			return nil, RemapError(err)
		}
		if cfg.Transfer == TransferLegacy && !bindings.LegacyAvailable() {
			return nil, RemapError(bindings.ErrLegacyUnavailable)
		}
		nat = b
	}

	switch cfg.Transfer {
	case TransferVariable, TransferLegacy:
	default:
		return nil, fmt.Errorf("engmat: open: unknown transfer %d", int(cfg.Transfer))
	}

	return &Library{
		cfg: cfg,
		nat: nat,
		log: cfg.Logger.With("component", "engmat"),
	}, nil
}

// Close marks the library closed. Wrappers created earlier stay usable and
// must still be closed individually. A second call returns ErrLibraryClosed.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}
	if !l.closed.CompareAndSwap(false, true) {
		return ErrLibraryClosed
	}
	return nil
}

// Native exposes the native implementation in use.
func (l *Library) Native() native.Library { return l.nat }

// Transfer reports the configured transfer style.
func (l *Library) Transfer() Transfer { return l.cfg.Transfer }

func (l *Library) check() error {
	if l == nil || l.closed.Load() {
		return ErrLibraryClosed
	}
	return nil
}
