package engmat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/logging"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/memnative"
)

func openMemory(t *testing.T, opts ...memnative.Option) (*engmat.Library, *memnative.Library) {
	t.Helper()
	return openMemoryWith(t, engmat.Config{}, opts...)
}

func openMemoryWith(t *testing.T, cfg engmat.Config, opts ...memnative.Option) (*engmat.Library, *memnative.Library) {
	t.Helper()
	mem := memnative.New(opts...)
	cfg.Native = mem
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	lib, err := engmat.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	return lib, mem
}

func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()
	fn()
}
