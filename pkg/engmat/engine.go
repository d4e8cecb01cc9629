package engmat

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/logging"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

// Engine is a session with a MATLAB engine process. Output printed by
// evaluated expressions is captured into a native buffer of BufferSize
// bytes while buffering is active.
//
// An Engine is not safe for concurrent use. Native calls block until MATLAB
// answers; the context passed to Evaluate is consulted only before the call.
type Engine struct {
	lib *Library
	nat native.Library
	log logging.Logger

	h         native.Engine
	buf       native.Buffer
	bufSize   int
	buffering bool

	// stale holds replaced buffers the engine may still write to. They are
	// freed after EngClose.
	stale []native.Buffer
}

// OpenEngine starts or attaches to a MATLAB engine and turns on output
// capture.
func (l *Library) OpenEngine(ctx context.Context) (*Engine, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := l.nat.EngOpen(l.cfg.StartCommand)
	if h == 0 {
		l.log.Warn(ctx, "engine open failed", "startcmd", l.cfg.StartCommand)
		return nil, fmt.Errorf("engmat: open engine: %w", ErrOpenFailed)
	}

	e := &Engine{
		lib:     l,
		nat:     l.nat,
		log:     l.log.With("session", "engine"),
		h:       h,
		bufSize: l.cfg.BufferSize,
	}
	runtime.SetFinalizer(e, (*Engine).Close)

	if err := e.SetBufferingActive(true); err != nil {
		_ = e.Close()
		return nil, err
	}
	e.log.Debug(ctx, "engine opened", "buffer_size", e.bufSize)
	return e, nil
}

// Active reports whether the session still holds an engine.
func (e *Engine) Active() bool {
	return e != nil && e.h != 0
}

// Evaluate runs expr in the engine workspace. A MATLAB-level error inside
// expr is not a failure here; it shows up in LastResult. ErrEvalFailed means
// the engine could not be reached.
func (e *Engine) Evaluate(ctx context.Context, expr string) error {
	if !e.Active() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer runtime.KeepAlive(e)

	if e.lib.cfg.LogExpressions {
		e.log.Debug(ctx, "evaluate", "expr", expr)
	} else {
		e.log.Debug(ctx, "evaluate", logging.Redacted("expr"))
	}
	if rc := e.nat.EngEvalString(e.h, expr); rc != 0 {
		e.log.Warn(ctx, "evaluate failed", "rc", rc)
		return fmt.Errorf("engmat: evaluate: %w", ErrEvalFailed)
	}
	return nil
}

// EvaluateString turns buffering on if needed, evaluates expr and returns
// the captured output.
func (e *Engine) EvaluateString(ctx context.Context, expr string) (string, error) {
	if err := e.SetBufferingActive(true); err != nil {
		return "", err
	}
	if err := e.Evaluate(ctx, expr); err != nil {
		return "", err
	}
	return e.LastResult(), nil
}

// LastResult returns the captured output of the latest evaluation, up to
// BufferSize-1 bytes.
func (e *Engine) LastResult() string {
	if e == nil || e.buf == 0 {
		return ""
	}
	defer runtime.KeepAlive(e)
	return e.nat.BufferString(e.buf, e.bufSize)
}

// Handle returns the underlying Engine pointer. It is valid until Close.
func (e *Engine) Handle() native.Engine {
	if e == nil {
		return 0
	}
	return e.h
}

// BufferingActive reports whether evaluation output is being captured.
func (e *Engine) BufferingActive() bool {
	return e != nil && e.buffering
}

// SetBufferingActive switches output capture on or off. Nothing happens when
// the state does not change.
func (e *Engine) SetBufferingActive(active bool) error {
	if !e.Active() {
		return ErrClosed
	}
	if e.buf == 0 {
		if e.buf = e.nat.AllocBuffer(e.bufSize); e.buf == 0 {
			return fmt.Errorf("engmat: allocate %d byte output buffer: %w", e.bufSize, ErrCreateFailed)
		}
	}
	if e.buffering == active {
		return nil
	}
	if err := e.redirect(active); err != nil {
		return err
	}
	e.buffering = active
	return nil
}

func (e *Engine) redirect(active bool) error {
	defer runtime.KeepAlive(e)
	var rc int
	if active {
		rc = e.nat.EngOutputBuffer(e.h, e.buf, e.bufSize)
	} else {
		rc = e.nat.EngOutputBuffer(e.h, 0, 0)
	}
	if rc != 0 {
		e.log.Warn(context.Background(), "output redirect failed", "active", active, "rc", rc)
		return fmt.Errorf("engmat: redirect output: %w", ErrNativeCall)
	}
	return nil
}

// BufferSize returns the capture buffer size in bytes.
func (e *Engine) BufferSize() int {
	if e == nil {
		return 0
	}
	return e.bufSize
}

// SetBufferSize replaces the capture buffer with one of n bytes, keeping the
// current buffering state.
func (e *Engine) SetBufferSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("engmat: buffer size %d: %w", n, ErrInvalidShape)
	}
	if !e.Active() {
		return ErrClosed
	}
	if n == e.bufSize && e.buf != 0 {
		return nil
	}

	buf := e.nat.AllocBuffer(n)
	if buf == 0 {
		return fmt.Errorf("engmat: allocate %d byte output buffer: %w", n, ErrCreateFailed)
	}
	// The engine must never point at a freed buffer.
	old := e.buf
	e.buf, e.bufSize = buf, n
	err := e.redirect(e.buffering)
	if err != nil {
		e.buffering = false
		if e.redirect(false) != nil {
			e.retain(old)
			return err
		}
	}
	if old != 0 {
		e.nat.FreeBuffer(old)
	}
	return err
}

// retain keeps b alive until Close.
func (e *Engine) retain(b native.Buffer) {
	if b != 0 {
		e.stale = append(e.stale, b)
	}
}

// Visible reports whether the MATLAB desktop window is shown.
func (e *Engine) Visible() (bool, error) {
	if !e.Active() {
		return false, ErrClosed
	}
	defer runtime.KeepAlive(e)
	v, rc := e.nat.EngGetVisible(e.h)
	if rc != 0 {
		return false, fmt.Errorf("engmat: get visible: %w", ErrNativeCall)
	}
	return v, nil
}

// SetVisible shows or hides the MATLAB desktop window.
func (e *Engine) SetVisible(visible bool) error {
	if !e.Active() {
		return ErrClosed
	}
	defer runtime.KeepAlive(e)
	if rc := e.nat.EngSetVisible(e.h, visible); rc != 0 {
		return fmt.Errorf("engmat: set visible %t: %w", visible, ErrNativeCall)
	}
	return nil
}

// GetMatrix copies a workspace variable out of the engine. The caller owns
// the result.
func (e *Engine) GetMatrix(name string) (*Matrix, error) {
	if !e.Active() {
		return nil, ErrClosed
	}
	defer runtime.KeepAlive(e)

	var h native.Array
	if e.lib.cfg.Transfer == TransferLegacy {
		h = e.nat.EngGetArray(e.h, name)
	} else {
		h = e.nat.EngGetVariable(e.h, name)
	}
	if h == 0 {
		return nil, fmt.Errorf("engmat: engine get %q: %w", name, ErrNotFound)
	}
	return newMatrix(e.nat, h), nil
}

// GetDense copies a double workspace variable out as rows.
func (e *Engine) GetDense(name string) ([][]float64, error) {
	m, err := e.GetMatrix(name)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	data, err := m.Dense()
	if err != nil {
		return nil, fmt.Errorf("engmat: engine get %q: %w", name, err)
	}
	return data, nil
}

// SetMatrix copies m into the engine workspace as name. m stays owned by
// the caller.
func (e *Engine) SetMatrix(name string, m *Matrix) error {
	if m == nil || m.h == 0 {
		return fmt.Errorf("engmat: engine put %q: %w", name, ErrNilMatrix)
	}
	if !e.Active() {
		return ErrClosed
	}
	defer runtime.KeepAlive(e)
	defer runtime.KeepAlive(m)

	if e.lib.cfg.Transfer == TransferLegacy {
		if rc := e.nat.SetName(m.h, name); rc != 0 {
			return fmt.Errorf("engmat: engine put %q: set name: %w", name, ErrNativeCall)
		}
		if rc := e.nat.EngPutArray(e.h, m.h); rc != 0 {
			e.log.Warn(context.Background(), "engine put failed", "name", name, "rc", rc)
			return fmt.Errorf("engmat: engine put %q: %w", name, ErrNativeCall)
		}
		return nil
	}
	if rc := e.nat.EngPutVariable(e.h, name, m.h); rc != 0 {
		e.log.Warn(context.Background(), "engine put failed", "name", name, "rc", rc)
		return fmt.Errorf("engmat: engine put %q: %w", name, ErrNativeCall)
	}
	return nil
}

// SetDense copies row-major data into the engine workspace as name.
func (e *Engine) SetDense(name string, data [][]float64) error {
	if !e.Active() {
		return ErrClosed
	}
	m, err := e.lib.dense(data, RowMajor)
	if err != nil {
		return fmt.Errorf("engmat: engine put %q: %w", name, err)
	}
	defer m.Close()
	return e.SetMatrix(name, m)
}

// Close ends the session and frees the output buffer. It is safe to call
// more than once.
func (e *Engine) Close() error {
	if e == nil || e.h == 0 {
		return nil
	}
	rc := e.nat.EngClose(e.h)
	e.h = 0
	if e.buf != 0 {
		e.nat.FreeBuffer(e.buf)
		e.buf = 0
	}
	for _, b := range e.stale {
		e.nat.FreeBuffer(b)
	}
	e.stale = nil
	e.buffering = false
	runtime.SetFinalizer(e, nil)

	if rc != 0 {
		e.log.Warn(context.Background(), "engine close failed", "rc", rc)
		return fmt.Errorf("engmat: close engine: %w", ErrNativeCall)
	}
	e.log.Debug(context.Background(), "engine closed")
	return nil
}
