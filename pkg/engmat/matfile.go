package engmat

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/logging"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

// Mode is the access mode a MAT-file is opened with. It is fixed until the
// file is closed.
type Mode int

const (
	// ModeRead opens an existing file read-only.
	ModeRead Mode = iota
	// ModeUpdate opens an existing file for reading and writing.
	ModeUpdate
	// ModeWrite creates the file, discarding any previous contents.
	ModeWrite
	// ModeWrite4 creates a Level 4 file readable by old MATLAB releases.
	ModeWrite4
)

var modeStrings = [...]string{
	ModeRead:   "r",
	ModeUpdate: "u",
	ModeWrite:  "w",
	ModeWrite4: "w4",
}

// String returns the mode argument matOpen expects.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeStrings) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeStrings[m]
}

// ParseMode accepts the matOpen mode strings.
func ParseMode(s string) (Mode, error) {
	for m, v := range modeStrings {
		if v == s {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("engmat: unknown file mode %q", s)
}

func (m Mode) valid() bool { return m >= ModeRead && m <= ModeWrite4 }

func (m Mode) canRead() bool { return m == ModeRead || m == ModeUpdate }

func (m Mode) canWrite() bool { return m != ModeRead }

// File is a session with one MAT-file. It is not safe for concurrent use.
type File struct {
	lib *Library
	nat native.Library
	log logging.Logger

	h    native.File
	path string
	mode Mode
}

// NewFile returns an unopened File.
func (l *Library) NewFile() *File {
	return &File{
		lib: l,
		nat: l.nat,
		log: l.log.With("session", "matfile"),
	}
}

// OpenFile is NewFile followed by Open.
func (l *Library) OpenFile(path string, mode Mode) (*File, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	f := l.NewFile()
	if err := f.Open(path, mode); err != nil {
		return nil, err
	}
	return f, nil
}

// Open opens path with mode. The path and mode are remembered even when
// opening fails, so Reopen retries the same file.
func (f *File) Open(path string, mode Mode) error {
	if f.h != 0 {
		return fmt.Errorf("engmat: open %q: %w", path, ErrAlreadyOpen)
	}
	if !mode.valid() {
		return fmt.Errorf("engmat: open %q with %s: %w", path, mode, ErrModeNotPermitted)
	}

	f.path, f.mode = path, mode
	h := f.nat.MatOpen(path, mode.String())
	if h == 0 {
		f.log.Warn(context.Background(), "file open failed", "path", path, "mode", mode.String())
		return fmt.Errorf("engmat: open %q with mode %q: %w", path, mode.String(), ErrOpenFailed)
	}
	f.h = h
	runtime.SetFinalizer(f, (*File).Close)
	f.log.Debug(context.Background(), "file opened", "path", path, "mode", mode.String())
	return nil
}

// Reopen closes and opens the file again with the same path and mode,
// which rewinds the header cursor. Write modes would truncate the file and
// are refused.
func (f *File) Reopen() error {
	if !f.mode.canRead() {
		return fmt.Errorf("engmat: reopen %q with mode %q: %w", f.path, f.mode.String(), ErrModeNotPermitted)
	}
	if f.path == "" {
		return ErrClosed
	}
	if err := f.Close(); err != nil {
		return err
	}
	return f.Open(f.path, f.mode)
}

// Variables lists the header of every variable in the file, in file order.
// The file is rewound before and after the scan, so repeated calls return
// the same list and later GetMatrix calls are unaffected.
func (f *File) Variables() ([]MatrixDescription, error) {
	if !f.mode.canRead() {
		return nil, fmt.Errorf("engmat: list %q with mode %q: %w", f.path, f.mode.String(), ErrModeNotPermitted)
	}
	if err := f.Reopen(); err != nil {
		return nil, err
	}
	defer runtime.KeepAlive(f)

	var out []MatrixDescription
	for {
		var (
			h    native.Array
			name string
		)
		if f.lib.cfg.Transfer == TransferLegacy {
			if h = f.nat.MatGetNextArrayHeader(f.h); h != 0 {
				name = f.nat.GetName(h)
			}
		} else {
			h, name = f.nat.MatGetNextVariableInfo(f.h)
		}
		if h == 0 {
			break
		}
		out = append(out, describe(f.nat, h, name))
		f.nat.DestroyArray(h)
	}

	if err := f.Reopen(); err != nil {
		return out, err
	}
	return out, nil
}

// Info reads the header of one variable without loading its data.
func (f *File) Info(name string) (MatrixDescription, error) {
	if err := f.readable("info", name); err != nil {
		return MatrixDescription{}, err
	}
	defer runtime.KeepAlive(f)

	var h native.Array
	if f.lib.cfg.Transfer == TransferLegacy {
		h = f.nat.MatGetArrayHeader(f.h, name)
	} else {
		h = f.nat.MatGetVariableInfo(f.h, name)
	}
	if h == 0 {
		return MatrixDescription{}, fmt.Errorf("engmat: info %q in %q: %w", name, f.path, ErrNotFound)
	}
	defer f.nat.DestroyArray(h)
	return describe(f.nat, h, name), nil
}

// GetMatrix loads a variable. The caller owns the result.
func (f *File) GetMatrix(name string) (*Matrix, error) {
	if err := f.readable("get", name); err != nil {
		return nil, err
	}
	defer runtime.KeepAlive(f)

	var h native.Array
	if f.lib.cfg.Transfer == TransferLegacy {
		h = f.nat.MatGetArray(f.h, name)
	} else {
		h = f.nat.MatGetVariable(f.h, name)
	}
	if h == 0 {
		return nil, fmt.Errorf("engmat: get %q from %q: %w", name, f.path, ErrNotFound)
	}
	return newMatrix(f.nat, h), nil
}

// GetDense loads a double variable as rows.
func (f *File) GetDense(name string) ([][]float64, error) {
	m, err := f.GetMatrix(name)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	data, err := m.Dense()
	if err != nil {
		return nil, fmt.Errorf("engmat: get %q from %q: %w", name, f.path, err)
	}
	return data, nil
}

// PutMatrix writes m as name, replacing any variable of that name. m stays
// owned by the caller.
func (f *File) PutMatrix(name string, m *Matrix) error {
	if m == nil || m.h == 0 {
		return fmt.Errorf("engmat: put %q: %w", name, ErrNilMatrix)
	}
	if err := f.writable("put", name); err != nil {
		return err
	}
	defer runtime.KeepAlive(f)
	defer runtime.KeepAlive(m)

	var rc int
	if f.lib.cfg.Transfer == TransferLegacy {
		if rc = f.nat.SetName(m.h, name); rc == 0 {
			rc = f.nat.MatPutArray(f.h, m.h)
		}
	} else {
		rc = f.nat.MatPutVariable(f.h, name, m.h)
	}
	if rc != 0 {
		f.log.Warn(context.Background(), "put failed", "path", f.path, "name", name, "rc", rc)
		return fmt.Errorf("engmat: put %q into %q: %w", name, f.path, ErrNativeCall)
	}
	return nil
}

// PutDense writes row-major data as name.
func (f *File) PutDense(name string, data [][]float64) error {
	if err := f.writable("put", name); err != nil {
		return err
	}
	m, err := f.lib.dense(data, RowMajor)
	if err != nil {
		return fmt.Errorf("engmat: put %q: %w", name, err)
	}
	defer m.Close()
	return f.PutMatrix(name, m)
}

// DeleteMatrix removes a variable from the file.
func (f *File) DeleteMatrix(name string) error {
	if err := f.writable("delete", name); err != nil {
		return err
	}
	defer runtime.KeepAlive(f)

	var rc int
	if f.lib.cfg.Transfer == TransferLegacy {
		rc = f.nat.MatDeleteArray(f.h, name)
	} else {
		rc = f.nat.MatDeleteVariable(f.h, name)
	}
	if rc != 0 {
		return fmt.Errorf("engmat: delete %q from %q: %w", name, f.path, ErrNativeCall)
	}
	return nil
}

func (f *File) readable(op, name string) error {
	if f.h == 0 {
		return ErrClosed
	}
	if !f.mode.canRead() {
		return fmt.Errorf("engmat: %s %q with mode %q: %w", op, name, f.mode.String(), ErrModeNotPermitted)
	}
	return nil
}

func (f *File) writable(op, name string) error {
	if f.h == 0 {
		return ErrClosed
	}
	if !f.mode.canWrite() {
		return fmt.Errorf("engmat: %s %q with mode %q: %w", op, name, f.mode.String(), ErrModeNotPermitted)
	}
	return nil
}

// Close closes the file. It is safe to call more than once.
func (f *File) Close() error {
	if f == nil || f.h == 0 {
		return nil
	}
	rc := f.nat.MatClose(f.h)
	f.h = 0
	runtime.SetFinalizer(f, nil)
	if rc != 0 {
		f.log.Warn(context.Background(), "file close failed", "path", f.path, "rc", rc)
		return fmt.Errorf("engmat: close %q: %w", f.path, ErrNativeCall)
	}
	f.log.Debug(context.Background(), "file closed", "path", f.path)
	return nil
}

// IsOpen reports whether the file holds a native handle.
func (f *File) IsOpen() bool { return f != nil && f.h != 0 }

// Path returns the path given to the last Open.
func (f *File) Path() string { return f.path }

// Mode returns the mode given to the last Open.
func (f *File) Mode() Mode { return f.mode }
