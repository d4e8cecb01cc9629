package engmat

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

// Matrix owns one native mxArray. MATLAB stores elements column-major; the
// accessors that take or return [][]float64 transpose to and from rows.
//
// Call Close when done. A finalizer releases forgotten arrays, but only when
// the garbage collector gets to them.
type Matrix struct {
	mx native.MX
	h  native.Array
}

func newMatrix(mx native.MX, h native.Array) *Matrix {
	m := &Matrix{mx: mx, h: h}
	runtime.SetFinalizer(m, (*Matrix).Close)
	return m
}

func (l *Library) created(op string, h native.Array) (*Matrix, error) {
	if h == 0 {
		l.log.Warn(context.Background(), "array creation failed", "op", op)
		return nil, fmt.Errorf("engmat: %s: %w", op, ErrCreateFailed)
	}
	return newMatrix(l.nat, h), nil
}

// NewMatrix allocates a rows x cols real double matrix of zeros.
func (l *Library) NewMatrix(rows, cols int) (*Matrix, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("engmat: new matrix %dx%d: %w", rows, cols, ErrInvalidShape)
	}
	return l.created("new matrix", l.nat.CreateDoubleMatrix(rows, cols, native.Real))
}

// NewTypedMatrix allocates a rows x cols real matrix of the given numeric
// class.
func (l *Library) NewTypedMatrix(rows, cols int, class ClassID) (*Matrix, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("engmat: new %s matrix %dx%d: %w", class, rows, cols, ErrInvalidShape)
	}
	return l.created("new "+class.String()+" matrix", l.nat.CreateNumericMatrix(rows, cols, class, native.Real))
}

// NewPlanes allocates a rows x cols x planes real array of the given class.
func (l *Library) NewPlanes(rows, cols, planes int, class ClassID) (*Matrix, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	if rows < 0 || cols < 0 || planes < 0 {
		return nil, fmt.Errorf("engmat: new %s array %dx%dx%d: %w", class, rows, cols, planes, ErrInvalidShape)
	}
	dims := []int{rows, cols, planes}
	return l.created("new "+class.String()+" array", l.nat.CreateNumericArray(dims, class, native.Real))
}

// NewMatrixFromDense copies data into a new double matrix. With RowMajor
// data[i] is row i; with ColumnMajor data[j] is column j. Ragged input fails
// with ErrInvalidShape.
func (l *Library) NewMatrixFromDense(data [][]float64, order Order) (*Matrix, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	return l.dense(data, order)
}

// dense skips the closed-library check for the temporaries that open
// sessions build.
func (l *Library) dense(data [][]float64, order Order) (*Matrix, error) {
	rows, cols, flat, err := packColumnMajor(data, order)
	if err != nil {
		return nil, err
	}
	return l.fill(rows, cols, flat)
}

// NewMatrixFromSlice copies column-major data into a new double matrix with
// the given number of columns. Zero columns means a column vector.
func (l *Library) NewMatrixFromSlice(data []float64, cols int) (*Matrix, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	if cols == 0 {
		cols = 1
	}
	if cols < 0 || len(data)%cols != 0 {
		return nil, fmt.Errorf("engmat: new matrix from %d values in %d columns: %w", len(data), cols, ErrInvalidShape)
	}
	return l.fill(len(data)/cols, cols, data)
}

func (l *Library) fill(rows, cols int, flat []float64) (*Matrix, error) {
	m, err := l.created("new matrix", l.nat.CreateDoubleMatrix(rows, cols, native.Real))
	if err != nil {
		return nil, err
	}
	if n := l.nat.SetDoubles(m.h, flat); n != len(flat) {
		_ = m.Close()
		return nil, fmt.Errorf("engmat: fill %dx%d: copied %d of %d values: %w", rows, cols, n, len(flat), ErrNativeCall)
	}
	return m, nil
}

// AdoptMatrix takes ownership of h, which the caller vouches is a live
// mxArray nobody else will free. A zero handle yields a closed Matrix.
func (l *Library) AdoptMatrix(h native.Array) *Matrix {
	if h == 0 {
		return &Matrix{mx: l.nat}
	}
	return newMatrix(l.nat, h)
}

// Rows returns the first dimension, or 0 once closed.
func (m *Matrix) Rows() int {
	if m == nil || m.h == 0 {
		return 0
	}
	defer runtime.KeepAlive(m)
	return m.mx.GetM(m.h)
}

// Cols returns the product of all dimensions after the first, as mxGetN does.
func (m *Matrix) Cols() int {
	if m == nil || m.h == 0 {
		return 0
	}
	defer runtime.KeepAlive(m)
	return m.mx.GetN(m.h)
}

// Dims returns the full dimension vector.
func (m *Matrix) Dims() []int {
	if m == nil || m.h == 0 {
		return nil
	}
	defer runtime.KeepAlive(m)
	return slices.Clone(m.mx.GetDimensions(m.h))
}

// Class returns the element class of the array.
func (m *Matrix) Class() ClassID {
	if m == nil || m.h == 0 {
		return ClassUnknown
	}
	defer runtime.KeepAlive(m)
	return m.mx.GetClassID(m.h)
}

// IsEmpty reports whether the array has no elements.
func (m *Matrix) IsEmpty() bool {
	if m == nil || m.h == 0 {
		return true
	}
	defer runtime.KeepAlive(m)
	return m.mx.IsEmpty(m.h)
}

// index maps (r, c) to the column-major offset, panicking like a slice
// index would when the matrix cannot serve it.
func (m *Matrix) index(r, c int) int {
	if m == nil || m.h == 0 {
		panic(ErrNilMatrix)
	}
	if m.mx.GetClassID(m.h) != ClassDouble {
		panic(ErrTypeMismatch)
	}
	rows, cols := m.mx.GetM(m.h), m.mx.GetN(m.h)
	if r < 0 || r >= rows || c < 0 || c >= cols {
		panic(fmt.Errorf("engmat: at (%d, %d) in %dx%d: %w", r, c, rows, cols, ErrIndexOutOfRange))
	}
	return c*rows + r
}

// At returns element (r, c). It panics when the index is outside the matrix
// or the matrix is not double.
func (m *Matrix) At(r, c int) float64 {
	idx := m.index(r, c)
	v := m.mx.GetDoubleAt(m.h, idx)
	runtime.KeepAlive(m)
	return v
}

// Set stores v at (r, c) with the same panics as At.
func (m *Matrix) Set(r, c int, v float64) {
	idx := m.index(r, c)
	m.mx.SetDoubleAt(m.h, idx, v)
	runtime.KeepAlive(m)
}

// Dense copies the matrix out as rows.
func (m *Matrix) Dense() ([][]float64, error) {
	flat, err := m.Slice()
	if err != nil {
		return nil, err
	}
	return unpackRowMajor(flat, m.Rows(), m.Cols()), nil
}

// Slice copies the matrix out in MATLAB's column-major order.
func (m *Matrix) Slice() ([]float64, error) {
	if m == nil || m.h == 0 {
		return nil, ErrNilMatrix
	}
	defer runtime.KeepAlive(m)
	if class := m.mx.GetClassID(m.h); class != ClassDouble {
		return nil, fmt.Errorf("engmat: read %s matrix: %w", class, ErrTypeMismatch)
	}
	flat := m.mx.GetDoubles(m.h)
	if flat == nil {
		flat = []float64{}
	}
	return flat, nil
}

// Bytes copies the raw element storage of any numeric class.
func (m *Matrix) Bytes() ([]byte, error) {
	if m == nil || m.h == 0 {
		return nil, ErrNilMatrix
	}
	defer runtime.KeepAlive(m)
	b := m.mx.GetBytes(m.h)
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

// SetBytes overwrites the raw element storage. b must be exactly
// elements*elementSize bytes long.
func (m *Matrix) SetBytes(b []byte) error {
	if m == nil || m.h == 0 {
		return ErrNilMatrix
	}
	defer runtime.KeepAlive(m)
	want := m.mx.GetNumberOfElements(m.h) * m.mx.GetElementSize(m.h)
	if len(b) != want {
		return fmt.Errorf("engmat: set %d bytes, want %d: %w", len(b), want, ErrInvalidShape)
	}
	if n := m.mx.SetBytes(m.h, b); n != want {
		return fmt.Errorf("engmat: set bytes: copied %d of %d: %w", n, want, ErrNativeCall)
	}
	return nil
}

// Clone returns an independent deep copy.
func (m *Matrix) Clone() (*Matrix, error) {
	if m == nil || m.h == 0 {
		return nil, ErrNilMatrix
	}
	defer runtime.KeepAlive(m)
	h := m.mx.DuplicateArray(m.h)
	if h == 0 {
		return nil, fmt.Errorf("engmat: clone: %w", ErrCreateFailed)
	}
	return newMatrix(m.mx, h), nil
}

// Describe snapshots the matrix header. The name is empty because the
// array itself carries none outside a workspace or file.
func (m *Matrix) Describe() MatrixDescription {
	if m == nil || m.h == 0 {
		return MatrixDescription{}
	}
	defer runtime.KeepAlive(m)
	return describe(m.mx, m.h, "")
}

// Handle returns the underlying mxArray for callers that pass it to other
// native code. The handle is only valid until Close and must never be
// freed by the caller.
func (m *Matrix) Handle() native.Array {
	if m == nil {
		return 0
	}
	return m.h
}

// Close destroys the native array. It is safe to call more than once.
func (m *Matrix) Close() error {
	if m == nil || m.h == 0 {
		return nil
	}
	m.mx.DestroyArray(m.h)
	m.h = 0
	runtime.SetFinalizer(m, nil)
	return nil
}
