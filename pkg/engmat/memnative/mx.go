package memnative

import (
	"encoding/binary"
	"math"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

// array is the in-memory mxArray. Real data is stored little-endian; header
// arrays (from the *Info and *Header calls) carry no data.
type array struct {
	name   string
	dims   []int
	class  native.ClassID
	cplx   native.Complexity
	data   []byte
	header bool
}

func numel(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// normalizeDims applies the mxCreateNumericArray shape rules: at least two
// dimensions, trailing singletons past the second dropped.
func normalizeDims(dims []int) []int {
	out := append([]int(nil), dims...)
	if len(out) == 1 {
		out = append(out, 1)
	}
	for len(out) > 2 && out[len(out)-1] == 1 {
		out = out[:len(out)-1]
	}
	return out
}

func newArray(dims []int, class native.ClassID, c native.Complexity) *array {
	for _, d := range dims {
		if d < 0 {
			return nil
		}
	}
	dims = normalizeDims(dims)
	return &array{
		dims:  dims,
		class: class,
		cplx:  c,
		data:  make([]byte, numel(dims)*class.ElementSize()),
	}
}

func (a *array) clone() *array {
	cp := *a
	cp.dims = append([]int(nil), a.dims...)
	if a.data != nil {
		cp.data = append([]byte(nil), a.data...)
	}
	return &cp
}

func (a *array) headerCopy() *array {
	cp := a.clone()
	cp.data = nil
	cp.header = true
	return cp
}

// adopt registers a and returns its handle. Callers hold l.mu.
func (l *Library) adopt(a *array) native.Array {
	if a == nil {
		return 0
	}
	h := native.Array(l.handle())
	l.arrays[h] = a
	l.stats.ArraysCreated++
	return h
}

func (l *Library) lookup(h native.Array) *array {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.arrays[h]
}

func (l *Library) CreateDoubleMatrix(m, n int, c native.Complexity) native.Array {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.adopt(newArray([]int{m, n}, native.ClassDouble, c))
}

func (l *Library) CreateNumericMatrix(m, n int, class native.ClassID, c native.Complexity) native.Array {
	if !class.Numeric() {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.adopt(newArray([]int{m, n}, class, c))
}

func (l *Library) CreateNumericArray(dims []int, class native.ClassID, c native.Complexity) native.Array {
	if !class.Numeric() || len(dims) == 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.adopt(newArray(dims, class, c))
}

func (l *Library) DuplicateArray(h native.Array) native.Array {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.arrays[h]
	if !ok {
		return 0
	}
	return l.adopt(a.clone())
}

func (l *Library) DestroyArray(h native.Array) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.arrays[h]; !ok {
		if h != 0 {
			l.stats.InvalidDestroys++
		}
		return
	}
	delete(l.arrays, h)
	l.stats.ArraysDestroyed++
}

func (l *Library) GetM(h native.Array) int {
	a := l.lookup(h)
	if a == nil {
		return 0
	}
	return a.dims[0]
}

func (l *Library) GetN(h native.Array) int {
	a := l.lookup(h)
	if a == nil {
		return 0
	}
	return numel(a.dims[1:])
}

func (l *Library) GetDimensions(h native.Array) []int {
	a := l.lookup(h)
	if a == nil {
		return nil
	}
	return append([]int(nil), a.dims...)
}

func (l *Library) GetClassID(h native.Array) native.ClassID {
	a := l.lookup(h)
	if a == nil {
		return native.ClassUnknown
	}
	return a.class
}

func (l *Library) GetElementSize(h native.Array) int {
	a := l.lookup(h)
	if a == nil {
		return 0
	}
	return a.class.ElementSize()
}

func (l *Library) GetNumberOfElements(h native.Array) int {
	a := l.lookup(h)
	if a == nil {
		return 0
	}
	return numel(a.dims)
}

func (l *Library) IsEmpty(h native.Array) bool {
	a := l.lookup(h)
	return a == nil || numel(a.dims) == 0
}

func (l *Library) GetDoubles(h native.Array) []float64 {
	a := l.lookup(h)
	if a == nil || a.class != native.ClassDouble || a.data == nil {
		return nil
	}
	return decodeDoubles(a.data)
}

func (l *Library) SetDoubles(h native.Array, src []float64) int {
	a := l.lookup(h)
	if a == nil || a.class != native.ClassDouble || a.data == nil {
		return 0
	}
	n := min(len(src), len(a.data)/8)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(a.data[i*8:], math.Float64bits(src[i]))
	}
	return n
}

// GetDoubleAt panics when idx is outside the array, as an out-of-bounds
// read through mxGetPr would be undefined.
func (l *Library) GetDoubleAt(h native.Array, idx int) float64 {
	a := l.lookup(h)
	if a == nil || a.class != native.ClassDouble {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(a.data[idx*8 : idx*8+8]))
}

func (l *Library) SetDoubleAt(h native.Array, idx int, v float64) {
	a := l.lookup(h)
	if a == nil || a.class != native.ClassDouble {
		return
	}
	binary.LittleEndian.PutUint64(a.data[idx*8:idx*8+8], math.Float64bits(v))
}

func (l *Library) GetBytes(h native.Array) []byte {
	a := l.lookup(h)
	if a == nil || a.data == nil {
		return nil
	}
	return append([]byte(nil), a.data...)
}

func (l *Library) SetBytes(h native.Array, src []byte) int {
	a := l.lookup(h)
	if a == nil || a.data == nil {
		return 0
	}
	return copy(a.data, src)
}

func (l *Library) SetName(h native.Array, name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.arrays[h]
	if !ok {
		return failed
	}
	a.name = name
	return 0
}

func (l *Library) GetName(h native.Array) string {
	a := l.lookup(h)
	if a == nil {
		return ""
	}
	return a.name
}

func decodeDoubles(b []byte) []float64 {
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out
}

func encodeDoubles(v []float64) []byte {
	out := make([]byte, len(v)*8)
	for i, f := range v {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(f))
	}
	return out
}
