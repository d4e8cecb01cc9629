package native

// Engine is an opaque Engine* returned by engOpen. The zero value is the
// null handle.
type Engine uintptr

// Array is an opaque mxArray* owned by whoever created or retrieved it.
// The zero value is the null handle.
type Array uintptr

// File is an opaque MATFile* returned by matOpen. The zero value is the null
// handle.
type File uintptr

// Buffer is a block of native memory that the engine may keep writing into
// between calls. It must come from AllocBuffer, never from Go memory.
type Buffer uintptr

// Complexity mirrors mxComplexity.
type Complexity int

const (
	Real Complexity = iota
	Complex
)

// Eng declares the libeng entry points plus the output-buffer allocator that
// engOutputBuffer requires.
//
// Integer results follow the C convention: zero is success.
type Eng interface {
	EngOpen(startcmd string) Engine
	EngClose(e Engine) int
	EngEvalString(e Engine, cmd string) int
	EngSetVisible(e Engine, visible bool) int
	EngGetVisible(e Engine) (visible bool, rc int)
	EngOutputBuffer(e Engine, buf Buffer, n int) int
	EngPutVariable(e Engine, name string, a Array) int
	EngGetVariable(e Engine, name string) Array

	// EngPutArray and EngGetArray are the pre-R14 transfer pair. The array
	// name travels inside the array (see MX.SetName).
	EngPutArray(e Engine, a Array) int
	EngGetArray(e Engine, name string) Array

	AllocBuffer(n int) Buffer
	FreeBuffer(b Buffer)
	// BufferString returns the buffer contents up to the first NUL byte,
	// reading at most n bytes.
	BufferString(b Buffer, n int) string
}

// MX declares the libmx entry points.
type MX interface {
	CreateDoubleMatrix(m, n int, c Complexity) Array
	CreateNumericMatrix(m, n int, class ClassID, c Complexity) Array
	CreateNumericArray(dims []int, class ClassID, c Complexity) Array
	DuplicateArray(a Array) Array
	DestroyArray(a Array)

	GetM(a Array) int
	// GetN returns the product of every dimension after the first.
	GetN(a Array) int
	GetDimensions(a Array) []int
	GetClassID(a Array) ClassID
	GetElementSize(a Array) int
	GetNumberOfElements(a Array) int
	IsEmpty(a Array) bool

	// GetDoubles copies the column-major real data of a double array.
	GetDoubles(a Array) []float64
	// SetDoubles copies src into the real data of a double array and returns
	// the number of elements written.
	SetDoubles(a Array, src []float64) int
	GetDoubleAt(a Array, idx int) float64
	SetDoubleAt(a Array, idx int, v float64)

	// GetBytes copies the raw real data of any numeric array.
	GetBytes(a Array) []byte
	// SetBytes copies src into the raw real data and returns the number of
	// bytes written.
	SetBytes(a Array, src []byte) int

	// SetName and GetName are pre-R14 only.
	SetName(a Array, name string) int
	GetName(a Array) string
}

// MAT declares the libmat entry points.
type MAT interface {
	MatOpen(filename, mode string) File
	MatClose(f File) int
	MatPutVariable(f File, name string, a Array) int
	MatGetVariable(f File, name string) Array
	MatGetVariableInfo(f File, name string) Array
	MatGetNextVariableInfo(f File) (Array, string)
	MatDeleteVariable(f File, name string) int

	// Pre-R14 counterparts.
	MatPutArray(f File, a Array) int
	MatGetArray(f File, name string) Array
	MatGetArrayHeader(f File, name string) Array
	MatGetNextArrayHeader(f File) Array
	MatDeleteArray(f File, name string) int
}

// Library bundles the three shared libraries.
type Library interface {
	Eng
	MX
	MAT
}
