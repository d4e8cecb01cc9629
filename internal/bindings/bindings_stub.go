//go:build !cgo || !matlab

package bindings

import "github.com/hsiuhsiu/engmat-go/pkg/engmat/native"

// Stub implementations for builds without cgo or without the "matlab" tag.
// These allow the package to compile; New reports ErrNotBuilt and every entry
// point returns a null handle or a failure code.

type Library struct{}

var _ native.Library = (*Library)(nil)

func New() (*Library, error) {
	return nil, ErrNotBuilt
}

func Available() bool { return false }

func LegacyAvailable() bool { return false }

func Version() string { return "" }

func (*Library) EngOpen(string) native.Engine { return 0 }
func (*Library) EngClose(native.Engine) int { return failed }
func (*Library) EngEvalString(native.Engine, string) int { return failed }
func (*Library) EngSetVisible(native.Engine, bool) int { return failed }
func (*Library) EngGetVisible(native.Engine) (bool, int) { return false, failed }
func (*Library) EngOutputBuffer(native.Engine, native.Buffer, int) int { return failed }
func (*Library) EngPutVariable(native.Engine, string, native.Array) int { return failed }
func (*Library) EngGetVariable(native.Engine, string) native.Array { return 0 }
func (*Library) EngPutArray(native.Engine, native.Array) int { return failed }
func (*Library) EngGetArray(native.Engine, string) native.Array { return 0 }
func (*Library) AllocBuffer(int) native.Buffer { return 0 }
func (*Library) FreeBuffer(native.Buffer) {}
func (*Library) BufferString(native.Buffer, int) string { return "" }

func (*Library) CreateDoubleMatrix(int, int, native.Complexity) native.Array { return 0 }
func (*Library) CreateNumericMatrix(int, int, native.ClassID, native.Complexity) native.Array {
	return 0
}
func (*Library) CreateNumericArray([]int, native.ClassID, native.Complexity) native.Array {
	return 0
}
func (*Library) DuplicateArray(native.Array) native.Array { return 0 }
func (*Library) DestroyArray(native.Array) {}
func (*Library) GetM(native.Array) int { return 0 }
func (*Library) GetN(native.Array) int { return 0 }
func (*Library) GetDimensions(native.Array) []int { return nil }
func (*Library) GetClassID(native.Array) native.ClassID { return native.ClassUnknown }
func (*Library) GetElementSize(native.Array) int { return 0 }
func (*Library) GetNumberOfElements(native.Array) int { return 0 }
func (*Library) IsEmpty(native.Array) bool { return true }
func (*Library) GetDoubles(native.Array) []float64 { return nil }
func (*Library) SetDoubles(native.Array, []float64) int { return 0 }
func (*Library) GetDoubleAt(native.Array, int) float64 { return 0 }
func (*Library) SetDoubleAt(native.Array, int, float64) {}
func (*Library) GetBytes(native.Array) []byte { return nil }
func (*Library) SetBytes(native.Array, []byte) int { return 0 }
func (*Library) SetName(native.Array, string) int { return failed }
func (*Library) GetName(native.Array) string { return "" }

func (*Library) MatOpen(string, string) native.File { return 0 }
func (*Library) MatClose(native.File) int { return failed }
func (*Library) MatPutVariable(native.File, string, native.Array) int { return failed }
func (*Library) MatGetVariable(native.File, string) native.Array { return 0 }
func (*Library) MatGetVariableInfo(native.File, string) native.Array { return 0 }
func (*Library) MatGetNextVariableInfo(native.File) (native.Array, string) { return 0, "" }
func (*Library) MatDeleteVariable(native.File, string) int { return failed }
func (*Library) MatPutArray(native.File, native.Array) int { return failed }
func (*Library) MatGetArray(native.File, string) native.Array { return 0 }
func (*Library) MatGetArrayHeader(native.File, string) native.Array { return 0 }
func (*Library) MatGetNextArrayHeader(native.File) native.Array { return 0 }
func (*Library) MatDeleteArray(native.File, string) int { return failed }
