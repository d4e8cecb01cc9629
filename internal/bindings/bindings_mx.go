//go:build cgo && matlab

package bindings

/*
#include <stdlib.h>
#include <string.h>
#include "matrix.h"
*/
import "C"

import (
	"unsafe"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

func arr(a native.Array) *C.mxArray {
	return (*C.mxArray)(unsafe.Pointer(uintptr(a)))
}

func toArray(p *C.mxArray) native.Array {
	return native.Array(uintptr(unsafe.Pointer(p)))
}

func complexity(c native.Complexity) C.mxComplexity {
	if c == native.Complex {
		return C.mxCOMPLEX
	}
	return C.mxREAL
}

func (*Library) CreateDoubleMatrix(m, n int, c native.Complexity) native.Array {
	return toArray(C.mxCreateDoubleMatrix(C.size_t(m), C.size_t(n), complexity(c)))
}

func (*Library) CreateNumericMatrix(m, n int, class native.ClassID, c native.Complexity) native.Array {
	return toArray(C.mxCreateNumericMatrix(C.size_t(m), C.size_t(n), C.mxClassID(class), complexity(c)))
}

func (*Library) CreateNumericArray(dims []int, class native.ClassID, c native.Complexity) native.Array {
	if len(dims) == 0 {
		return 0
	}
	cdims := (*C.mwSize)(C.malloc(C.size_t(len(dims)) * C.size_t(unsafe.Sizeof(C.mwSize(0)))))
	if cdims == nil {
		return 0
	}
	defer C.free(unsafe.Pointer(cdims))
	dst := unsafe.Slice(cdims, len(dims))
	for i, d := range dims {
		dst[i] = C.mwSize(d)
	}
	return toArray(C.mxCreateNumericArray(C.mwSize(len(dims)), cdims, C.mxClassID(class), complexity(c)))
}

func (*Library) DuplicateArray(a native.Array) native.Array {
	if a == 0 {
		return 0
	}
	return toArray(C.mxDuplicateArray(arr(a)))
}

func (*Library) DestroyArray(a native.Array) {
	if a == 0 {
		return
	}
	C.mxDestroyArray(arr(a))
}

func (*Library) GetM(a native.Array) int {
	if a == 0 {
		return 0
	}
	return int(C.mxGetM(arr(a)))
}

func (*Library) GetN(a native.Array) int {
	if a == 0 {
		return 0
	}
	return int(C.mxGetN(arr(a)))
}

func (*Library) GetDimensions(a native.Array) []int {
	if a == 0 {
		return nil
	}
	nd := int(C.mxGetNumberOfDimensions(arr(a)))
	src := unsafe.Slice(C.mxGetDimensions(arr(a)), nd)
	dims := make([]int, nd)
	for i := range dims {
		dims[i] = int(src[i])
	}
	return dims
}

func (*Library) GetClassID(a native.Array) native.ClassID {
	if a == 0 {
		return native.ClassUnknown
	}
	return native.ClassID(C.mxGetClassID(arr(a)))
}

func (*Library) GetElementSize(a native.Array) int {
	if a == 0 {
		return 0
	}
	return int(C.mxGetElementSize(arr(a)))
}

func (*Library) GetNumberOfElements(a native.Array) int {
	if a == 0 {
		return 0
	}
	return int(C.mxGetNumberOfElements(arr(a)))
}

func (*Library) IsEmpty(a native.Array) bool {
	if a == 0 {
		return true
	}
	return bool(C.mxIsEmpty(arr(a)))
}

// realDoubles views the real part of a double array. The slice aliases
// native memory and must not escape the calling method.
func realDoubles(a native.Array) []float64 {
	if C.mxGetClassID(arr(a)) != C.mxDOUBLE_CLASS {
		return nil
	}
	n := int(C.mxGetNumberOfElements(arr(a)))
	p := C.mxGetPr(arr(a))
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(p)), n)
}

func (*Library) GetDoubles(a native.Array) []float64 {
	if a == 0 {
		return nil
	}
	src := realDoubles(a)
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

func (*Library) SetDoubles(a native.Array, src []float64) int {
	if a == 0 {
		return 0
	}
	return copy(realDoubles(a), src)
}

func (*Library) GetDoubleAt(a native.Array, idx int) float64 {
	return realDoubles(a)[idx]
}

func (*Library) SetDoubleAt(a native.Array, idx int, v float64) {
	realDoubles(a)[idx] = v
}

func rawData(a native.Array) []byte {
	n := int(C.mxGetNumberOfElements(arr(a))) * int(C.mxGetElementSize(arr(a)))
	p := C.mxGetData(arr(a))
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

func (*Library) GetBytes(a native.Array) []byte {
	if a == 0 {
		return nil
	}
	src := rawData(a)
	if src == nil {
		return nil
	}
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

func (*Library) SetBytes(a native.Array, src []byte) int {
	if a == 0 {
		return 0
	}
	return copy(rawData(a), src)
}
