//go:build cgo && matlab

package bindings

/*
#include <stdlib.h>
#include "mat.h"
*/
import "C"

import (
	"unsafe"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

func mat(f native.File) *C.MATFile {
	return (*C.MATFile)(unsafe.Pointer(uintptr(f)))
}

func (*Library) MatOpen(filename, mode string) native.File {
	cname := cstr(filename)
	defer freeStr(cname)
	cmode := cstr(mode)
	defer freeStr(cmode)
	return native.File(uintptr(unsafe.Pointer(C.matOpen(cname, cmode))))
}

func (*Library) MatClose(f native.File) int {
	if f == 0 {
		return failed
	}
	return int(C.matClose(mat(f)))
}

func (*Library) MatPutVariable(f native.File, name string, a native.Array) int {
	if f == 0 || a == 0 {
		return failed
	}
	c := cstr(name)
	defer freeStr(c)
	return int(C.matPutVariable(mat(f), c, arr(a)))
}

func (*Library) MatGetVariable(f native.File, name string) native.Array {
	if f == 0 {
		return 0
	}
	c := cstr(name)
	defer freeStr(c)
	return toArray(C.matGetVariable(mat(f), c))
}

func (*Library) MatGetVariableInfo(f native.File, name string) native.Array {
	if f == 0 {
		return 0
	}
	c := cstr(name)
	defer freeStr(c)
	return toArray(C.matGetVariableInfo(mat(f), c))
}

// MatGetNextVariableInfo advances the file position past the next header.
// The name pointer belongs to the header and is copied before returning.
func (*Library) MatGetNextVariableInfo(f native.File) (native.Array, string) {
	if f == 0 {
		return 0, ""
	}
	var name *C.char
	a := C.matGetNextVariableInfo(mat(f), &name)
	if a == nil {
		return 0, ""
	}
	return toArray(a), C.GoString(name)
}

func (*Library) MatDeleteVariable(f native.File, name string) int {
	if f == 0 {
		return failed
	}
	c := cstr(name)
	defer freeStr(c)
	return int(C.matDeleteVariable(mat(f), c))
}
