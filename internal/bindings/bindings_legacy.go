//go:build cgo && matlab && matlab_legacy

package bindings

/*
#include <stdlib.h>
#include "engine.h"
#include "mat.h"
*/
import "C"

import "github.com/hsiuhsiu/engmat-go/pkg/engmat/native"

// LegacyAvailable reports whether the pre-R14 entry points are linked in.
func LegacyAvailable() bool { return true }

func (*Library) EngPutArray(e native.Engine, a native.Array) int {
	if e == 0 || a == 0 {
		return failed
	}
	return int(C.engPutArray(eng(e), arr(a)))
}

func (*Library) EngGetArray(e native.Engine, name string) native.Array {
	if e == 0 {
		return 0
	}
	c := cstr(name)
	defer freeStr(c)
	return toArray(C.engGetArray(eng(e), c))
}

func (*Library) SetName(a native.Array, name string) int {
	if a == 0 {
		return failed
	}
	c := cstr(name)
	defer freeStr(c)
	C.mxSetName(arr(a), c)
	return 0
}

func (*Library) GetName(a native.Array) string {
	if a == 0 {
		return ""
	}
	return C.GoString(C.mxGetName(arr(a)))
}

func (*Library) MatPutArray(f native.File, a native.Array) int {
	if f == 0 || a == 0 {
		return failed
	}
	return int(C.matPutArray(mat(f), arr(a)))
}

func (*Library) MatGetArray(f native.File, name string) native.Array {
	if f == 0 {
		return 0
	}
	c := cstr(name)
	defer freeStr(c)
	return toArray(C.matGetArray(mat(f), c))
}

func (*Library) MatGetArrayHeader(f native.File, name string) native.Array {
	if f == 0 {
		return 0
	}
	c := cstr(name)
	defer freeStr(c)
	return toArray(C.matGetArrayHeader(mat(f), c))
}

func (*Library) MatGetNextArrayHeader(f native.File) native.Array {
	if f == 0 {
		return 0
	}
	return toArray(C.matGetNextArrayHeader(mat(f)))
}

func (*Library) MatDeleteArray(f native.File, name string) int {
	if f == 0 {
		return failed
	}
	c := cstr(name)
	defer freeStr(c)
	return int(C.matDeleteArray(mat(f), c))
}
