//go:build cgo && matlab

package bindings

/*
#cgo CFLAGS: -I${SRCDIR}/../../matlab/extern/include
#cgo linux LDFLAGS: -L${SRCDIR}/../../matlab/bin/glnxa64 -Wl,-rpath,${SRCDIR}/../../matlab/bin/glnxa64 -leng -lmx -lmat
#cgo darwin,amd64 LDFLAGS: -L${SRCDIR}/../../matlab/bin/maci64 -Wl,-rpath,${SRCDIR}/../../matlab/bin/maci64 -leng -lmx -lmat
#cgo darwin,arm64 LDFLAGS: -L${SRCDIR}/../../matlab/bin/maca64 -Wl,-rpath,${SRCDIR}/../../matlab/bin/maca64 -leng -lmx -lmat
#cgo windows LDFLAGS: -L${SRCDIR}/../../matlab/extern/lib/win64/microsoft -llibeng -llibmx -llibmat
#include <stdlib.h>
#include <string.h>
#include "engine.h"
*/
import "C"

import (
	"unsafe"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

// matlabRelease is set at link time, e.g.
// -ldflags "-X github.com/hsiuhsiu/engmat-go/internal/bindings.matlabRelease=R2023b".
var matlabRelease string

// Library implements native.Library on top of libeng, libmx and libmat.
// It carries no state; every method is a direct foreign call.
type Library struct{}

var _ native.Library = (*Library)(nil)

// New returns the linked bindings.
func New() (*Library, error) {
	return &Library{}, nil
}

// Available reports whether the MATLAB libraries are linked in.
func Available() bool { return true }

// Version returns the MATLAB release the bindings were compiled against, if
// the headers expose it.
func Version() string { return matlabRelease }

func eng(e native.Engine) *C.Engine {
	return (*C.Engine)(unsafe.Pointer(uintptr(e)))
}

func cstr(s string) *C.char {
	return C.CString(s)
}

func freeStr(p *C.char) {
	C.free(unsafe.Pointer(p))
}

// EngOpen starts a MATLAB process. An empty startcmd passes NULL so the
// engine picks its default command.
func (*Library) EngOpen(startcmd string) native.Engine {
	var cmd *C.char
	if startcmd != "" {
		cmd = cstr(startcmd)
		defer freeStr(cmd)
	}
	return native.Engine(uintptr(unsafe.Pointer(C.engOpen(cmd))))
}

func (*Library) EngClose(e native.Engine) int {
	if e == 0 {
		return failed
	}
	return int(C.engClose(eng(e)))
}

func (*Library) EngEvalString(e native.Engine, cmd string) int {
	if e == 0 {
		return failed
	}
	c := cstr(cmd)
	defer freeStr(c)
	return int(C.engEvalString(eng(e), c))
}

func (*Library) EngSetVisible(e native.Engine, visible bool) int {
	if e == 0 {
		return failed
	}
	return int(C.engSetVisible(eng(e), C.bool(visible)))
}

func (*Library) EngGetVisible(e native.Engine) (bool, int) {
	if e == 0 {
		return false, failed
	}
	var v C.bool
	rc := C.engGetVisible(eng(e), &v)
	return bool(v), int(rc)
}

// EngOutputBuffer points the engine at buf. buf must come from AllocBuffer
// since the engine keeps writing into it after the call returns.
func (*Library) EngOutputBuffer(e native.Engine, buf native.Buffer, n int) int {
	if e == 0 {
		return failed
	}
	return int(C.engOutputBuffer(eng(e), (*C.char)(unsafe.Pointer(uintptr(buf))), C.int(n)))
}

func (*Library) EngPutVariable(e native.Engine, name string, a native.Array) int {
	if e == 0 || a == 0 {
		return failed
	}
	c := cstr(name)
	defer freeStr(c)
	return int(C.engPutVariable(eng(e), c, arr(a)))
}

func (*Library) EngGetVariable(e native.Engine, name string) native.Array {
	if e == 0 {
		return 0
	}
	c := cstr(name)
	defer freeStr(c)
	return toArray(C.engGetVariable(eng(e), c))
}

// AllocBuffer returns n zeroed bytes of C memory.
func (*Library) AllocBuffer(n int) native.Buffer {
	if n <= 0 {
		return 0
	}
	return native.Buffer(uintptr(C.calloc(C.size_t(n), 1)))
}

func (*Library) FreeBuffer(b native.Buffer) {
	if b == 0 {
		return
	}
	C.free(unsafe.Pointer(uintptr(b)))
}

func (*Library) BufferString(b native.Buffer, n int) string {
	if b == 0 || n <= 0 {
		return ""
	}
	p := (*C.char)(unsafe.Pointer(uintptr(b)))
	return C.GoStringN(p, C.int(C.strnlen(p, C.size_t(n))))
}
