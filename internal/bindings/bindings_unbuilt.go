//go:build cgo && matlab && !matlab_legacy

package bindings

import "github.com/hsiuhsiu/engmat-go/pkg/engmat/native"

// Current MATLAB releases no longer export the pre-R14 transfer functions,
// so without the matlab_legacy tag they report failure without a foreign
// call.

// LegacyAvailable reports whether the pre-R14 entry points are linked in.
func LegacyAvailable() bool { return false }

func (*Library) EngPutArray(native.Engine, native.Array) int { return failed }
func (*Library) EngGetArray(native.Engine, string) native.Array { return 0 }
func (*Library) SetName(native.Array, string) int { return failed }
func (*Library) GetName(native.Array) string { return "" }
func (*Library) MatPutArray(native.File, native.Array) int { return failed }
func (*Library) MatGetArray(native.File, string) native.Array { return 0 }
func (*Library) MatGetArrayHeader(native.File, string) native.Array { return 0 }
func (*Library) MatGetNextArrayHeader(native.File) native.Array { return 0 }
func (*Library) MatDeleteArray(native.File, string) int { return failed }
