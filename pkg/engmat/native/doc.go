// Package native describes the boundary between the engmat wrappers and the
// three MATLAB shared libraries.
//
// The handle types are plain integers holding C pointers: the zero value is
// the null handle and nothing else about them is meaningful on the Go side.
// Eng, MX and MAT each declare one library's entry points in the shape the C
// headers give them, and Library bundles the three.
//
// Two implementations exist in this module: the cgo bindings linked from
// internal/bindings (build tag "matlab") and the pure-Go memnative package
// used by tests and examples.
//
// # Type Mapping
//
// ClassIDOf maps Go element kinds to mxClassID:
//
//	Go kind   | ClassID
//	----------|-------------
//	float64   | ClassDouble
//	float32   | ClassSingle
//	int8/16/32/64, uint8/16/32/64 | matching integer class
//	int, uint | 32 or 64 bit class by platform word size
//	anything else | ClassUnknown
package native
