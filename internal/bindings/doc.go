// Package bindings holds the cgo declarations for libeng, libmx and libmat.
//
// The real implementation compiles only with cgo and the "matlab" build tag,
// and expects the MATLAB installation (or a symlink to it) at ./matlab in the
// repository root. The pre-R14 transfer functions additionally need the
// "matlab_legacy" tag. Every other build gets stubs that report ErrNotBuilt.
//
// All C pointers cross this package as the integer handle types from
// pkg/engmat/native; element data is copied in and out with unsafe.Slice so no
// Go pointer is ever retained by C.
package bindings
