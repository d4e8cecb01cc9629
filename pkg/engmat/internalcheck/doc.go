// Package internalcheck holds structural tests for the engmat module.
//
// The tests load the module's packages with golang.org/x/tools/go/packages
// and enforce layout rules the compiler cannot: only internal/bindings may
// use cgo, the public API never exposes unsafe.Pointer, and native handles
// are never formatted into messages as addresses.
//
// # Internal Use Only
//
// The package has no exported API. It exists so that go test ./... runs the
// checks.
package internalcheck
