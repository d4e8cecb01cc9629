// Package engmat binds the MATLAB Engine, mx and MAT-file C libraries.
//
// A Library selects the native implementation and creates three kinds of
// wrapper, each owning exactly one native handle:
//
//   - Engine: a MATLAB engine session with captured output.
//   - Matrix: an mxArray, converted to and from row-major Go slices.
//   - File: a MAT-file opened in one Mode.
//
// Every wrapper has an idempotent Close. A finalizer closes wrappers that
// are dropped without it.
//
// The cgo bindings are only compiled with the "matlab" build tag:
//
//	go build -tags matlab ./...
//
// Without it Open reports ErrNotBuilt unless Config.Native supplies an
// implementation, such as the in-memory one from package memnative:
//
//	lib, err := engmat.Open(engmat.Config{Native: memnative.New()})
//	if err != nil {
//		return err
//	}
//	f, err := lib.OpenFile("data.mat", engmat.ModeWrite)
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//	err = f.PutDense("A", [][]float64{{1, 2}, {3, 4}})
package engmat
