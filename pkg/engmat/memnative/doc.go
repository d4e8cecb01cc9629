// Package memnative provides an in-memory native.Library for testing and
// examples.
//
// It implements every libeng, libmx and libmat entry point the engmat
// wrappers use without linking MATLAB. Arrays and output buffers live in
// handle tables, engines keep a Workspace of variables, and MAT files are
// stored in a map keyed by path so that data survives close and reopen.
//
// # Usage
//
//	lib, err := engmat.Open(engmat.Config{Native: memnative.New()})
//	if err != nil {
//	    return err
//	}
//	eng, err := lib.OpenEngine(ctx)
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	out, _ := eng.EvaluateString(ctx, "x = [1 2; 3 4]")
//
// # Accounting
//
// Stats counts every acquisition and release, including releases of handles
// that are no longer valid. Tests use it to assert that wrappers release each
// handle exactly once.
//
// # Limitations
//
// Memnative is designed for testing and examples only:
//   - DefaultEvaluator understands assignments, matrix literals, transpose,
//     disp and clear; anything else prints an error message
//   - Files are not written to disk
//   - Complex data is allocated but never populated
package memnative
