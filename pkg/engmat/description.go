package engmat

import (
	"fmt"
	"slices"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

// MatrixDescription is a snapshot of an array header. It never refers back
// to the array it was read from.
type MatrixDescription struct {
	Name  string
	Rows  int
	Cols  int
	Class ClassID

	// Dims holds every dimension; Cols is the product of Dims[1:] as
	// mxGetN reports it.
	Dims []int
}

// TypeName returns the upper-case MATLAB class name, e.g. "DOUBLE".
func (d MatrixDescription) TypeName() string {
	return d.Class.String()
}

// String formats d as "Matrix <name>: <rows>x<cols> <TYPE>".
func (d MatrixDescription) String() string {
	return fmt.Sprintf("Matrix %s: %dx%d %s", d.Name, d.Rows, d.Cols, d.TypeName())
}

func describe(mx native.MX, h native.Array, name string) MatrixDescription {
	return MatrixDescription{
		Name:  name,
		Rows:  mx.GetM(h),
		Cols:  mx.GetN(h),
		Class: mx.GetClassID(h),
		Dims:  slices.Clone(mx.GetDimensions(h)),
	}
}
