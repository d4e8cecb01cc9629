package engmat

import "github.com/hsiuhsiu/engmat-go/pkg/engmat/native"

// ClassID is an alias for native.ClassID.
type ClassID = native.ClassID

// Class constants re-exported for convenience.
const (
	ClassUnknown = native.ClassUnknown
	ClassLogical = native.ClassLogical
	ClassChar    = native.ClassChar
	ClassDouble  = native.ClassDouble
	ClassSingle  = native.ClassSingle
	ClassInt8    = native.ClassInt8
	ClassUint8   = native.ClassUint8
	ClassInt16   = native.ClassInt16
	ClassUint16  = native.ClassUint16
	ClassInt32   = native.ClassInt32
	ClassUint32  = native.ClassUint32
	ClassInt64   = native.ClassInt64
	ClassUint64  = native.ClassUint64
)

// ClassFor returns the class MATLAB stores values of type T as.
func ClassFor[T any]() ClassID {
	return native.ClassFor[T]()
}
