package native

import (
	"reflect"
	"strconv"
)

// ClassID mirrors mxClassID. The values match matrix.h.
type ClassID int

const (
	ClassUnknown ClassID = iota
	ClassCell
	ClassStruct
	ClassLogical
	ClassChar
	ClassVoid
	ClassDouble
	ClassSingle
	ClassInt8
	ClassUint8
	ClassInt16
	ClassUint16
	ClassInt32
	ClassUint32
	ClassInt64
	ClassUint64
	ClassFunction
	ClassOpaque
	ClassObject
)

var classNames = [...]string{
	ClassUnknown:  "UNKNOWN",
	ClassCell:     "CELL",
	ClassStruct:   "STRUCT",
	ClassLogical:  "LOGICAL",
	ClassChar:     "CHAR",
	ClassVoid:     "VOID",
	ClassDouble:   "DOUBLE",
	ClassSingle:   "SINGLE",
	ClassInt8:     "INT8",
	ClassUint8:    "UINT8",
	ClassInt16:    "INT16",
	ClassUint16:   "UINT16",
	ClassInt32:    "INT32",
	ClassUint32:   "UINT32",
	ClassInt64:    "INT64",
	ClassUint64:   "UINT64",
	ClassFunction: "FUNCTION",
	ClassOpaque:   "OPAQUE",
	ClassObject:   "OBJECT",
}

// String returns the upper-case class name, e.g. "DOUBLE".
func (c ClassID) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "ClassID(" + strconv.Itoa(int(c)) + ")"
	}
	return classNames[c]
}

// ElementSize returns the storage width of one element, or 0 for classes
// that are not stored as plain numbers.
func (c ClassID) ElementSize() int {
	switch c {
	case ClassLogical, ClassInt8, ClassUint8:
		return 1
	case ClassChar, ClassInt16, ClassUint16:
		return 2
	case ClassSingle, ClassInt32, ClassUint32:
		return 4
	case ClassDouble, ClassInt64, ClassUint64:
		return 8
	default:
		return 0
	}
}

// Numeric reports whether arrays of this class can be created with
// mxCreateNumericMatrix.
func (c ClassID) Numeric() bool {
	switch c {
	case ClassDouble, ClassSingle,
		ClassInt8, ClassUint8, ClassInt16, ClassUint16,
		ClassInt32, ClassUint32, ClassInt64, ClassUint64:
		return true
	default:
		return false
	}
}

// ClassIDOf maps a Go element type to its MATLAB class. Types without a
// numeric counterpart map to ClassUnknown.
func ClassIDOf(t reflect.Type) ClassID {
	if t == nil {
		return ClassUnknown
	}
	switch t.Kind() {
	case reflect.Uint64:
		return ClassUint64
	case reflect.Int64:
		return ClassInt64
	case reflect.Uint32:
		return ClassUint32
	case reflect.Int32:
		return ClassInt32
	case reflect.Int16:
		return ClassInt16
	case reflect.Uint16:
		return ClassUint16
	case reflect.Uint8:
		return ClassUint8
	case reflect.Int8:
		return ClassInt8
	case reflect.Float32:
		return ClassSingle
	case reflect.Float64:
		return ClassDouble
	case reflect.Int:
		if strconv.IntSize == 64 {
			return ClassInt64
		}
		return ClassInt32
	case reflect.Uint:
		if strconv.IntSize == 64 {
			return ClassUint64
		}
		return ClassUint32
	default:
		return ClassUnknown
	}
}

// ClassFor is the generic form of ClassIDOf.
func ClassFor[T any]() ClassID {
	return ClassIDOf(reflect.TypeOf((*T)(nil)).Elem())
}
