package descriptor

import (
	"container/list"
	"io"
	"io/fs"
	"os"
	"reflect"
)

// Sort is the closed classification of a parameter or value shape.
type Sort uint8

const (
	SortBool Sort = iota
	SortChar
	SortByte
	SortShort
	SortInt
	SortFloat
	SortLong
	SortDouble
	SortArray
	SortObject
	SortString
	SortMap
	SortList
	SortFile
	SortStream
)

var sortNames = [...]string{
	SortBool:   "bool",
	SortChar:   "char",
	SortByte:   "byte",
	SortShort:  "short",
	SortInt:    "int",
	SortFloat:  "float",
	SortLong:   "long",
	SortDouble: "double",
	SortArray:  "array",
	SortObject: "object",
	SortString: "string",
	SortMap:    "map",
	SortList:   "list",
	SortFile:   "file",
	SortStream: "stream",
}

// String returns the sort name.
func (s Sort) String() string {
	if int(s) < len(sortNames) {
		return sortNames[s]
	}
	return "unknown"
}

// Width is the number of slots a value of this sort occupies.
func (s Sort) Width() int {
	if s == SortLong || s == SortDouble {
		return 2
	}
	return 1
}

// IsPrimitive reports whether s is one of the eight primitive sorts.
func (s Sort) IsPrimitive() bool {
	return s <= SortDouble
}

// IsScalar reports whether values of s have a canonical textual form,
// i.e. s is primitive or string.
func (s Sort) IsScalar() bool {
	return s.IsPrimitive() || s == SortString
}

// IsExperimental reports whether s is accepted at extraction but only
// partially supported downstream. Extraction warns about these.
func (s Sort) IsExperimental() bool {
	switch s {
	case SortArray, SortMap, SortList, SortFile, SortStream:
		return true
	}
	return false
}

// Valid reports whether s is a member of the closed set.
func (s Sort) Valid() bool {
	return int(s) < len(sortNames)
}

var (
	listType   = reflect.TypeFor[list.List]()
	osFileType = reflect.TypeFor[*os.File]()
	fsFileType = reflect.TypeFor[fs.File]()
	readerType = reflect.TypeFor[io.Reader]()
)

// SortOf classifies a Go type. Char has no distinct Go kind and is only
// reachable through an explicit override on the parameter.
func SortOf(t reflect.Type) Sort {
	if t == nil {
		return SortObject
	}
	if t == listType || (t.Kind() == reflect.Pointer && t.Elem() == listType) {
		return SortList
	}
	if t == osFileType || t.Implements(fsFileType) {
		return SortFile
	}
	if t.Implements(readerType) {
		return SortStream
	}

	switch t.Kind() {
	case reflect.Bool:
		return SortBool
	case reflect.Int8, reflect.Uint8:
		return SortByte
	case reflect.Int16, reflect.Uint16:
		return SortShort
	case reflect.Int32, reflect.Uint32:
		return SortInt
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return SortLong
	case reflect.Float32:
		return SortFloat
	case reflect.Float64:
		return SortDouble
	case reflect.String:
		return SortString
	case reflect.Slice, reflect.Array:
		return SortArray
	case reflect.Map:
		return SortMap
	default:
		return SortObject
	}
}
