package block

import (
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/planar/format"
)

// Element is the set of element types a Block can hold.
type Element interface {
	constraints.Integer | constraints.Float
}

// SizeOf returns the width of T in bytes.
func SizeOf[T Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// KindOf returns the frame element kind for T.
// Platform-sized int, uint and uintptr map to their fixed-width equivalents.
func KindOf[T Element]() format.ElementKind {
	size := SizeOf[T]()

	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		return format.KindFloat32
	case reflect.Float64:
		return format.KindFloat64
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return signedKind(size)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return unsignedKind(size)
	default:
		return format.KindInvalid
	}
}

func signedKind(size int) format.ElementKind {
	switch size {
	case 1:
		return format.KindInt8
	case 2:
		return format.KindInt16
	case 4:
		return format.KindInt32
	default:
		return format.KindInt64
	}
}

func unsignedKind(size int) format.ElementKind {
	switch size {
	case 1:
		return format.KindUint8
	case 2:
		return format.KindUint16
	case 4:
		return format.KindUint32
	default:
		return format.KindUint64
	}
}

// view reinterprets data as a slice of T without copying.
func view[T Element](data []byte) []T {
	if len(data) == 0 {
		return nil
	}

	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(data))), len(data)/SizeOf[T]())
}
