// Package endian selects the byte order used to read and write frame headers.
//
// A block's element bytes are always in host order. The frame header records
// which order that was, and the header fields themselves are written in the
// same order so a reader can detect a foreign frame from the first two bytes.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var native = detect()

func detect() EndianEngine {
	var marker uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&marker))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Native returns the host byte order.
func Native() EndianEngine {
	return native
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return native == binary.LittleEndian
}

// IsNative reports whether engine matches the host byte order.
func IsNative(engine EndianEngine) bool {
	return engine == native
}

// ForFlag returns the engine for a frame's big-endian flag.
func ForFlag(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
