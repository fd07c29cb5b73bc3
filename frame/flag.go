package frame

import (
	"fmt"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// Flag is the first four bytes of a frame header.
type Flag struct {
	// Options packs the layout, endianness and compressed bits with the magic number.
	Options uint16

	// ElementKind identifies the element type of the payload.
	ElementKind format.ElementKind

	// CompressionType is the codec configured for the block. The payload is
	// only compressed with it when IsCompressed reports true.
	CompressionType format.CompressionType
}

// NewFlag creates a flag in host byte order for an uncompressed dense payload.
func NewFlag(kind format.ElementKind, compression format.CompressionType) Flag {
	f := Flag{
		Options:         MagicBlockV1Opt,
		ElementKind:     kind,
		CompressionType: compression,
	}
	f.SetBigEndian(!endian.IsNativeLittleEndian())

	return f
}

func (f Flag) IsSplit() bool {
	return f.Options&SplitMask != 0
}

// SetLayout records whether the payload holds bit planes.
func (f *Flag) SetLayout(layout format.Layout) {
	if layout == format.LayoutSplit {
		f.Options |= SplitMask
	} else {
		f.Options &^= SplitMask
	}
}

// Layout returns the payload layout.
func (f Flag) Layout() format.Layout {
	if f.IsSplit() {
		return format.LayoutSplit
	}

	return format.LayoutDense
}

func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

func (f *Flag) SetBigEndian(big bool) {
	if big {
		f.Options |= EndiannessMask
	} else {
		f.Options &^= EndiannessMask
	}
}

func (f Flag) IsCompressed() bool {
	return f.Options&CompressedMask != 0
}

func (f *Flag) SetCompressed(compressed bool) {
	if compressed {
		f.Options |= CompressedMask
	} else {
		f.Options &^= CompressedMask
	}
}

// MagicNumber returns bits 4-15 of Options.
func (f Flag) MagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Engine returns the byte order of the header fields and payload.
func (f Flag) Engine() endian.EndianEngine {
	return endian.ForFlag(f.IsBigEndian())
}

// Validate checks the magic number, reserved bit and enum fields.
func (f Flag) Validate() error {
	if f.MagicNumber() != MagicBlockV1Opt {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.MagicNumber())
	}

	if f.Options&ReservedMask != 0 {
		return fmt.Errorf("%w: reserved option bit set", errs.ErrInvalidFormat)
	}

	if f.ElementKind.Size() == 0 {
		return fmt.Errorf("%w: element kind 0x%02X", errs.ErrInvalidFormat, uint8(f.ElementKind))
	}

	if f.CompressionType.String() == "Unknown" {
		return fmt.Errorf("%w: 0x%02X", errs.ErrUnsupportedCompression, uint8(f.CompressionType))
	}

	if f.IsSplit() && f.ElementKind != format.KindUint32 && f.ElementKind != format.KindUint64 {
		return fmt.Errorf("%w: split layout requires uint32 or uint64 elements, got %s", errs.ErrInvalidFormat, f.ElementKind)
	}

	return nil
}
