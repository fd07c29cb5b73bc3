package frame

const (
	SplitMask       = 0x0001 // Mask for split layout bit (bit 0)
	EndiannessMask  = 0x0002 // Mask for endianness bit (bit 1)
	CompressedMask  = 0x0004 // Mask for compressed payload bit (bit 2)
	ReservedMask    = 0x0008 // Mask for reserved bit (bit 3)
	MagicNumberMask = 0xFFF0 // Mask for magic number (bits 4-15)

	MagicBlockV1Opt = 0xB1A0 // MagicBlockV1Opt identifies version 1 of the block frame.
)

// HeaderSize is the fixed frame header size in bytes.
const HeaderSize = 32
