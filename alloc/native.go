package alloc

import "golang.org/x/sys/cpu"

// NativeBoundary returns the widest SIMD register width of the host in bytes:
// 64 with AVX-512, 32 with AVX or AVX2, 16 otherwise.
func NativeBoundary() int {
	switch {
	case cpu.X86.HasAVX512F:
		return Boundary64
	case cpu.X86.HasAVX2, cpu.X86.HasAVX:
		return Boundary32
	default:
		return Boundary16
	}
}

// Name returns a short human-readable name for a policy value.
func Name(p Policy) string {
	switch p.(type) {
	case Standard:
		return "standard"
	case Aligned16:
		return "aligned16"
	case Aligned32:
		return "aligned32"
	case Aligned64:
		return "aligned64"
	case Mapped:
		return "mapped"
	default:
		return "custom"
	}
}
