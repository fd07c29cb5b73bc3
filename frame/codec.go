package frame

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/internal/hash"
	"github.com/arloliu/planar/internal/pool"
)

// Encode returns a frame holding h followed by payload.
// PayloadSize and Checksum are filled in from payload.
func Encode(h Header, payload []byte) ([]byte, error) {
	h.PayloadSize = uint64(len(payload))
	h.Checksum = hash.Checksum(payload)

	if err := h.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = h.AppendTo(out)

	return append(out, payload...), nil
}

// Decode parses a frame and returns its header and payload.
//
// The payload aliases data. Decode fails with errs.ErrEndianMismatch when the
// frame was written on a host with the other byte order, and with
// errs.ErrChecksumMismatch when the payload does not match its checksum.
func Decode(data []byte) (Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}

	payload := data[HeaderSize:]
	if uint64(len(payload)) != h.PayloadSize {
		return Header{}, nil, fmt.Errorf("%w: header declares %d payload bytes, have %d",
			errs.ErrInvalidFormat, h.PayloadSize, len(payload))
	}

	if err := verify(h, hash.Checksum(payload)); err != nil {
		return Header{}, nil, err
	}

	return h, payload, nil
}

// Write writes a frame to w and returns the number of bytes written.
func Write(w io.Writer, h Header, payload []byte) (int64, error) {
	h.PayloadSize = uint64(len(payload))
	h.Checksum = hash.Checksum(payload)

	if err := h.Validate(); err != nil {
		return 0, err
	}

	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	buf.Grow(HeaderSize + len(payload))
	buf.B = h.AppendTo(buf.B)
	buf.B = append(buf.B, payload...)

	return buf.WriteTo(w)
}

// Read reads exactly one frame from r.
//
// The payload buffer grows as bytes arrive, so a header declaring more than
// r holds fails with errs.ErrInvalidFormat without reserving the declared
// size up front. When only the checksum or byte-order check fails, the parsed
// header and payload are returned together with the error.
func Read(r io.Reader) (Header, []byte, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Header{}, nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeaderSize, err)
	}

	h, err := ParseHeader(hdr[:])
	if err != nil {
		return Header{}, nil, err
	}
	if h.PayloadSize > math.MaxInt64 {
		return Header{}, nil, fmt.Errorf("%w: payload size %d", errs.ErrInvalidFormat, h.PayloadSize)
	}

	d := hash.NewDigest()
	payload, err := io.ReadAll(io.LimitReader(io.TeeReader(r, d), int64(h.PayloadSize)))
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: read payload: %w", errs.ErrInvalidFormat, err)
	}
	if uint64(len(payload)) != h.PayloadSize {
		return Header{}, nil, fmt.Errorf("%w: truncated payload: %d of %d bytes", errs.ErrInvalidFormat, len(payload), h.PayloadSize)
	}

	if err := verify(h, d.Sum64()); err != nil {
		return h, payload, err
	}

	return h, payload, nil
}

func verify(h Header, sum uint64) error {
	if sum != h.Checksum {
		return fmt.Errorf("%w: expected 0x%016X, got 0x%016X", errs.ErrChecksumMismatch, h.Checksum, sum)
	}

	if !endian.IsNative(h.Flag.Engine()) {
		return fmt.Errorf("%w: frame is %s-endian", errs.ErrEndianMismatch, byteOrderName(h.Flag.IsBigEndian()))
	}

	return nil
}

func byteOrderName(big bool) string {
	if big {
		return "big"
	}

	return "little"
}
