// Package zlibstream implements the RFC 1950 zlib container: a two-byte
// header carrying the compression method and window size, a DEFLATE member,
// and an Adler-32 trailer. Unlike the DEFLATE decoder beneath it, a trailer
// mismatch here is reported as a non-fatal integrity flag rather than an
// error, matching the framer's "deliver what was decoded, flag the rest"
// contract.
package zlibstream

import (
	"errors"

	"github.com/MaratShch/lutlib/internal/bitio"
	"github.com/MaratShch/lutlib/internal/deflate"
)

var (
	ErrBadHeader       = errors.New("zlibstream: invalid header check")
	ErrUnsupportedMethod = errors.New("zlibstream: compression method is not DEFLATE")
	ErrPresetDict      = errors.New("zlibstream: preset dictionaries unsupported")
	ErrWindowTooLarge  = errors.New("zlibstream: window size exceeds 32768")
	ErrTruncatedHeader = errors.New("zlibstream: truncated zlib header")
)

const adlerModulus = 65521

// Result carries the decompressed payload and whether the trailing Adler-32
// checksum, if present, matched the computed value.
type Result struct {
	Data           []byte
	ChecksumOK     bool
	ChecksumPresent bool
}

// Decode parses a zlib stream per RFC 1950: header validation, DEFLATE
// member decoding (delegated to the deflate package), then an Adler-32
// trailer comparison that never aborts the call on mismatch.
func Decode(data []byte) (Result, error) {
	if len(data) < 2 {
		return Result{}, ErrTruncatedHeader
	}
	cmf := data[0]
	flg := data[1]

	if cmf&0x0F != 8 {
		return Result{}, ErrUnsupportedMethod
	}
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return Result{}, ErrBadHeader
	}
	if flg&0x20 != 0 {
		return Result{}, ErrPresetDict
	}
	windowSize := 1 << (((cmf >> 4) & 0x0F) + 8)
	if windowSize > 32768 {
		return Result{}, ErrWindowTooLarge
	}

	cur := bitio.New(data)
	cur.Skip(16) // CMF, FLG already validated above

	payload, err := deflate.Decode(cur)
	if err != nil {
		return Result{}, err
	}

	cur.AlignToByte()
	result := Result{Data: payload}
	if cur.Remaining() >= 32 {
		trailer, err := readBigEndian32(cur)
		if err == nil {
			result.ChecksumPresent = true
			result.ChecksumOK = trailer == adler32(payload)
		}
	}
	return result, nil
}

func readBigEndian32(cur *bitio.Cursor) (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		b, err := cur.ReadBits(8)
		if err != nil {
			return 0, err
		}
		v = (v << 8) | b
	}
	return v, nil
}

// adler32 computes the Adler-32 checksum per RFC 1950 §8: s1 initialized to
// 1, s2 to 0, both accumulated mod 65521 over every input byte.
func adler32(data []byte) uint32 {
	var s1, s2 uint32 = 1, 0
	for _, b := range data {
		s1 = (s1 + uint32(b)) % adlerModulus
		s2 = (s2 + s1) % adlerModulus
	}
	return (s2 << 16) | s1
}
