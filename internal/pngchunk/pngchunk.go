// Package pngchunk demuxes a PNG byte stream into its IHDR header fields and
// concatenated IDAT payload, verifying the 8-byte signature and each chunk's
// CRC-32 trailer along the way. The reflected CRC-32 polynomial PNG uses
// (0xEDB88320) is the standard library's crc32.IEEE table, so this package
// leans on hash/crc32 rather than hand-rolling the table.
package pngchunk

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

var (
	ErrNotPNG          = errors.New("pngchunk: missing PNG signature")
	ErrBadCRC          = errors.New("pngchunk: chunk CRC-32 mismatch")
	ErrTruncated       = errors.New("pngchunk: truncated chunk stream")
	ErrMissingIHDR     = errors.New("pngchunk: first chunk is not IHDR")
	ErrUnsupportedColor = errors.New("pngchunk: unsupported color type")
	ErrUnsupportedIHDR = errors.New("pngchunk: nonzero compression/filter/interlace method")
)

var signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Header holds the fields recorded from the IHDR chunk.
type Header struct {
	Width, Height int
	BitDepth      int
	ColorType     int
	Channels      int
}

// Image is the result of demuxing a PNG byte stream: the IHDR fields and the
// concatenation of every IDAT chunk's payload, in appearance order.
type Image struct {
	Header Header
	IDAT   []byte
}

// channelsForColorType maps PNG color_type to pixel-channel count, per the
// IHDR color type table (grayscale, RGB, palette, grayscale+alpha, RGBA).
func channelsForColorType(colorType int) (int, bool) {
	switch colorType {
	case 0:
		return 1, true
	case 2:
		return 3, true
	case 3:
		return 1, false // palette: channel count not meaningful for HALD use
	case 4:
		return 2, true
	case 6:
		return 4, true
	default:
		return 0, false
	}
}

// Demux walks the chunk stream starting after the signature, verifying each
// chunk's CRC-32 and collecting IHDR and IDAT. It stops at IEND; any chunk
// type other than IHDR/IDAT/IEND is skipped once its CRC has been checked.
func Demux(data []byte) (*Image, error) {
	if len(data) < 8 || [8]byte(data[:8]) != signature {
		return nil, ErrNotPNG
	}
	pos := 8

	var img Image
	sawIHDR := false
	var idat []byte

	for {
		if pos+8 > len(data) {
			return nil, ErrTruncated
		}
		length := int(binary.BigEndian.Uint32(data[pos:]))
		typ := string(data[pos+4 : pos+8])
		bodyStart := pos + 8
		bodyEnd := bodyStart + length
		if length < 0 || bodyEnd+4 > len(data) {
			return nil, ErrTruncated
		}
		crcRegion := data[pos+4 : bodyEnd]
		wantCRC := binary.BigEndian.Uint32(data[bodyEnd:])
		if crc32.ChecksumIEEE(crcRegion) != wantCRC {
			return nil, ErrBadCRC
		}
		body := data[bodyStart:bodyEnd]

		switch typ {
		case "IHDR":
			if pos != 8 {
				return nil, ErrMissingIHDR
			}
			hdr, err := parseIHDR(body)
			if err != nil {
				return nil, err
			}
			img.Header = hdr
			sawIHDR = true
		case "IDAT":
			if !sawIHDR {
				return nil, ErrMissingIHDR
			}
			idat = append(idat, body...)
		case "IEND":
			img.IDAT = idat
			return &img, nil
		}

		pos = bodyEnd + 4
	}
}

func parseIHDR(body []byte) (Header, error) {
	if len(body) != 13 {
		return Header{}, ErrTruncated
	}
	width := int(binary.BigEndian.Uint32(body[0:4]))
	height := int(binary.BigEndian.Uint32(body[4:8]))
	bitDepth := int(body[8])
	colorType := int(body[9])
	compression := body[10]
	filter := body[11]
	interlace := body[12]

	if compression != 0 || filter != 0 || interlace != 0 {
		return Header{}, ErrUnsupportedIHDR
	}
	channels, ok := channelsForColorType(colorType)
	if !ok {
		return Header{}, ErrUnsupportedColor
	}
	return Header{
		Width:     width,
		Height:    height,
		BitDepth:  bitDepth,
		ColorType: colorType,
		Channels:  channels,
	}, nil
}
