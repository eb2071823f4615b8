// Package scanline reverses PNG's per-row byte filtering (None, Sub, Up,
// Average, Paeth), turning a filtered IDAT stream back into raw pixel rows.
package scanline

import (
	"errors"

	"github.com/MaratShch/lutlib/internal/pool"
)

var ErrBadFilter = errors.New("scanline: unknown filter type")

// Unfilter reverses row filtering over data, which holds height rows each
// prefixed by one filter-type byte followed by rowBytes raw bytes.
// bppBytes is the prediction neighbour offset: max(1, channels*bitDepth/8).
func Unfilter(data []byte, height, rowBytes, bppBytes int) ([]byte, error) {
	stride := 1 + rowBytes
	if len(data) < stride*height {
		return nil, ErrBadFilter
	}
	// The reconstruction buffer comes from the shared pool, same as the
	// DEFLATE output window: it's released once the final right-sized
	// copy is taken, regardless of which return path is taken.
	work := pool.Get(rowBytes * height)
	defer pool.Put(work)
	var prevRow []byte
	for row := 0; row < height; row++ {
		rowStart := row * stride
		filterType := data[rowStart]
		src := data[rowStart+1 : rowStart+1+rowBytes]
		dst := work[row*rowBytes : (row+1)*rowBytes]

		for x := 0; x < rowBytes; x++ {
			var a, b, c byte
			if x >= bppBytes {
				a = dst[x-bppBytes]
			}
			if prevRow != nil {
				b = prevRow[x]
				if x >= bppBytes {
					c = prevRow[x-bppBytes]
				}
			}
			var recon byte
			switch filterType {
			case 0:
				recon = src[x]
			case 1:
				recon = src[x] + a
			case 2:
				recon = src[x] + b
			case 3:
				recon = src[x] + byte((int(a)+int(b))/2)
			case 4:
				recon = src[x] + paeth(a, b, c)
			default:
				return nil, ErrBadFilter
			}
			dst[x] = recon
		}
		prevRow = dst
	}
	out := make([]byte, len(work))
	copy(out, work)
	return out, nil
}

// paeth implements the PNG Paeth predictor (spec §4.F): pick whichever of
// a, b, c the linear predictor a+b-c lands closest to, with ties favoring a
// then b.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
