package lutlib

import (
	"io"
	"log/slog"

	"github.com/MaratShch/lutlib/internal/cube"
	"github.com/MaratShch/lutlib/internal/hald"
	"github.com/MaratShch/lutlib/internal/interp"
	"github.com/MaratShch/lutlib/internal/lutgrid"
	"github.com/MaratShch/lutlib/internal/pngchunk"
	"github.com/MaratShch/lutlib/internal/scanline"
	"github.com/MaratShch/lutlib/internal/zlibstream"
)

// Grid and Color are re-exported so callers outside this module can name
// the types returned by the loaders below without reaching into an
// internal package.
type (
	Grid  = lutgrid.Grid
	Color = lutgrid.Color
)

// Grid32 and Color32 are the float32 analogues of Grid and Color, used by
// InterpolateF32. See ToGrid32.
type (
	Grid32  = lutgrid.Grid32
	Color32 = lutgrid.Color32
)

// Kernel selects an interpolation strategy for Interpolate.
type Kernel int

const (
	KernelLinear Kernel = iota
	KernelBilinear
	KernelTrilinear
	KernelTetrahedral
)

// Interpolate samples grid at (r, g, b) using the given kernel. Trilinear
// and Tetrahedral fall back to Bilinear and Trilinear respectively when any
// axis of the grid has resolution 1; Bilinear returns ErrNotApplicable
// (wrapped) unless exactly one axis has resolution 1. Linear never errors.
func Interpolate(grid *Grid, r, g, b float64, kernel Kernel) (Color, error) {
	switch kernel {
	case KernelLinear:
		return interp.Linear(grid, r, g, b), nil
	case KernelBilinear:
		out, err := interp.Bilinear(grid, r, g, b)
		return out, wrapErr(err)
	case KernelTrilinear:
		out, err := interp.Trilinear(grid, r, g, b)
		return out, wrapErr(err)
	case KernelTetrahedral:
		out, err := interp.Tetrahedral(grid, r, g, b)
		return out, wrapErr(err)
	default:
		return Color{}, wrapErr(interp.ErrNotApplicable)
	}
}

// ToGrid32 narrows grid to its float32 twin, for use with InterpolateF32.
// The narrowing happens once here, at the caller's boundary; it never
// happens inside an interpolation kernel itself, so the f32 and f64
// sampling paths never share an intermediate value.
func ToGrid32(grid *Grid) *Grid32 {
	return grid.ToGrid32()
}

// InterpolateF32 is the float32 twin of Interpolate: same kernel selection,
// same fallback rules, but every weight and sample read is float32-native
// via grid. Per spec §9, this path never widens to float64 internally, so
// its error accumulation — and therefore its tolerance under test — differs
// from Interpolate's by three to four orders of magnitude.
func InterpolateF32(grid *Grid32, r, g, b float32, kernel Kernel) (Color32, error) {
	switch kernel {
	case KernelLinear:
		return interp.Linear32(grid, r, g, b), nil
	case KernelBilinear:
		out, err := interp.Bilinear32(grid, r, g, b)
		return out, wrapErr(err)
	case KernelTrilinear:
		out, err := interp.Trilinear32(grid, r, g, b)
		return out, wrapErr(err)
	case KernelTetrahedral:
		out, err := interp.Tetrahedral32(grid, r, g, b)
		return out, wrapErr(err)
	default:
		return Color32{}, wrapErr(interp.ErrNotApplicable)
	}
}

// IntegrityReport records the non-fatal checksum flags produced while
// decoding a HALD PNG: an Adler-32 mismatch does not abort decoding, but
// callers may want to know about it. PNG chunk CRC-32 mismatches are not
// reported here: they are fatal, and DecodeHald returns the wrapped
// pngchunk.ErrBadCRC instead.
type IntegrityReport struct {
	AdlerChecksumPresent bool
	AdlerChecksumOK      bool
}

// DecodeHald decodes a HALD CLUT PNG into a Grid. It runs the full stack:
// PNG chunk demux, zlib/DEFLATE decompression, reverse scanline filtering,
// then the HALD pixel-to-grid mapping.
func DecodeHald(data []byte) (*Grid, IntegrityReport, error) {
	img, err := pngchunk.Demux(data)
	if err != nil {
		return nil, IntegrityReport{}, wrapErr(err)
	}
	slog.Debug("pngchunk demuxed", "width", img.Header.Width, "height", img.Header.Height, "channels", img.Header.Channels)

	zres, err := zlibstream.Decode(img.IDAT)
	if err != nil {
		return nil, IntegrityReport{}, wrapErr(err)
	}
	report := IntegrityReport{AdlerChecksumPresent: zres.ChecksumPresent, AdlerChecksumOK: zres.ChecksumOK}
	if zres.ChecksumPresent && !zres.ChecksumOK {
		slog.Warn("zlib Adler-32 trailer mismatch")
	}

	bytesPerSample := img.Header.BitDepth / 8
	if bytesPerSample < 1 {
		bytesPerSample = 1
	}
	rowBytes := img.Header.Width * img.Header.Channels * bytesPerSample
	bppBytes := rowBytes / img.Header.Width
	if bppBytes < 1 {
		bppBytes = 1
	}
	raw, err := scanline.Unfilter(zres.Data, img.Header.Height, rowBytes, bppBytes)
	if err != nil {
		return nil, report, wrapErr(err)
	}

	pixels := pixelsFromRaw(raw, img.Header.Width*img.Header.Height, img.Header.Channels, img.Header.BitDepth)
	maxValue := uint32(1)<<uint(img.Header.BitDepth) - 1
	grid, err := hald.FromPixels(img.Header.Width, img.Header.Height, maxValue, pixels)
	if err != nil {
		return nil, report, wrapErr(err)
	}
	return grid, report, nil
}

func pixelsFromRaw(raw []byte, count, channels, bitDepth int) []hald.Pixel {
	pixels := make([]hald.Pixel, count)
	bytesPerChan := bitDepth / 8
	if bytesPerChan < 1 {
		bytesPerChan = 1
	}
	stride := channels * bytesPerChan
	for i := 0; i < count; i++ {
		base := i * stride
		pixels[i] = hald.Pixel{
			R: readChannel(raw, base, bytesPerChan),
			G: readChannel(raw, base+bytesPerChan, bytesPerChan),
			B: readChannel(raw, base+2*bytesPerChan, bytesPerChan),
		}
	}
	return pixels
}

func readChannel(raw []byte, offset, bytesPerChan int) uint32 {
	if offset+bytesPerChan > len(raw) {
		return 0
	}
	if bytesPerChan == 1 {
		return uint32(raw[offset])
	}
	return uint32(raw[offset])<<8 | uint32(raw[offset+1])
}

// LoadCube parses an Adobe/ACES .cube file into a Grid.
func LoadCube(r io.Reader) (*Grid, error) {
	g, err := cube.ParseCUBE(r)
	return g, wrapErr(err)
}

// LoadThreeDL parses an Autodesk/Lustre .3dl file into a Grid.
func LoadThreeDL(r io.Reader) (*Grid, error) {
	g, err := cube.ParseThreeDL(r)
	return g, wrapErr(err)
}

// LoadCSP parses a Rising Sun Research cineSpace .csp file into a Grid.
func LoadCSP(r io.Reader) (*Grid, error) {
	g, err := cube.ParseCSP(r)
	return g, wrapErr(err)
}
