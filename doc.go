// Package lutlib loads 3D color-grading LUTs (HALD PNG, .cube, .3dl, .csp)
// and samples them with linear, bilinear, trilinear, and tetrahedral
// interpolation kernels.
//
// Decoding a HALD PNG exercises a small, self-contained DEFLATE/zlib
// decoder and PNG chunk demuxer (internal/deflate, internal/zlibstream,
// internal/pngchunk, internal/scanline) built from scratch against RFC
// 1950/1951 and the PNG specification, rather than reusing the standard
// library's image/png and compress/flate — the point of this library is
// the bit-exact decode path itself, not just the end result.
package lutlib
