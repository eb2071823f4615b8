// Package cube parses the three common text-based 3D LUT container
// formats (.cube, .3dl, .csp) into a lutgrid.Grid. All three are
// line-oriented; none carry compressed payloads, so these are thin
// bufio.Scanner-based readers with no Huffman/DEFLATE machinery.
package cube

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/MaratShch/lutlib/internal/lutgrid"
)

var (
	ErrMissingSize    = errors.New("cube: missing LUT size directive")
	ErrMalformedRow   = errors.New("cube: malformed data row")
	ErrRowCount       = errors.New("cube: row count does not match declared size")
	ErrNonUniformMesh = errors.New("cube: non-uniform per-axis breakpoints unsupported")
)

// ParseCUBE reads an Adobe/ACES .cube file: TITLE/DOMAIN_MIN/DOMAIN_MAX/
// LUT_3D_SIZE directives followed by N^3 rows of three floats in R-fastest
// order, matching the grid's native sample order directly.
func ParseCUBE(r io.Reader) (*lutgrid.Grid, error) {
	scanner := bufio.NewScanner(r)
	domainMin := lutgrid.Color{R: 0, G: 0, B: 0}
	domainMax := lutgrid.Color{R: 1, G: 1, B: 1}
	size := -1
	var samples []lutgrid.Color

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "TITLE":
			continue
		case "LUT_3D_SIZE":
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, ErrMalformedRow
			}
			size = n
			samples = make([]lutgrid.Color, 0, n*n*n)
		case "DOMAIN_MIN":
			c, err := parseTriplet(fields[1:])
			if err != nil {
				return nil, err
			}
			domainMin = c
		case "DOMAIN_MAX":
			c, err := parseTriplet(fields[1:])
			if err != nil {
				return nil, err
			}
			domainMax = c
		default:
			c, err := parseTriplet(fields)
			if err != nil {
				return nil, ErrMalformedRow
			}
			samples = append(samples, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, ErrMissingSize
	}
	if len(samples) != size*size*size {
		return nil, ErrRowCount
	}
	return lutgrid.New(size, size, size, domainMin, domainMax, samples)
}

func parseTriplet(fields []string) (lutgrid.Color, error) {
	if len(fields) < 3 {
		return lutgrid.Color{}, ErrMalformedRow
	}
	r, err1 := strconv.ParseFloat(fields[0], 64)
	g, err2 := strconv.ParseFloat(fields[1], 64)
	b, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return lutgrid.Color{}, ErrMalformedRow
	}
	return lutgrid.Color{R: r, G: g, B: b}, nil
}

// ParseThreeDL reads an Autodesk/Lustre .3dl file: a mesh-size line (the
// values-per-axis breakpoint list; its length gives N and its last value
// is taken as the mesh maximum) followed by N^3 output triplets on an
// integer mesh, each divided by that maximum into a domain_min=0,
// domain_max=1 grid.
func ParseThreeDL(r io.Reader) (*lutgrid.Grid, error) {
	scanner := bufio.NewScanner(r)
	var meshLine []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		meshLine = strings.Fields(line)
		break
	}
	if meshLine == nil {
		return nil, ErrMissingSize
	}
	size := len(meshLine)
	meshMax, err := strconv.Atoi(meshLine[len(meshLine)-1])
	if err != nil || meshMax <= 0 {
		return nil, ErrMalformedRow
	}

	var samples []lutgrid.Color
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, ErrMalformedRow
		}
		rv, err1 := strconv.Atoi(fields[0])
		gv, err2 := strconv.Atoi(fields[1])
		bv, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, ErrMalformedRow
		}
		samples = append(samples, lutgrid.Color{
			R: float64(rv) / float64(meshMax),
			G: float64(gv) / float64(meshMax),
			B: float64(bv) / float64(meshMax),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(samples) != size*size*size {
		return nil, ErrRowCount
	}
	return lutgrid.New(size, size, size, lutgrid.Color{0, 0, 0}, lutgrid.Color{1, 1, 1}, samples)
}

// ParseCSP reads a Rising Sun Research cineSpace .csp file: per-channel
// breakpoint lists followed by the 3D mesh body. Only the uniform-mesh
// case is supported, matching the original library's common path; a
// non-uniform breakpoint list is rejected with ErrNonUniformMesh.
func ParseCSP(r io.Reader) (*lutgrid.Grid, error) {
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, 64)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 1 || strings.ToUpper(lines[0]) != "CSPLUTV100" {
		return nil, ErrMalformedRow
	}
	// lines[1] is "3D"; the next nine lines are three (count, then
	// breakpoints, then values) blocks for R, G, B, each describing the
	// per-axis sampling of the *pre-LUT* 1D shaper curves (identity in the
	// uniform case we support).
	idx := 2
	for axis := 0; axis < 3; axis++ {
		if idx >= len(lines) {
			return nil, ErrMalformedRow
		}
		count, err := strconv.Atoi(lines[idx])
		if err != nil {
			return nil, ErrMalformedRow
		}
		idx++
		if idx+1 >= len(lines) {
			return nil, ErrMalformedRow
		}
		breakpoints := strings.Fields(lines[idx])
		idx++
		idx++ // skip the values line (identity shaper assumed)
		if len(breakpoints) != count {
			return nil, ErrMalformedRow
		}
		if !isUniform(breakpoints) {
			return nil, ErrNonUniformMesh
		}
	}

	if idx >= len(lines) {
		return nil, ErrMissingSize
	}
	dims := strings.Fields(lines[idx])
	idx++
	if len(dims) != 3 {
		return nil, ErrMalformedRow
	}
	rr, err1 := strconv.Atoi(dims[0])
	rg, err2 := strconv.Atoi(dims[1])
	rb, err3 := strconv.Atoi(dims[2])
	if err1 != nil || err2 != nil || err3 != nil || rr != rg || rg != rb {
		return nil, ErrMalformedRow
	}

	samples := make([]lutgrid.Color, 0, rr*rg*rb)
	for ; idx < len(lines); idx++ {
		fields := strings.Fields(lines[idx])
		if len(fields) < 3 {
			return nil, ErrMalformedRow
		}
		c, err := parseTriplet(fields)
		if err != nil {
			return nil, err
		}
		samples = append(samples, c)
	}
	if len(samples) != rr*rg*rb {
		return nil, ErrRowCount
	}
	return lutgrid.New(rr, rg, rb, lutgrid.Color{0, 0, 0}, lutgrid.Color{1, 1, 1}, samples)
}

// isUniform reports whether a breakpoint list is evenly spaced, tolerating
// small floating-point drift.
func isUniform(fields []string) bool {
	if len(fields) < 2 {
		return true
	}
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return false
		}
		vals[i] = v
	}
	step := vals[1] - vals[0]
	const tol = 1e-9
	for i := 2; i < len(vals); i++ {
		if diff := (vals[i] - vals[i-1]) - step; diff > tol || diff < -tol {
			return false
		}
	}
	return true
}
