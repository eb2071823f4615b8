// Command lutprobe inspects and samples color-grading LUTs.
//
// Usage:
//
//	lutprobe info <file>                     Print resolution, domain, degeneracy
//	lutprobe sample <file> r g b [options]    Interpolate one color
//	lutprobe check <file>                     Report decode integrity flags
//
// sample accepts --kernel=linear|bilinear|trilinear|tetrahedral and --f32
// to switch the interpolation path from float64 to float32.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	lutlib "github.com/MaratShch/lutlib"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "sample":
		err = runSample(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "lutprobe: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "lutprobe: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  lutprobe info <file>
  lutprobe sample <file> r g b [--kernel=trilinear|tetrahedral|bilinear|linear] [--f32]
  lutprobe check <file>
`)
}

func loadGrid(path string) (*lutlib.Grid, *lutlib.IntegrityReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		g, report, err := lutlib.DecodeHald(data)
		return g, &report, err
	case ".cube":
		g, err := lutlib.LoadCube(bytes.NewReader(data))
		return g, nil, err
	case ".3dl":
		g, err := lutlib.LoadThreeDL(bytes.NewReader(data))
		return g, nil, err
	case ".csp":
		g, err := lutlib.LoadCSP(bytes.NewReader(data))
		return g, nil, err
	default:
		return nil, nil, fmt.Errorf("lutprobe: unrecognized extension %q", filepath.Ext(path))
	}
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("info: missing input file")
	}
	g, _, err := loadGrid(fs.Arg(0))
	if err != nil {
		return err
	}
	rr, rg, rb := g.Res()
	fmt.Printf("resolution: %dx%dx%d\n", rr, rg, rb)
	fmt.Printf("domain_min: %v\n", g.DomainMin())
	fmt.Printf("domain_max: %v\n", g.DomainMax())
	degenerate := rr == 1 || rg == 1 || rb == 1
	fmt.Printf("degenerate: %v\n", degenerate)
	return nil
}

func runSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	kernelName := fs.String("kernel", "trilinear", "interpolation kernel: linear|bilinear|trilinear|tetrahedral")
	f32 := fs.Bool("f32", false, "interpolate in float32 instead of float64")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos := fs.Args()
	if len(pos) < 4 {
		return fmt.Errorf("sample: usage: lutprobe sample <file> r g b")
	}
	// Options may also follow r g b; flag parsing stops at the first
	// positional argument, so parse the remainder separately.
	if len(pos) > 4 {
		if err := fs.Parse(pos[4:]); err != nil {
			return err
		}
		if fs.NArg() > 0 {
			return fmt.Errorf("sample: unexpected argument %q", fs.Arg(0))
		}
	}
	g, _, err := loadGrid(pos[0])
	if err != nil {
		return err
	}
	r, err := strconv.ParseFloat(pos[1], 64)
	if err != nil {
		return fmt.Errorf("sample: invalid r: %w", err)
	}
	gc, err := strconv.ParseFloat(pos[2], 64)
	if err != nil {
		return fmt.Errorf("sample: invalid g: %w", err)
	}
	b, err := strconv.ParseFloat(pos[3], 64)
	if err != nil {
		return fmt.Errorf("sample: invalid b: %w", err)
	}

	kernel, err := parseKernel(*kernelName)
	if err != nil {
		return err
	}

	if *f32 {
		g32 := lutlib.ToGrid32(g)
		out, err := lutlib.InterpolateF32(g32, float32(r), float32(gc), float32(b), kernel)
		if err != nil {
			return err
		}
		fmt.Printf("%.6f %.6f %.6f\n", out.R, out.G, out.B)
		return nil
	}

	out, err := lutlib.Interpolate(g, r, gc, b, kernel)
	if err != nil {
		return err
	}
	fmt.Printf("%.6f %.6f %.6f\n", out.R, out.G, out.B)
	return nil
}

func parseKernel(name string) (lutlib.Kernel, error) {
	switch strings.ToLower(name) {
	case "linear":
		return lutlib.KernelLinear, nil
	case "bilinear":
		return lutlib.KernelBilinear, nil
	case "trilinear":
		return lutlib.KernelTrilinear, nil
	case "tetrahedral":
		return lutlib.KernelTetrahedral, nil
	default:
		return 0, fmt.Errorf("sample: unknown kernel %q", name)
	}
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("check: missing input file")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	_, report, err := lutlib.DecodeHald(data)
	if err != nil {
		return err
	}
	fmt.Printf("adler32_present: %v\n", report.AdlerChecksumPresent)
	fmt.Printf("adler32_ok: %v\n", report.AdlerChecksumOK)
	return nil
}
