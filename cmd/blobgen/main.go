// Command blobgen generates an organic blob shape and writes it as SVG path
// data, a standalone SVG file, and/or a PNG preview. An optional edit script
// replays pointer and parameter events against the generated shape.
//
// Usage:
//
//	blobgen -complexity 8 -smoothness 0.5 -fill '#3b82f6' -out blob.svg -png blob.png
//	blobgen -seed 42 -script edits.txt
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/blobgen/editor"
	"github.com/npillmayer/blobgen/outline"
	"github.com/npillmayer/blobgen/raster"
	"github.com/npillmayer/blobgen/shape"
	"github.com/npillmayer/blobgen/svgpath"
	"github.com/npillmayer/schuko/tracing"
)

var traceKeys = []string{"blobgen", "noise", "hobby", "shape", "svgpath", "editor", "outline", "raster"}

func main() {
	complexity := flag.Int("complexity", 8, "Number of anchors (3-20)")
	smoothness := flag.Float64("smoothness", 0.5, "Handle length factor (0-1)")
	size := flag.Float64("size", shape.DefaultSize, "Viewport size")
	fill := flag.String("fill", editor.DefaultFillColor, "Fill color")
	octaves := flag.Int("octaves", 1, "Noise octaves (1-8), more is rougher")
	seed := flag.Int64("seed", 0, "Noise seed (0 = random)")
	hobby := flag.Bool("hobby", false, "Derive handles with Hobby's algorithm")
	precision := flag.Int("precision", -1, "Decimals in path data (-1 = exact)")
	out := flag.String("out", "", "Write standalone SVG to this file")
	pngPath := flag.String("png", "", "Write PNG preview to this file")
	px := flag.Int("px", 600, "PNG edge length in pixels")
	handles := flag.Bool("handles", false, "Draw anchors and handles in the PNG preview")
	script := flag.String("script", "", "Replay edit events from this file ('-' = stdin)")
	report := flag.Bool("report", false, "Print bounds and area of the outline to stderr")
	trace := flag.Bool("trace", false, "Enable tracing")
	flag.Parse()

	if *trace {
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(tracing.LevelInfo)
		}
	}

	params := shape.Params{
		Complexity: *complexity,
		Smoothness: *smoothness,
		Size:       *size,
		Octaves:    *octaves,
	}
	if *hobby {
		params.Mode = shape.ModeHobby
	}
	if *seed != 0 {
		params = params.WithSeed(*seed)
	}
	session, err := editor.NewSession(params)
	if err != nil {
		fail("generating shape: %v", err)
	}
	session.SetFillColor(*fill)

	if *script != "" {
		if err := runScript(session, *script); err != nil {
			fail("edit script: %v", err)
		}
	}

	ring := session.Ring()
	format := svgpath.Formatter{Precision: *precision}
	p := session.Params()
	if *out != "" {
		markup := format.Markup(ring, p.Size, session.FillColor())
		if err := os.WriteFile(*out, []byte(markup+"\n"), 0o644); err != nil {
			fail("writing %s: %v", *out, err)
		}
	} else {
		fmt.Println(format.Serialize(ring))
	}

	if *pngPath != "" {
		opts := raster.DefaultOptions()
		opts.Pixels = *px
		opts.ShowHandles = *handles
		f, err := os.Create(*pngPath)
		if err != nil {
			fail("creating %s: %v", *pngPath, err)
		}
		if err := raster.WritePNG(f, ring, p.Size, session.FillColor(), opts); err != nil {
			f.Close()
			fail("rendering PNG: %v", err)
		}
		if err := f.Close(); err != nil {
			fail("closing %s: %v", *pngPath, err)
		}
	}

	if *report {
		bb := outline.Bounds(ring)
		fmt.Fprintf(os.Stderr, "anchors:  %d (%s handles)\n", ring.N(), p.Mode)
		fmt.Fprintf(os.Stderr, "bounds:   %s - %s\n", bb.Min, bb.Max)
		fmt.Fprintf(os.Stderr, "area:     %.2f\n", outline.Area(ring))
		fmt.Fprintf(os.Stderr, "visible:  %.1f%%\n", 100*outline.VisibleFraction(ring, p.Size))
		if outline.Overflows(ring, p.Size) {
			fmt.Fprintln(os.Stderr, "warning:  outline exceeds the viewport")
		}
	}
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
