// Command pngcore is a demo driver over the structural decoder core:
// it frames a PNG byte stream, verifies chunk CRCs, feeds tags into
// the chunk-ordering validator, inflates IDAT data with
// klauspost/compress's zlib reader, deinterlaces the result, parses
// any sPLT chunk, and prints a stats.Report of what it saw. It keeps
// the plain flag-and-log.Fatal shape of a small CLI entry point,
// without any server component.
//
// Scanline filter reversal is out of this core's scope, so the bytes
// this driver hands to Deinterlace are the raw zlib output: on a real
// filtered PNG that output still carries a leading filter-type byte
// per scanline and Deinterlace's length check will reject it. Driving
// this against an image saved with filter type 0 throughout, or a
// raster produced by this repo's own tests, decodes cleanly.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/klauspost/compress/zlib"

	png "pngcore"
	"pngcore/chunk"
	"pngcore/format"
	"pngcore/splt"
	"pngcore/stats"
)

func main() {
	path := flag.String("f", "", "path to a PNG file")
	flag.Parse()
	if *path == "" {
		log.Fatal("pngcore: -f is required")
	}

	src, err := newFileSource(*path)
	if err != nil {
		log.Fatalf("pngcore: %v", err)
	}
	defer src.Close()

	if err := run(src); err != nil {
		log.Fatalf("pngcore: %v", err)
	}
}

type counters struct {
	Chunks stats.Counter `stat:"chunks read"`
	IDAT   stats.Counter `stat:"IDAT bytes"`
	Out    stats.Counter `stat:"output bytes"`
}

func run(src byteSource) error {
	if err := readSignature(src); err != nil {
		return err
	}

	validator := chunk.New()
	var byTag stats.ByTag
	var report stats.Report
	var c counters
	report.Register("decode", &c)

	var idat bytes.Buffer
	var width, height int
	var interlaced bool

	for {
		raw, err := readChunk(src)
		if err != nil {
			return err
		}
		c.Chunks.Count()
		byTag.Count(string(raw.tag))

		pushFormat := format.Format{}
		if raw.tag == chunk.IHDR {
			ihdrFormat, w, h, il, err := parseIHDR(raw.data)
			if err != nil {
				return err
			}
			width, height, interlaced = w, h, il
			pushFormat = ihdrFormat
		} else if known, ok := validator.Format(); ok {
			pushFormat = known
		}

		if oerr := validator.Push(raw.tag, pushFormat); oerr != nil {
			return oerr
		}

		switch raw.tag {
		case chunk.IDAT:
			idat.Write(raw.data)
			c.IDAT.Add(len(raw.data))
		case chunk.SPLT:
			pal, err := splt.Parse(raw.data)
			if err != nil {
				return fmt.Errorf("sPLT: %w", err)
			}
			fmt.Printf("suggested palette %q: depth %d, %d entries\n", pal.Name, pal.Depth, len(pal.Entries8)+len(pal.Entries16))
		case chunk.IEND:
			return finish(validator, &idat, width, height, interlaced, byTag, &report, &c)
		}
	}
}

func finish(validator *chunk.Validator, idat *bytes.Buffer, width, height int, interlaced bool, byTag stats.ByTag, report *stats.Report, c *counters) error {
	f, _ := validator.Format()
	props := png.NewProperties(width, height, f, interlaced)

	zr, err := zlib.NewReader(idat)
	if err != nil {
		return fmt.Errorf("zlib: %w", err)
	}
	defer zr.Close()
	raster, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("zlib: %w", err)
	}

	img, err := png.Deinterlace(png.Image{Properties: props, Data: raster})
	if err != nil {
		return fmt.Errorf("deinterlace: %w", err)
	}
	c.Out.Add(len(img.Data))

	fmt.Printf("decoded %dx%d, %d output bytes\n", width, height, len(img.Data))
	fmt.Print(byTag.String())
	fmt.Print(report.String())
	return nil
}
