// Package png ties together the pixel-format geometry (format) and
// the Adam7 interlacing layout and deinterlacer (adam7) into the
// bundle a PNG structural decoder's core needs: Properties, plus the
// Deinterlace and Decompose operations defined over it. The chunk
// stream grammar (chunk) and the suggested-palette chunk codec (splt)
// are separate packages that this one does not import.
package png

import (
	"fmt"

	"pngcore/adam7"
	"pngcore/format"
	"pngcore/policy"
)

// PaletteEntry is one RGB entry of a PLTE chunk.
type PaletteEntry struct {
	R, G, B uint8
}

// ChromaKey is the single transparent color named by a tRNS chunk for
// grayscale or truecolor images (as opposed to per-palette-entry
// transparency, which PaletteEntry-based formats carry separately and
// which this core does not model: tRNS parsing is not implemented
// here).
type ChromaKey struct {
	Gray       uint16
	R, G, B uint16
}

// Properties bundles a pixel format, its derived scanline Shape, its
// interlacing layout, and the optional palette/chroma-key that some
// formats carry.
type Properties struct {
	Format      format.Format
	Shape       format.Shape
	Interlacing adam7.Layout
	Palette     []PaletteEntry
	ChromaKey   *ChromaKey
}

// NewProperties constructs the Properties for an image of the given
// size and format, interlaced or not.
func NewProperties(width, height int, f format.Format, interlaced bool) Properties {
	return Properties{
		Format:      f,
		Shape:       format.NewShape(f, width, height),
		Interlacing: adam7.NewLayout(f, width, height, interlaced),
	}
}

// Image is an uncompressed byte buffer paired with the Properties
// describing its layout. When Properties.Interlacing.Interlaced is
// true, Data holds the seven Adam7 passes concatenated per
// Properties.Interlacing.ByteRanges; otherwise Data is a plain
// rectangular raster of Properties.Shape.Bytes() bytes.
type Image struct {
	Properties Properties
	Data       []byte
}

// interlacedLen returns the expected length of an interlaced Image's
// Data: the end of the seventh pass's byte range.
func interlacedLen(p Properties) int {
	ranges := p.Interlacing.ByteRanges()
	return ranges[6].End
}

// Deinterlace reconstitutes a rectangular raster from img's seven
// Adam7 passes. If img is already non-interlaced it is returned
// unchanged after checking its length: deinterlacing is transparent
// on non-interlaced input.
func Deinterlace(img Image) (Image, error) {
	p := img.Properties
	if p.Shape.Bytes() > policy.MaxImageBytes {
		return Image{}, fmt.Errorf("png: shape bytes %d exceeds policy maximum %d", p.Shape.Bytes(), policy.MaxImageBytes)
	}
	if !p.Interlacing.Interlaced {
		if len(img.Data) != p.Shape.Bytes() {
			return Image{}, fmt.Errorf("png: non-interlaced data length %d, want %d", len(img.Data), p.Shape.Bytes())
		}
		return img, nil
	}

	want := interlacedLen(p)
	if len(img.Data) != want {
		return Image{}, fmt.Errorf("png: interlaced data length %d, want %d", len(img.Data), want)
	}

	dst := make([]byte, p.Shape.Bytes())
	adam7.Deinterlace(p.Format, p.Interlacing, img.Data, dst)

	out := Properties{
		Format:    p.Format,
		Shape:     p.Shape,
		Palette:   p.Palette,
		ChromaKey: p.ChromaKey,
		// Interlacing left at its zero value: adam7.Layout{}.Interlaced
		// is false, matching a Rectangular result.
	}
	return Image{Properties: out, Data: dst}, nil
}

// Decompose splits an interlaced Image into the seven per-pass
// Images, each carrying its own Properties (sub-image size, same
// format, not interlaced), without merging them into a raster.
func Decompose(img Image) ([7]Image, error) {
	p := img.Properties
	if !p.Interlacing.Interlaced {
		return [7]Image{}, fmt.Errorf("png: Decompose requires an interlaced image")
	}
	want := interlacedLen(p)
	if len(img.Data) != want {
		return [7]Image{}, fmt.Errorf("png: interlaced data length %d, want %d", len(img.Data), want)
	}

	passes := adam7.Decompose(p.Interlacing, img.Data)
	var out [7]Image
	for i, sub := range p.Interlacing.Passes {
		out[i] = Image{
			Properties: Properties{
				Format: p.Format,
				Shape:  sub.Shape,
			},
			Data: passes[i],
		}
	}
	return out, nil
}
