// Package adam7 implements the Adam7 seven-pass interlacing layout
// used by PNG and the deinterlacer that reassembles a rectangular
// raster from it. It is grounded in the interlaceScan table and
// mergePassInto/readImagePass logic of a vendored PNG decoder
// (img1b/png), generalized from that decoder's single-bit indexed
// case to every PNG bit depth.
package adam7

import "pngcore/format"

// Strider is an arithmetic sequence (start, step) enumerating the
// destination coordinates a pass covers along one axis.
type Strider struct {
	Start, Step int
}

// At returns the i-th coordinate produced by the strider.
func (s Strider) At(i int) int { return s.Start + i*s.Step }

// count returns how many non-negative i satisfy s.At(i) < limit.
func (s Strider) count(limit int) int {
	if limit <= s.Start {
		return 0
	}
	return (limit - s.Start + s.Step - 1) / s.Step
}

// SubImage is one of the seven Adam7 sub-images: its own scanline
// geometry plus the striders mapping its pixels back onto the full
// image.
type SubImage struct {
	Shape               format.Shape
	StriderX, StriderY Strider
}

// passSpec is the (xStep, yStep, xStart, yStart) tuple for one Adam7
// pass, in the order defined by the PNG spec.
type passSpec struct{ xStep, yStep, xStart, yStart int }

var passSpecs = [7]passSpec{
	{8, 8, 0, 0},
	{8, 8, 4, 0},
	{4, 8, 0, 4},
	{4, 4, 2, 0},
	{2, 4, 0, 2},
	{2, 2, 1, 0},
	{1, 2, 0, 1},
}

// Layout describes, for a given pixel format and image size, either
// no interlacing or the seven Adam7 sub-images.
type Layout struct {
	Interlaced   bool
	Width, Height int
	Passes       [7]SubImage
}

// NewLayout builds the InterlacingLayout for an image of size
// width x height in format f.
func NewLayout(f format.Format, width, height int, interlaced bool) Layout {
	l := Layout{Interlaced: interlaced, Width: width, Height: height}
	if !interlaced {
		return l
	}
	for i, p := range passSpecs {
		strideX := Strider{p.xStart, p.xStep}
		strideY := Strider{p.yStart, p.yStep}
		w := strideX.count(width)
		h := strideY.count(height)
		l.Passes[i] = SubImage{
			Shape:    format.NewShape(f, w, h),
			StriderX: strideX,
			StriderY: strideY,
		}
	}
	return l
}

// Range is an exclusive byte range [Start, End) into a concatenated
// pass buffer.
type Range struct {
	Start, End int
}

// ByteRanges partitions a concatenated seven-pass buffer: ranges[i]
// covers exactly the bytes belonging to pass i.
func (l Layout) ByteRanges() [7]Range {
	var out [7]Range
	acc := 0
	for i, sub := range l.Passes {
		n := sub.Shape.Bytes()
		out[i] = Range{acc, acc + n}
		acc += n
	}
	return out
}

// Pitches produces one pitch value per scanline, in pass order: pass
// i contributes Passes[i].Shape.Height copies of Passes[i].Shape.Pitch.
// Empty passes (zero width or zero height) contribute nothing. This is the interface scanline
// filter code outside this package would drive.
func (l Layout) Pitches() []int {
	if !l.Interlaced {
		return nil
	}
	var out []int
	for _, sub := range l.Passes {
		if sub.Shape.Width == 0 {
			continue
		}
		for i := 0; i < sub.Shape.Height; i++ {
			out = append(out, sub.Shape.Pitch)
		}
	}
	return out
}
