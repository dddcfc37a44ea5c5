package adam7

import "pngcore/format"

// Deinterlace copies every pixel of the seven Adam7 sub-images packed
// into src into dst, which must already be zeroed and sized for
// format.NewShape(f, l.Width, l.Height).Bytes(): the sub-byte path
// below ORs bits into dst a pixel at a time, so any pre-existing
// garbage in an unwritten bit position would survive.
func Deinterlace(f format.Format, l Layout, src, dst []byte) {
	depth := int(f.Depth())
	channels := f.Channels()
	dstShape := format.NewShape(f, l.Width, l.Height)
	ranges := l.ByteRanges()

	for pass := 0; pass < 7; pass++ {
		sub := l.Passes[pass]
		if sub.Shape.Width == 0 || sub.Shape.Height == 0 {
			continue
		}
		base := ranges[pass].Start
		if depth >= 8 {
			deinterlaceWholeByte(sub, base, channels, depth, dstShape.Pitch, src, dst)
		} else {
			deinterlaceSubByte(sub, base, depth, dstShape.Pitch, src, dst)
		}
	}
}

func deinterlaceWholeByte(sub SubImage, base, channels, depth, dstPitch int, src, dst []byte) {
	bpp := channels * depth / 8
	for sy := 0; sy < sub.Shape.Height; sy++ {
		dy := sub.StriderY.At(sy)
		srcRow := base + sub.Shape.Pitch*sy
		dstRow := dstPitch * dy
		for sx := 0; sx < sub.Shape.Width; sx++ {
			dx := sub.StriderX.At(sx)
			srcOff := srcRow + sx*bpp
			dstOff := dstRow + dx*bpp
			copy(dst[dstOff:dstOff+bpp], src[srcOff:srcOff+bpp])
		}
	}
}

func deinterlaceSubByte(sub SubImage, base, depth, dstPitch int, src, dst []byte) {
	for sy := 0; sy < sub.Shape.Height; sy++ {
		dy := sub.StriderY.At(sy)
		srcRowBase := base + sub.Shape.Pitch*sy
		dstRowBase := dstPitch * dy
		for sx := 0; sx < sub.Shape.Width; sx++ {
			dx := sub.StriderX.At(sx)

			srcBitOff := sx * depth
			srcByte := srcRowBase + srcBitOff>>3
			srcBit := srcBitOff & 7

			dstBitOff := dx * depth
			dstByte := dstRowBase + dstBitOff>>3
			dstBit := dstBitOff & 7

			bits := (src[srcByte] << uint(srcBit)) >> uint(8-depth)
			dst[dstByte] |= bits << uint(8-dstBit-depth)
		}
	}
}

// Decompose splits src, a concatenated seven-pass buffer laid out per
// Layout.ByteRanges, into the seven per-pass byte slices without
// merging them into a rectangular raster.
func Decompose(l Layout, src []byte) [7][]byte {
	var out [7][]byte
	for i, r := range l.ByteRanges() {
		out[i] = src[r.Start:r.End]
	}
	return out
}
