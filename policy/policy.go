//go:build !dev

// Package policy holds the byte-count ceilings a caller should apply
// before handing data to the decoder core, before allocating an
// output buffer. It keeps tunable numeric constants in a small
// package of their own rather than scattered through the code that
// uses them, and ships a `dev` build-tagged variant with looser
// values for local runs.
package policy

// MaxChunkBytes is the largest chunk body this core's callers should
// accept before parsing it. sPLT bodies and IDAT bodies are both
// bounded by it.
const MaxChunkBytes = 64 << 20

// MaxImageBytes bounds Uncompressed.Data and Properties.Shape.Bytes():
// a caller should refuse to allocate a deinterlace output buffer, or
// accept interlaced pass data, past this size.
const MaxImageBytes = 256 << 20

// MaxSuggestedPaletteEntries bounds the entry count New and Parse will
// accept for a single sPLT chunk, independent of MaxChunkBytes, since
// a pathological depth-8 body packs 6 bytes per entry.
const MaxSuggestedPaletteEntries = 65536
