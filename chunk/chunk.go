// Package chunk implements the finite-state grammar over PNG chunk
// type tags: the stream-ordering validator that must reject a
// malformed chunk sequence before any pixel work begins. It is
// grounded in the dsStart..dsSeenIEND decoding-stage machine of a
// vendored PNG decoder (img1b/png/reader.go's parseChunk), generalized
// from that decoder's five hard-coded cases (IHDR/PLTE/tRNS/IDAT/IEND)
// into the full placement-rule table the PNG spec defines for every
// ancillary chunk, and cross-checked against the PNG chunk-tag table
// in the wider retrieval pack (user54778-png's ChunkType set).
package chunk

import "pngcore/format"

// Tag is a four-ASCII-character PNG chunk type. Unknown or private
// tags are any Tag value not among the named constants below; they
// carry no placement constraints (rule R8), so no sentinel value is
// needed to represent them.
type Tag string

// The closed set of named chunk tags, per the PNG spec. iTXt, tEXt and
// zTXt are named here but carry no placement rules.
const (
	IHDR Tag = "IHDR"
	PLTE Tag = "PLTE"
	IDAT Tag = "IDAT"
	IEND Tag = "IEND"

	CHRM Tag = "cHRM"
	GAMA Tag = "gAMA"
	ICCP Tag = "iCCP"
	SBIT Tag = "sBIT"
	SRGB Tag = "sRGB"
	BKGD Tag = "bKGD"
	HIST Tag = "hIST"
	TRNS Tag = "tRNS"
	PHYS Tag = "pHYs"
	SPLT Tag = "sPLT"
	TIME Tag = "tIME"
	ITXT Tag = "iTXt"
	TEXT Tag = "tEXt"
	ZTXT Tag = "zTXt"
)

// ErrorKind identifies which rule an OrderingError came from.
type ErrorKind int

const (
	MissingHeader ErrorKind = iota
	PrematureIEND
	IllegalChunk
	MisplacedChunk
	DuplicateChunk
	MissingPalette
)

func (k ErrorKind) String() string {
	switch k {
	case MissingHeader:
		return "MissingHeader"
	case PrematureIEND:
		return "PrematureIEND"
	case IllegalChunk:
		return "IllegalChunk"
	case MisplacedChunk:
		return "MisplacedChunk"
	case DuplicateChunk:
		return "DuplicateChunk"
	case MissingPalette:
		return "MissingPalette"
	}
	return "unknown"
}

// OrderingError reports that a chunk was rejected by the validator.
type OrderingError struct {
	Kind ErrorKind
	Tag  Tag
}

func (e *OrderingError) Error() string {
	return "chunk: " + e.Kind.String() + " on " + string(e.Tag)
}

// placement records the fall-through cumulative placement rules (R6)
// for chunks that carry any: whether the chunk must precede PLTE,
// must precede IDAT, and whether it may appear more than once.
type placement struct {
	beforePLTE    bool
	beforeIDAT    bool
	nonRepeatable bool
}

var placements = map[Tag]placement{
	CHRM: {beforePLTE: true, beforeIDAT: true, nonRepeatable: true},
	GAMA: {beforePLTE: true, beforeIDAT: true, nonRepeatable: true},
	ICCP: {beforePLTE: true, beforeIDAT: true, nonRepeatable: true},
	SBIT: {beforePLTE: true, beforeIDAT: true, nonRepeatable: true},
	SRGB: {beforePLTE: true, beforeIDAT: true, nonRepeatable: true},

	PLTE: {beforeIDAT: true, nonRepeatable: true},
	BKGD: {beforeIDAT: true, nonRepeatable: true},
	HIST: {beforeIDAT: true, nonRepeatable: true},
	TRNS: {beforeIDAT: true, nonRepeatable: true},
	PHYS: {beforeIDAT: true, nonRepeatable: true},
	SPLT: {beforeIDAT: true},

	IHDR: {nonRepeatable: true},
	TIME: {nonRepeatable: true},
}

// Validator is the OrderingValidator state machine. Its zero value is
// not ready to use; construct one with New.
type Validator struct {
	started     bool
	lastValid   Tag
	seen        map[Tag]bool
	format      *format.Format
	sawIDAT     bool
	reachedIEND bool
}

// New returns an empty Validator, ready to have chunk tags Push'd in
// stream order.
func New() *Validator {
	return &Validator{seen: make(map[Tag]bool)}
}

// Push advances the validator by one chunk. ihdrFormat is consulted
// only when tag == IHDR; it is how the validator learns the image's
// pixel format, which the caller must have already extracted from the
// chunk body (format extraction is outside the validator's scope).
//
// Push returns nil on acceptance. On rejection the validator's state
// is unchanged: the offending tag is not added to the seen set and
// last-valid tag is left as it was.
func (v *Validator) Push(tag Tag, ihdrFormat format.Format) *OrderingError {
	if !v.started && tag != IHDR {
		return &OrderingError{MissingHeader, tag}
	}
	if v.reachedIEND {
		// Reject every chunk once IEND has been accepted, including
		// a second IEND: see DESIGN.md.
		return &OrderingError{PrematureIEND, tag}
	}
	if tag != IHDR && v.format == nil {
		return &OrderingError{MissingHeader, tag}
	}

	switch tag {
	case TRNS:
		if v.format.HasAlpha() {
			return &OrderingError{IllegalChunk, tag}
		}
	case PLTE:
		if !v.format.HasColor() {
			return &OrderingError{IllegalChunk, tag}
		}
		if v.seen[BKGD] || v.seen[HIST] || v.seen[TRNS] {
			return &OrderingError{MisplacedChunk, tag}
		}
	}

	if p, ok := placements[tag]; ok {
		if p.beforePLTE && v.seen[PLTE] {
			return &OrderingError{MisplacedChunk, tag}
		}
		if p.beforeIDAT && v.sawIDAT {
			return &OrderingError{MisplacedChunk, tag}
		}
		if p.nonRepeatable && v.seen[tag] {
			return &OrderingError{DuplicateChunk, tag}
		}
	}

	if tag == IDAT {
		if v.lastValid != IDAT && v.seen[IDAT] {
			return &OrderingError{MisplacedChunk, tag}
		}
		if !v.sawIDAT && v.format.IsIndexed() && !v.seen[PLTE] {
			return &OrderingError{MissingPalette, tag}
		}
		v.sawIDAT = true
	}

	if tag == IHDR {
		f := ihdrFormat
		v.format = &f
	}
	v.started = true
	v.lastValid = tag
	v.seen[tag] = true
	if tag == IEND {
		v.reachedIEND = true
	}
	return nil
}

// LastValid returns the most recently accepted tag and whether any
// chunk has been accepted yet.
func (v *Validator) LastValid() (Tag, bool) { return v.lastValid, v.started }

// Format returns the format learned from IHDR, if any chunk has been
// accepted yet.
func (v *Validator) Format() (format.Format, bool) {
	if v.format == nil {
		return format.Format{}, false
	}
	return *v.format, true
}
