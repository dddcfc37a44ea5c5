// Package splt parses and serializes the sPLT (suggested palette)
// chunk body: a representative example of a variable-layout PNG
// chunk with per-depth strides and a sorted-frequency invariant. It
// is grounded in the chunk-body parsing idiom of img1b/png/reader.go
// (parsePLTE/parsetRNS: a fixed prefix read via io.ReadFull followed
// by big-endian field decoding), generalized to sPLT's two-depth,
// variable-length entry layout.
package splt

import (
	"encoding/binary"
	"strconv"

	"pngcore/policy"
)

// Entry8 is one suggested-palette entry at depth 8.
type Entry8 struct {
	R, G, B, A uint8
	Freq       uint16
}

// Entry16 is one suggested-palette entry at depth 16.
type Entry16 struct {
	R, G, B, A uint16
	Freq       uint16
}

// Palette is a parsed or constructed sPLT chunk body.
type Palette struct {
	Name      string
	Depth     uint8
	Entries8  []Entry8
	Entries16 []Entry16
}

// NameError reports an invalid suggested-palette name.
type NameError struct{ Reason string }

func (e *NameError) Error() string { return "splt: invalid name: " + e.Reason }

// ChunkLengthError reports a chunk body too short to hold a name and
// depth byte.
type ChunkLengthError struct{ Got, Min int }

func (e *ChunkLengthError) Error() string {
	return "splt: chunk length " + strconv.Itoa(e.Got) + " shorter than minimum " + strconv.Itoa(e.Min)
}

// DataLengthError reports a trailing entry-data length that is not a
// multiple of the per-entry stride.
type DataLengthError struct{ Bytes, Stride int }

func (e *DataLengthError) Error() string {
	return "splt: entry data length " + strconv.Itoa(e.Bytes) + " not a multiple of stride " + strconv.Itoa(e.Stride)
}

// DepthCodeError reports a depth byte other than 8 or 16.
type DepthCodeError struct{ Code uint8 }

func (e *DepthCodeError) Error() string {
	return "splt: invalid depth code " + strconv.Itoa(int(e.Code))
}

// FrequencyError reports entries whose frequencies are not
// monotonically non-increasing.
type FrequencyError struct{}

func (e *FrequencyError) Error() string { return "splt: frequencies are not non-increasing" }

// EntryCountError reports an entry count past policy.MaxSuggestedPaletteEntries.
type EntryCountError struct{ Got, Max int }

func (e *EntryCountError) Error() string {
	return "splt: entry count " + strconv.Itoa(e.Got) + " exceeds policy maximum " + strconv.Itoa(e.Max)
}

func validateName(name []byte) error {
	n := len(name)
	if n < 1 || n > 79 {
		return &NameError{"length must be 1..79"}
	}
	if name[0] == ' ' || name[n-1] == ' ' {
		return &NameError{"leading or trailing space"}
	}
	prevSpace := false
	for _, b := range name {
		if !((b >= 0x20 && b <= 0x7D) || (b >= 0xA1 && b <= 0xFF)) {
			return &NameError{"scalar out of allowed range"}
		}
		if b == ' ' {
			if prevSpace {
				return &NameError{"consecutive spaces"}
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
	}
	return nil
}

func descending8(entries []Entry8) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i].Freq > entries[i-1].Freq {
			return false
		}
	}
	return true
}

func descending16(entries []Entry16) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i].Freq > entries[i-1].Freq {
			return false
		}
	}
	return true
}

// Parse decodes an sPLT chunk body.
func Parse(data []byte) (*Palette, error) {
	nul := -1
	for i, b := range data {
		if b == 0 {
			nul = i
			break
		}
	}
	if nul < 0 {
		return nil, &ChunkLengthError{len(data), 2}
	}
	name := data[:nul]
	if err := validateName(name); err != nil {
		return nil, err
	}
	if len(data) < nul+2 {
		return nil, &ChunkLengthError{len(data), nul + 2}
	}

	depth := data[nul+1]
	rest := data[nul+2:]
	p := &Palette{Name: string(name), Depth: depth}

	switch depth {
	case 8:
		const stride = 6
		if len(rest)%stride != 0 {
			return nil, &DataLengthError{len(rest), stride}
		}
		if n := len(rest) / stride; n > policy.MaxSuggestedPaletteEntries {
			return nil, &EntryCountError{n, policy.MaxSuggestedPaletteEntries}
		}
		for i := 0; i < len(rest); i += stride {
			p.Entries8 = append(p.Entries8, Entry8{
				R: rest[i], G: rest[i+1], B: rest[i+2], A: rest[i+3],
				Freq: binary.BigEndian.Uint16(rest[i+4 : i+6]),
			})
		}
		if !descending8(p.Entries8) {
			return nil, &FrequencyError{}
		}
	case 16:
		const stride = 10
		if len(rest)%stride != 0 {
			return nil, &DataLengthError{len(rest), stride}
		}
		if n := len(rest) / stride; n > policy.MaxSuggestedPaletteEntries {
			return nil, &EntryCountError{n, policy.MaxSuggestedPaletteEntries}
		}
		for i := 0; i < len(rest); i += stride {
			p.Entries16 = append(p.Entries16, Entry16{
				R:    binary.BigEndian.Uint16(rest[i : i+2]),
				G:    binary.BigEndian.Uint16(rest[i+2 : i+4]),
				B:    binary.BigEndian.Uint16(rest[i+4 : i+6]),
				A:    binary.BigEndian.Uint16(rest[i+6 : i+8]),
				Freq: binary.BigEndian.Uint16(rest[i+8 : i+10]),
			})
		}
		if !descending16(p.Entries16) {
			return nil, &FrequencyError{}
		}
	default:
		return nil, &DepthCodeError{depth}
	}

	return p, nil
}

// New validates and constructs a Palette at depth 8 or 16 from the
// given entries. Exactly one of entries8 or entries16 should be
// populated, matching Depth.
func New(name string, depth uint8, entries8 []Entry8, entries16 []Entry16) (*Palette, error) {
	if err := validateName([]byte(name)); err != nil {
		return nil, err
	}
	switch depth {
	case 8:
		if len(entries8) > policy.MaxSuggestedPaletteEntries {
			return nil, &EntryCountError{len(entries8), policy.MaxSuggestedPaletteEntries}
		}
		if !descending8(entries8) {
			return nil, &FrequencyError{}
		}
	case 16:
		if len(entries16) > policy.MaxSuggestedPaletteEntries {
			return nil, &EntryCountError{len(entries16), policy.MaxSuggestedPaletteEntries}
		}
		if !descending16(entries16) {
			return nil, &FrequencyError{}
		}
	default:
		return nil, &DepthCodeError{depth}
	}
	return &Palette{Name: name, Depth: depth, Entries8: entries8, Entries16: entries16}, nil
}

// Serialize is the inverse of Parse: name bytes, a trailing nul, the
// depth byte, then packed entries.
func (p *Palette) Serialize() ([]byte, error) {
	if err := validateName([]byte(p.Name)); err != nil {
		return nil, err
	}

	var buf []byte
	switch p.Depth {
	case 8:
		if !descending8(p.Entries8) {
			return nil, &FrequencyError{}
		}
		buf = make([]byte, 0, len(p.Name)+2+len(p.Entries8)*6)
		buf = append(buf, p.Name...)
		buf = append(buf, 0, p.Depth)
		for _, e := range p.Entries8 {
			buf = append(buf, e.R, e.G, e.B, e.A, byte(e.Freq>>8), byte(e.Freq))
		}
	case 16:
		if !descending16(p.Entries16) {
			return nil, &FrequencyError{}
		}
		buf = make([]byte, 0, len(p.Name)+2+len(p.Entries16)*10)
		buf = append(buf, p.Name...)
		buf = append(buf, 0, p.Depth)
		for _, e := range p.Entries16 {
			buf = binary.BigEndian.AppendUint16(buf, e.R)
			buf = binary.BigEndian.AppendUint16(buf, e.G)
			buf = binary.BigEndian.AppendUint16(buf, e.B)
			buf = binary.BigEndian.AppendUint16(buf, e.A)
			buf = binary.BigEndian.AppendUint16(buf, e.Freq)
		}
	default:
		return nil, &DepthCodeError{p.Depth}
	}
	return buf, nil
}
