package chunk

import (
	"testing"

	"pngcore/format"
)

func pushAll(v *Validator, f format.Format, tags ...Tag) (rejectedAt int, err *OrderingError) {
	for i, tag := range tags {
		if e := v.Push(tag, f); e != nil {
			return i, e
		}
	}
	return -1, nil
}

func TestS4SimpleGrayscaleStream(t *testing.T) {
	v := New()
	if _, err := pushAll(v, format.Gray8, IHDR, IDAT, IEND); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
}

func TestS5PLTERequiresColor(t *testing.T) {
	v := New()
	if _, err := pushAll(v, format.RGB8, IHDR, PLTE, IDAT, IEND); err != nil {
		t.Fatalf("rgb8 stream with PLTE should be accepted, got %v", err)
	}

	v2 := New()
	_, err := pushAll(v2, format.Gray8, IHDR, PLTE, IDAT, IEND)
	if err == nil || err.Kind != IllegalChunk {
		t.Fatalf("grayscale stream with PLTE should reject IllegalChunk, got %v", err)
	}
}

func TestS6PLTEAfterIDATIsMisplaced(t *testing.T) {
	v := New()
	_, err := pushAll(v, format.RGB8, IHDR, IDAT, PLTE)
	if err == nil || err.Kind != MisplacedChunk {
		t.Fatalf("PLTE after IDAT should reject MisplacedChunk, got %v", err)
	}
}

func TestS7NonConsecutiveIDATIsMisplaced(t *testing.T) {
	v := New()
	i, err := pushAll(v, format.Gray8, IHDR, IDAT, IDAT, TEXT, IDAT, IEND)
	if err == nil || err.Kind != MisplacedChunk {
		t.Fatalf("expected MisplacedChunk, got %v", err)
	}
	if i != 4 {
		t.Fatalf("expected rejection at index 4 (the third IDAT), got %d", i)
	}
}

func TestMissingHeader(t *testing.T) {
	v := New()
	err := v.Push(IDAT, format.Gray8)
	if err == nil || err.Kind != MissingHeader {
		t.Fatalf("expected MissingHeader, got %v", err)
	}
}

func TestPrematureIEND(t *testing.T) {
	v := New()
	if _, err := pushAll(v, format.Gray8, IHDR, IDAT, IEND); err != nil {
		t.Fatalf("setup stream should be accepted, got %v", err)
	}
	if err := v.Push(TEXT, format.Gray8); err == nil || err.Kind != PrematureIEND {
		t.Fatalf("expected PrematureIEND after IEND, got %v", err)
	}
	// The redesigned, stricter rule: a second IEND is also rejected.
	if err := v.Push(IEND, format.Gray8); err == nil || err.Kind != PrematureIEND {
		t.Fatalf("expected PrematureIEND on a second IEND, got %v", err)
	}
}

func TestTRNSIllegalWhenAlphaPresent(t *testing.T) {
	v := New()
	_, err := pushAll(v, format.RGBA8, IHDR, TRNS)
	if err == nil || err.Kind != IllegalChunk {
		t.Fatalf("tRNS on an alpha format should reject IllegalChunk, got %v", err)
	}
}

func TestPLTEMustPrecedeBKGDHISTTRNS(t *testing.T) {
	v := New()
	_, err := pushAll(v, format.Indexed8, IHDR, BKGD, PLTE)
	if err == nil || err.Kind != MisplacedChunk {
		t.Fatalf("PLTE after bKGD should reject MisplacedChunk, got %v", err)
	}
}

func TestMissingPaletteForIndexedFormat(t *testing.T) {
	v := New()
	_, err := pushAll(v, format.Indexed8, IHDR, IDAT)
	if err == nil || err.Kind != MissingPalette {
		t.Fatalf("indexed format without PLTE before first IDAT should reject MissingPalette, got %v", err)
	}
}

func TestDuplicateChunk(t *testing.T) {
	v := New()
	_, err := pushAll(v, format.Gray8, IHDR, IHDR)
	if err == nil || err.Kind != DuplicateChunk {
		t.Fatalf("duplicate IHDR should reject DuplicateChunk, got %v", err)
	}

	v2 := New()
	_, err = pushAll(v2, format.Gray8, IHDR, TIME, TIME)
	if err == nil || err.Kind != DuplicateChunk {
		t.Fatalf("duplicate tIME should reject DuplicateChunk, got %v", err)
	}

	v3 := New()
	_, err = pushAll(v3, format.RGB8, IHDR, PLTE, PLTE, IDAT, IEND)
	if err == nil || err.Kind != DuplicateChunk {
		t.Fatalf("duplicate PLTE before IDAT should reject DuplicateChunk, got %v", err)
	}
}

func TestRejectionLeavesStateUnchanged(t *testing.T) {
	v := New()
	pushAll(v, format.Gray8, IHDR, IDAT)

	before, _ := v.LastValid()
	if err := v.Push(PLTE, format.Gray8); err == nil {
		t.Fatal("expected PLTE to be rejected after IDAT")
	}
	after, _ := v.LastValid()
	if before != after {
		t.Fatalf("last valid changed on rejection: %v -> %v", before, after)
	}
	if v.seen[PLTE] {
		t.Fatal("rejected chunk should not be added to seen")
	}
}

func TestUnknownTagHasNoPlacementConstraint(t *testing.T) {
	v := New()
	_, err := pushAll(v, format.Gray8, IHDR, Tag("xxAB"), IDAT, IEND)
	if err != nil {
		t.Fatalf("private/unknown chunk should fall through cleanly, got %v", err)
	}
}

func TestAncillaryChunksMustPrecedePLTE(t *testing.T) {
	v := New()
	_, err := pushAll(v, format.RGB8, IHDR, PLTE, GAMA)
	if err == nil || err.Kind != MisplacedChunk {
		t.Fatalf("gAMA after PLTE should reject MisplacedChunk, got %v", err)
	}
}
