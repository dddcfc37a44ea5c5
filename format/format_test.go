package format

import "testing"

func TestDerivedPredicates(t *testing.T) {
	cases := []struct {
		name                      string
		f                         Format
		indexed, color, alpha     bool
		channels, components      int
	}{
		{"gray8", Gray8, false, false, false, 1, 1},
		{"gray16", Gray16, false, false, false, 1, 1},
		{"rgb8", RGB8, false, true, false, 3, 3},
		{"indexed8", Indexed8, true, true, false, 1, 3},
		{"indexed1", Indexed1, true, true, false, 1, 3},
		{"grayalpha8", GrayAlpha8, false, false, true, 2, 2},
		{"rgba8", RGBA8, false, true, true, 4, 4},
		{"rgba16", RGBA16, false, true, true, 4, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.f.IsIndexed(); got != c.indexed {
				t.Errorf("IsIndexed() = %v, want %v", got, c.indexed)
			}
			if got := c.f.HasColor(); got != c.color {
				t.Errorf("HasColor() = %v, want %v", got, c.color)
			}
			if got := c.f.HasAlpha(); got != c.alpha {
				t.Errorf("HasAlpha() = %v, want %v", got, c.alpha)
			}
			if got := c.f.Channels(); got != c.channels {
				t.Errorf("Channels() = %d, want %d", got, c.channels)
			}
			if got := c.f.Components(); got != c.components {
				t.Errorf("Components() = %d, want %d", got, c.components)
			}
		})
	}
}

func TestInvariants(t *testing.T) {
	for _, f := range all {
		if f.IsIndexed() && f.Depth() > 8 {
			t.Errorf("%v: indexed format with depth > 8", f)
		}
		if f.HasAlpha() && f.Depth() < 8 {
			t.Errorf("%v: alpha format with depth < 8", f)
		}
		if f.HasColor() && !f.IsIndexed() && f.Depth() < 8 {
			t.Errorf("%v: non-indexed color format with depth < 8", f)
		}
	}
}

func TestNewRejectsIllegalCombinations(t *testing.T) {
	if _, err := New(1, TrueColor); err == nil {
		t.Fatal("expected error for depth 1 true color")
	}
	if _, err := New(3, Grayscale); err == nil {
		t.Fatal("expected error for depth 3 grayscale")
	}
	f, err := New(8, TrueColorAlpha)
	if err != nil || f != RGBA8 {
		t.Fatalf("New(8, TrueColorAlpha) = %v, %v, want RGBA8, nil", f, err)
	}
}

// TestShapePitch checks a handful of worked examples directly; the
// general boundary property that pitch is the minimal byte count
// covering the scanline is checked by TestShapePitchBound.
func TestShapePitch(t *testing.T) {
	cases := []struct {
		name       string
		f          Format
		w, h       int
		wantPitch  int
		wantBytes  int
	}{
		{"rgba8 3x2", RGBA8, 3, 2, 12, 24},
		{"gray1 9x1", Gray1, 9, 1, 2, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewShape(c.f, c.w, c.h)
			if s.Pitch != c.wantPitch {
				t.Errorf("Pitch = %d, want %d", s.Pitch, c.wantPitch)
			}
			if s.Bytes() != c.wantBytes {
				t.Errorf("Bytes() = %d, want %d", s.Bytes(), c.wantBytes)
			}
		})
	}
}

func TestShapePitchBound(t *testing.T) {
	for _, f := range all {
		for w := 1; w <= 17; w++ {
			scanlineBits := w * f.Channels() * int(f.Depth())
			s := NewShape(f, w, 1)
			if s.Pitch*8 < scanlineBits || s.Pitch*8 >= scanlineBits+8 {
				t.Errorf("%v width %d: pitch %d fails bound for %d bits", f, w, s.Pitch, scanlineBits)
			}
		}
	}
}
