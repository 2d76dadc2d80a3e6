package graphics

import "testing"

// TestRectContains verifies inclusive/exclusive edge handling.
func TestRectContains(t *testing.T) {
	r := RectFromLTWH(10, 10, 100, 50)

	cases := []struct {
		name string
		p    Offset
		want bool
	}{
		{"inside", Offset{X: 50, Y: 30}, true},
		{"top-left corner", Offset{X: 10, Y: 10}, true},
		{"right edge", Offset{X: 110, Y: 30}, false},
		{"bottom edge", Offset{X: 50, Y: 60}, false},
		{"outside left", Offset{X: 9, Y: 30}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestRectShift(t *testing.T) {
	r := RectFromLTWH(0, 0, 10, 10).Shift(Offset{X: 5, Y: -5})
	if r.Left != 5 || r.Top != -5 || r.Right != 15 || r.Bottom != 5 {
		t.Errorf("unexpected shifted rect: %+v", r)
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := ColorBlack.WithAlpha(0.5)
	if got := c.Alpha(); got < 0.49 || got > 0.51 {
		t.Errorf("Alpha() = %v, want ~0.5", got)
	}
	if uint32(c)&0x00FFFFFF != 0 {
		t.Error("WithAlpha should not touch RGB channels")
	}
}

func TestColorLerp(t *testing.T) {
	a := RGBA8(0, 0, 0, 0)
	b := RGBA8(255, 255, 255, 255)
	mid := a.Lerp(b, 0.5)
	r, g, bl, al := mid.RGBAF()
	for _, v := range []float64{r, g, bl, al} {
		if v < 0.49 || v > 0.51 {
			t.Errorf("Lerp midpoint channel = %v, want ~0.5", v)
		}
	}
	if a.Lerp(b, 0) != a || a.Lerp(b, 1) != b {
		t.Error("Lerp endpoints should be exact")
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#000000", ColorBlack, false},
		{"#FFFFFFFF", ColorWhite, false},
		{"#fff", ColorWhite, false},
		{"#000000CC", RGBA8(0, 0, 0, 0xCC), false},
		{"black", ColorBlack, false},
		{"White", ColorWhite, false},
		{"steelblue", RGB(70, 130, 180), false},
		{"", 0, true},
		{"#12345", 0, true},
		{"notacolor", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %08X, want %08X", tc.in, uint32(got), uint32(tc.want))
		}
	}
}
