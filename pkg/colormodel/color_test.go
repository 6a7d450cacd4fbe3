package colormodel

import "testing"

func TestRoundTripExactForInRangeInputs(t *testing.T) {
	for r := 0; r <= 255; r += 17 {
		u := UColor{uint8(r), uint8(255 - r), 128}
		got := u.ToFColor().ToUColor()

		if got != u {
			t.Errorf("round trip for %v = %v, want %v", u, got, u)
		}
	}
}

func TestToUColorClampsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		in   FColor
		want UColor
	}{
		{"negative", FColor{-1, -0.5, 0}, UColor{0, 0, 0}},
		{"over one", FColor{2, 1.5, 1}, UColor{255, 255, 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.ToUColor(); got != tc.want {
				t.Errorf("ToUColor(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestScaleAndAdd(t *testing.T) {
	c := FColor{0.1, 0.2, 0.3}.Scale(2).Add(FColor{0, 0, 0.1})
	want := FColor{0.2, 0.4, 0.7}

	if diff(c.R, want.R) > 1e-9 || diff(c.G, want.G) > 1e-9 || diff(c.B, want.B) > 1e-9 {
		t.Errorf("got %v, want %v", c, want)
	}
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
