package colour

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestBrightness(t *testing.T) {
	tests := []struct {
		colour Hex
		want   float64
	}{
		{"000000", 0},
		{"808080", 0.5},
		// Channels are scaled by 256, so white never reaches 1.
		{"ffffff", 255.0 / 256.0},
		{"ff0000", 255.0 / 512.0},
		{"00ff00", 255.0 / 512.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.colour), func(t *testing.T) {
			got, err := Brightness(tt.colour)
			if err != nil {
				t.Fatalf("Brightness(%s) unexpected error: %v", tt.colour, err)
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Brightness(%s) = %v, want %v", tt.colour, got, tt.want)
			}
		})
	}
}

func TestHLSKnownValues(t *testing.T) {
	tests := []struct {
		colour string
		want   HLS
	}{
		{"#ff0000", HLS{H: 0, L: 255.0 / 512.0, S: 1}},
		{"#00ff00", HLS{H: 1.0 / 3.0, L: 255.0 / 512.0, S: 1}},
		{"#0000ff", HLS{H: 2.0 / 3.0, L: 255.0 / 512.0, S: 1}},
		{"#404040", HLS{H: 0, L: 0.25, S: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.colour, func(t *testing.T) {
			got, err := ToHLS(tt.colour)
			if err != nil {
				t.Fatalf("ToHLS(%q) unexpected error: %v", tt.colour, err)
			}
			if math.Abs(got.H-tt.want.H) > epsilon || math.Abs(got.L-tt.want.L) > epsilon || math.Abs(got.S-tt.want.S) > epsilon {
				t.Errorf("ToHLS(%q) = %+v, want %+v", tt.colour, got, tt.want)
			}
		})
	}
}

func TestFromHLS(t *testing.T) {
	tests := []struct {
		name string
		in   HLS
		want Hex
	}{
		{name: "black", in: HLS{}, want: "000000"},
		{name: "grey rounds down", in: HLS{L: 0.08}, want: "141414"},
		{name: "lightness one clamps", in: HLS{L: 1}, want: "ffffff"},
		{name: "red", in: HLS{H: 0, L: 0.5, S: 1}, want: "ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromHLS(tt.in); got != tt.want {
				t.Errorf("FromHLS(%+v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestHLSRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				in := RGB{uint8(r), uint8(g), uint8(b)}
				out, err := FromHLS(in.HLS()).RGB()
				if err != nil {
					t.Fatalf("round trip of %s produced invalid colour: %v", in.Hex(), err)
				}
				if channelDiff(in.R, out.R) > 1 || channelDiff(in.G, out.G) > 1 || channelDiff(in.B, out.B) > 1 {
					t.Errorf("round trip %s -> %s differs by more than 1 per channel", in.Hex(), out.Hex())
				}
			}
		}
	}
}

func channelDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestContrastAntisymmetric(t *testing.T) {
	colours := []Hex{"000000", "ffffff", "ff0000", "123456", "abcdef", "808080"}
	for _, a := range colours {
		for _, b := range colours {
			ab, err := Contrast(a, b)
			if err != nil {
				t.Fatal(err)
			}
			ba, err := Contrast(b, a)
			if err != nil {
				t.Fatal(err)
			}
			if ab != -ba {
				t.Errorf("Contrast(%s, %s) = %v, Contrast(%s, %s) = %v", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestContrastSign(t *testing.T) {
	d, err := Contrast("ffffff", "000000")
	if err != nil {
		t.Fatal(err)
	}
	if d <= 0 {
		t.Errorf("Contrast(white, black) = %v, want positive", d)
	}
}

func TestWithinContrastRange(t *testing.T) {
	tests := []struct {
		name     string
		c, ref   Hex
		min, max float64
		want     bool
	}{
		{name: "inclusive lower bound", c: "808080", ref: "000000", min: 0.5, max: 0.6, want: true},
		{name: "inclusive upper bound", c: "808080", ref: "000000", min: 0.4, max: 0.5, want: true},
		{name: "red in text range", c: "ff0000", ref: "000000", min: 0.43, max: 0.65, want: true},
		{name: "white above text range", c: "ffffff", ref: "000000", min: 0.43, max: 0.65, want: false},
		{name: "darker than reference", c: "000000", ref: "808080", min: 0.43, max: 0.65, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WithinContrastRange(tt.c, tt.ref, tt.min, tt.max)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("WithinContrastRange(%s, %s, %v, %v) = %v, want %v", tt.c, tt.ref, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestContrastInvalidColour(t *testing.T) {
	if _, err := Contrast("nothex", "000000"); err == nil {
		t.Error("Contrast accepted an invalid colour")
	}
	if _, err := Contrast("000000", "nothex"); err == nil {
		t.Error("Contrast accepted an invalid reference colour")
	}
}
