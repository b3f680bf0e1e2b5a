package colour

import "math"

// channelScale is the divisor used to normalise 8-bit channels before the
// HLS transform. Colour schemes produced by earlier releases were computed
// with 256 rather than 255, so 0xff maps to 0.996 and never to 1.0.
const channelScale = 256.0

// HLS is a colour in hue/lightness/saturation form, each component in [0,1].
type HLS struct {
	H float64 `json:"h"`
	L float64 `json:"l"`
	S float64 `json:"s"`
}

// HLS converts rgb to hue/lightness/saturation.
func (rgb RGB) HLS() HLS {
	r := float64(rgb.R) / channelScale
	g := float64(rgb.G) / channelScale
	b := float64(rgb.B) / channelScale

	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	sumc := maxc + minc
	rangec := maxc - minc

	l := sumc / 2.0
	if minc == maxc {
		return HLS{H: 0, L: l, S: 0}
	}

	var s float64
	if l <= 0.5 {
		s = rangec / sumc
	} else {
		s = rangec / (2.0 - sumc)
	}

	rc := (maxc - r) / rangec
	gc := (maxc - g) / rangec
	bc := (maxc - b) / rangec

	var h float64
	switch {
	case r == maxc:
		h = bc - gc
	case g == maxc:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}
	h = math.Mod(h/6.0, 1.0)
	if h < 0 {
		h += 1.0
	}

	return HLS{H: h, L: l, S: s}
}

// FromHLS converts hue/lightness/saturation back to a hex colour. Each channel
// is scaled by 256, rounded down and clamped to [0,255].
func FromHLS(c HLS) Hex {
	var r, g, b float64
	if c.S == 0 {
		r, g, b = c.L, c.L, c.L
	} else {
		var m2 float64
		if c.L <= 0.5 {
			m2 = c.L * (1.0 + c.S)
		} else {
			m2 = c.L + c.S - c.L*c.S
		}
		m1 := 2.0*c.L - m2
		r = hueChannel(m1, m2, c.H+1.0/3.0)
		g = hueChannel(m1, m2, c.H)
		b = hueChannel(m1, m2, c.H-1.0/3.0)
	}

	return RGB{R: toChannel(r), G: toChannel(g), B: toChannel(b)}.Hex()
}

func hueChannel(m1, m2, hue float64) float64 {
	hue = math.Mod(hue, 1.0)
	if hue < 0 {
		hue += 1.0
	}
	switch {
	case hue < 1.0/6.0:
		return m1 + (m2-m1)*hue*6.0
	case hue < 0.5:
		return m2
	case hue < 2.0/3.0:
		return m1 + (m2-m1)*(2.0/3.0-hue)*6.0
	default:
		return m1
	}
}

func toChannel(v float64) uint8 {
	n := math.Floor(v * channelScale)
	return uint8(math.Max(0, math.Min(255, n)))
}

// ToHLS parses a hex colour string and converts it to hue/lightness/saturation.
func ToHLS(s string) (HLS, error) {
	rgb, err := ToRGB(s)
	if err != nil {
		return HLS{}, err
	}
	return rgb.HLS(), nil
}

// Brightness returns the HLS lightness of c.
func Brightness(c Hex) (float64, error) {
	hls, err := c.HLS()
	if err != nil {
		return 0, err
	}
	return hls.L, nil
}

// Contrast returns Brightness(c) - Brightness(ref). Positive means c is
// lighter than ref.
func Contrast(c, ref Hex) (float64, error) {
	a, err := Brightness(c)
	if err != nil {
		return 0, err
	}
	b, err := Brightness(ref)
	if err != nil {
		return 0, err
	}
	return a - b, nil
}

// WithinContrastRange reports whether min <= Contrast(c, ref) <= max.
func WithinContrastRange(c, ref Hex, minContrast, maxContrast float64) (bool, error) {
	d, err := Contrast(c, ref)
	if err != nil {
		return false, err
	}
	return d >= minContrast && d <= maxContrast, nil
}
