// Package colour provides the colour model used for base16 selection:
// hex parsing, RGB and HLS conversion, brightness and contrast.
package colour

import (
	"fmt"
	"strconv"
	"strings"
)

// Hex is a normalised colour: six lowercase hex digits without a leading '#'.
type Hex string

// FormatError is returned when a string cannot be parsed as a 6-digit hex colour.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid hex colour %q: %s", e.Input, e.Reason)
}

// ParseHex normalises s (surrounding whitespace, leading '#', case) and
// validates that exactly six hex digits remain.
func ParseHex(s string) (Hex, error) {
	v := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(v) != 6 {
		return "", &FormatError{Input: s, Reason: fmt.Sprintf("expected 6 hex digits, got %d", len(v))}
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", &FormatError{Input: s, Reason: fmt.Sprintf("non-hex character %q", c)}
		}
	}
	return Hex(v), nil
}

// MustParseHex is like ParseHex but panics on error. Intended for constants and tests.
func MustParseHex(s string) Hex {
	h, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return h
}

// String returns the colour with a leading '#'.
func (h Hex) String() string {
	return "#" + string(h)
}

// RGB parses the channels of h.
func (h Hex) RGB() (RGB, error) {
	if _, err := ParseHex(string(h)); err != nil {
		return RGB{}, err
	}
	v := strings.TrimPrefix(string(h), "#")
	var ch [3]uint8
	for i := range ch {
		n, err := strconv.ParseUint(v[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, &FormatError{Input: string(h), Reason: err.Error()}
		}
		ch[i] = uint8(n)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ToRGB parses a hex colour string into its 8-bit channels.
func ToRGB(s string) (RGB, error) {
	h, err := ParseHex(s)
	if err != nil {
		return RGB{}, err
	}
	return h.RGB()
}

// HLS converts h to hue/lightness/saturation.
func (h Hex) HLS() (HLS, error) {
	rgb, err := h.RGB()
	if err != nil {
		return HLS{}, err
	}
	return rgb.HLS(), nil
}
