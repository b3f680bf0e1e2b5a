package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the normalised hex form of the color.
func (rgb RGB) Hex() Hex {
	return Hex(fmt.Sprintf("%02x%02x%02x", rgb.R, rgb.G, rgb.B))
}

// FromColor converts a color.Color to RGB.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Color converts rgb to an opaque color.Color.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Palette represents a collection of colors extracted from an image.
// Weights, when present, are the relative cluster sizes and sum to 1.
type Palette struct {
	Colors  []color.Color
	Weights []float64
}

// NewPalette creates a new Palette with the given colors.
func NewPalette(colors []color.Color) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// NewPaletteWithWeights creates a Palette whose colors carry cluster weights.
func NewPaletteWithWeights(colors []color.Color, weights []float64) *Palette {
	return &Palette{
		Colors:  colors,
		Weights: weights,
	}
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// ToHex converts the palette colors to normalised hex values.
// Weighted palettes are ordered by descending weight.
func (p *Palette) ToHex() []Hex {
	idx := make([]int, len(p.Colors))
	for i := range idx {
		idx[i] = i
	}
	if len(p.Weights) == len(p.Colors) {
		sort.SliceStable(idx, func(a, b int) bool {
			return p.Weights[idx[a]] > p.Weights[idx[b]]
		})
	}

	hexColors := make([]Hex, len(p.Colors))
	for i, j := range idx {
		hexColors[i] = FromColor(p.Colors[j]).Hex()
	}
	return hexColors
}

// ColorJSON represents a color in JSON output format.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		rgb := FromColor(c)
		colors[i] = ColorJSON{
			Hex: rgb.Hex().String(),
			RGB: rgb,
		}
		if i < len(p.Weights) {
			colors[i].Weight = p.Weights[i]
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}, "", "  ")
}
