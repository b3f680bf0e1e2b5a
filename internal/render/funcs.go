package render

import (
	"fmt"
	"strings"
	"text/template"
)

// TemplateFuncs returns the functions available to Go-syntax templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Role access.
		"get": getRoleFunc,

		// Format conversion.
		"hex":        hexFunc,
		"hexNoHash":  hexNoHashFunc,
		"rgb":        rgbFunc,
		"rgbDecimal": rgbDecimalFunc,
		"rgbSpaces":  rgbSpacesFunc,
		"red":        func(c Colour) uint8 { return c.RGB.R },
		"green":      func(c Colour) uint8 { return c.RGB.G },
		"blue":       func(c Colour) uint8 { return c.RGB.B },
		"brightness": brightnessFunc,

		// String manipulation (pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// getRoleFunc returns a colour by role name, failing the template when the
// role does not exist.
func getRoleFunc(data map[string]any, role string) (Colour, error) {
	for k, v := range data {
		if c, ok := v.(Colour); ok && strings.EqualFold(k, role) {
			return c, nil
		}
	}
	return Colour{}, fmt.Errorf("unknown role %q", role)
}

// hexFunc returns colour in #rrggbb format.
func hexFunc(c Colour) string {
	return c.Hex.String()
}

// hexNoHashFunc returns colour in rrggbb format.
func hexNoHashFunc(c Colour) string {
	return string(c.Hex)
}

// rgbFunc returns colour in CSS rgb(r, g, b) format.
func rgbFunc(c Colour) string {
	return c.RGB.String()
}

// rgbDecimalFunc returns colour as "r,g,b".
func rgbDecimalFunc(c Colour) string {
	return fmt.Sprintf("%d,%d,%d", c.RGB.R, c.RGB.G, c.RGB.B)
}

// rgbSpacesFunc returns colour as "r g b".
func rgbSpacesFunc(c Colour) string {
	return fmt.Sprintf("%d %d %d", c.RGB.R, c.RGB.G, c.RGB.B)
}

// brightnessFunc returns the HLS lightness of the colour.
func brightnessFunc(c Colour) float64 {
	return c.RGB.HLS().L
}

// trimPrefixFunc removes a prefix from a string (pipe-friendly argument order).
//
//	{{ value | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// replaceFunc replaces all occurrences of old with new (pipe-friendly argument order).
//
//	{{ value | replace "_" "-" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
