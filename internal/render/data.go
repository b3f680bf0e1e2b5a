// Package render substitutes a selected base16 scheme into user templates
// and exports it as a base16 scheme file.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jmylchreest/autobase16/internal/base16"
	"github.com/jmylchreest/autobase16/internal/colour"
)

// Meta describes the scheme being rendered.
type Meta struct {
	Name   string
	Author string
}

// Colour is one rendered slot. It prints as six hex digits without '#'.
type Colour struct {
	Role  string
	Index int
	Hex   colour.Hex
	RGB   colour.RGB
}

func (c Colour) String() string {
	return string(c.Hex)
}

// Data is the template view of a scheme.
type Data struct {
	Name    string
	Author  string
	Slug    string
	Colours []Colour
}

// NewData builds template data from a scheme. It fails unless the scheme
// holds exactly one colour per base16 role.
func NewData(scheme *base16.Scheme, meta Meta) (*Data, error) {
	if scheme == nil || len(scheme.Assignments) != base16.RoleCount {
		n := 0
		if scheme != nil {
			n = len(scheme.Assignments)
		}
		return nil, fmt.Errorf("scheme must have %d colours, got %d", base16.RoleCount, n)
	}

	d := &Data{
		Name:    meta.Name,
		Author:  meta.Author,
		Slug:    Slugify(meta.Name),
		Colours: make([]Colour, len(scheme.Assignments)),
	}
	for i, a := range scheme.Assignments {
		rgb, err := a.Colour.RGB()
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", a.Role, err)
		}
		d.Colours[i] = Colour{Role: a.Role, Index: i, Hex: a.Colour, RGB: rgb}
	}
	return d, nil
}

// Get returns the colour for a role name such as "base0A". Lookup ignores case.
func (d *Data) Get(role string) (Colour, bool) {
	for _, c := range d.Colours {
		if strings.EqualFold(c.Role, role) {
			return c, true
		}
	}
	return Colour{}, false
}

// templateMap exposes the data to text/template so that role names can be
// used as fields: {{ .base00 }}.
func (d *Data) templateMap() map[string]any {
	m := map[string]any{
		"SchemeName":   d.Name,
		"SchemeAuthor": d.Author,
		"SchemeSlug":   d.Slug,
		"Colours":      d.Colours,
	}
	for _, c := range d.Colours {
		m[c.Role] = c
	}
	return m
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	return strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
