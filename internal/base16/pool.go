package base16

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/autobase16/internal/colour"
)

// ErrEmptyPool is returned when no colours remain after pool preparation.
var ErrEmptyPool = errors.New("colour pool is empty")

// Pool is the deduplicated set of candidate colours for one run. Entries keep
// the order in which they first appeared so runs are reproducible.
type Pool struct {
	colours []colour.Hex
	hls     map[colour.Hex]colour.HLS
}

// PreparePool trims and normalises raw lines, skips blank lines and removes
// exact duplicates. A malformed entry aborts preparation with a
// *colour.FormatError.
func PreparePool(raw []string) (*Pool, error) {
	p := &Pool{hls: make(map[colour.Hex]colour.HLS, len(raw))}
	for i, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c, err := colour.ParseHex(line)
		if err != nil {
			return nil, fmt.Errorf("pool entry %d: %w", i+1, err)
		}
		if err := p.add(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// NewPool builds a pool from already parsed colours, dropping duplicates.
func NewPool(colours ...colour.Hex) (*Pool, error) {
	raw := make([]string, len(colours))
	for i, c := range colours {
		raw[i] = string(c)
	}
	return PreparePool(raw)
}

func (p *Pool) add(c colour.Hex) error {
	if _, ok := p.hls[c]; ok {
		return nil
	}
	hls, err := c.HLS()
	if err != nil {
		return err
	}
	p.hls[c] = hls
	p.colours = append(p.colours, c)
	return nil
}

// Len returns the number of distinct colours in the pool.
func (p *Pool) Len() int {
	return len(p.colours)
}

// Colours returns a copy of the pool entries in first-seen order.
func (p *Pool) Colours() []colour.Hex {
	out := make([]colour.Hex, len(p.colours))
	copy(out, p.colours)
	return out
}

// Contains reports whether c is a pool entry.
func (p *Pool) Contains(c colour.Hex) bool {
	_, ok := p.hls[c]
	return ok
}

// brightness returns the cached lightness of a pool entry, computing it for
// colours that are not in the pool.
func (p *Pool) brightness(c colour.Hex) float64 {
	if hls, ok := p.hls[c]; ok {
		return hls.L
	}
	hls, _ := c.HLS()
	return hls.L
}

// sortedByBrightness returns the pool sorted darkest first. Equal lightness
// keeps pool order.
func (p *Pool) sortedByBrightness() []colour.Hex {
	out := p.Colours()
	sort.SliceStable(out, func(i, j int) bool {
		return p.hls[out[i]].L < p.hls[out[j]].L
	})
	return out
}
