package base16

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/autobase16/internal/colour"
)

// Strategy picks a colour for one role. Pick returns false when no candidate
// qualifies; the engine then substitutes a random pool entry.
type Strategy interface {
	Name() string
	Pick(sel *Selection) (colour.Hex, bool)
}

// Strategy names accepted in configuration.
const (
	StrategyForceDark             = "force-dark"
	StrategyDarkestUnique         = "darkest-unique"
	StrategyCommentContrastUnique = "darkest-comment-contrast-unique"
	StrategyTextContrastUnique    = "darkest-text-contrast-unique"
	StrategyBrightContrast        = "bright-contrast-unique-or-random"
	StrategyRandom                = "random"
)

// StrategyNames returns every strategy name accepted by StrategyByName.
func StrategyNames() []string {
	return []string{
		StrategyForceDark,
		StrategyDarkestUnique,
		StrategyCommentContrastUnique,
		StrategyTextContrastUnique,
		StrategyBrightContrast,
		StrategyRandom,
	}
}

// StrategyByName resolves a configured strategy name.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case StrategyForceDark:
		return ForceDark{}, nil
	case StrategyDarkestUnique:
		return DarkestUnique{}, nil
	case StrategyCommentContrastUnique:
		return DarkestHighContrastUnique{Comment: true}, nil
	case StrategyTextContrastUnique:
		return DarkestHighContrastUnique{}, nil
	case StrategyBrightContrast:
		return HighContrastBrightUniqueOrRandom{}, nil
	case StrategyRandom:
		return Random{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (valid: %v)", name, StrategyNames())
	}
}

// Selection is the state visible to a strategy while one role is resolved.
type Selection struct {
	// Role is the role being resolved.
	Role Role
	// Assigned holds the entries of all earlier roles, in role order.
	Assigned []Assignment
	// Pool is the candidate set for the run.
	Pool *Pool

	cfg    Config
	cursor *ceilingCursor
	rng    RandomSource
	log    hclog.Logger

	ceiling float64
	capped  bool
}

// Background returns the colour of the first role, if already assigned.
func (s *Selection) Background() (colour.Hex, bool) {
	if len(s.Assigned) == 0 {
		return "", false
	}
	return s.Assigned[0].Colour, true
}

// Used reports whether c has already been assigned to an earlier role.
func (s *Selection) Used(c colour.Hex) bool {
	return slices.ContainsFunc(s.Assigned, func(a Assignment) bool {
		return a.Colour == c
	})
}

// withinContrast filters the pool (in pool order) to colours whose contrast
// against bg lies in [minContrast, maxContrast].
func (s *Selection) withinContrast(bg colour.Hex, minContrast, maxContrast float64) []colour.Hex {
	bgL := s.Pool.brightness(bg)
	var out []colour.Hex
	for _, c := range s.Pool.colours {
		l := s.Pool.brightness(c)
		d := l - bgL
		ok := d >= minContrast && d <= maxContrast
		s.log.Trace("contrast check",
			"role", s.Role.Name, "candidate", c, "brightness", l,
			"background", bg, "contrast", d, "accepted", ok)
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// ForceDark takes the pool entry at the ceiling cursor in darkest-first
// order and caps its lightness at the next ceiling. It does not consult
// earlier assignments.
type ForceDark struct{}

func (ForceDark) Name() string { return StrategyForceDark }

func (ForceDark) Pick(sel *Selection) (colour.Hex, bool) {
	index, ceiling := sel.cursor.next()
	sel.ceiling, sel.capped = ceiling, true

	sorted := sel.Pool.sortedByBrightness()
	if index >= len(sorted) {
		return "", false
	}

	candidate := sorted[index]
	hls := sel.Pool.hls[candidate]
	clamped := hls
	clamped.L = min(hls.L, ceiling)
	result := colour.FromHLS(clamped)

	sel.log.Trace("force dark",
		"role", sel.Role.Name, "index", index, "candidate", candidate,
		"brightness", hls.L, "ceiling", ceiling, "result", result)
	return result, true
}

// DarkestUnique returns the darkest pool colour not yet assigned.
type DarkestUnique struct{}

func (DarkestUnique) Name() string { return StrategyDarkestUnique }

func (DarkestUnique) Pick(sel *Selection) (colour.Hex, bool) {
	var best colour.Hex
	found := false
	bestL := 0.0
	for _, c := range sel.Pool.colours {
		if sel.Used(c) {
			continue
		}
		l := sel.Pool.brightness(c)
		sel.log.Trace("brightness", "role", sel.Role.Name, "candidate", c, "brightness", l)
		if !found || l < bestL {
			best, bestL, found = c, l, true
		}
	}
	return best, found
}

// DarkestHighContrastUnique returns the darkest unused colour whose contrast
// against the background lies between the minimum text (or comment)
// contrast and the maximum text contrast.
type DarkestHighContrastUnique struct {
	// Comment selects the lower comment contrast bound.
	Comment bool
}

func (d DarkestHighContrastUnique) Name() string {
	if d.Comment {
		return StrategyCommentContrastUnique
	}
	return StrategyTextContrastUnique
}

func (d DarkestHighContrastUnique) Pick(sel *Selection) (colour.Hex, bool) {
	bg, ok := sel.Background()
	if !ok {
		return "", false
	}

	minContrast := sel.cfg.MinimumTextContrast
	if d.Comment {
		minContrast = sel.cfg.MinimumCommentTextContrast
	}

	candidates := sel.withinContrast(bg, minContrast, sel.cfg.MaximumTextContrast)
	byBrightness := func(a, b colour.Hex) int {
		la, lb := sel.Pool.brightness(a), sel.Pool.brightness(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		default:
			return 0
		}
	}
	slices.SortStableFunc(candidates, byBrightness)

	for _, c := range candidates {
		if !sel.Used(c) {
			return c, true
		}
	}
	return "", false
}

// HighContrastBrightUniqueOrRandom returns the first unused pool colour (in
// pool order) within the text contrast range, or a random one of those
// colours when all are already used.
type HighContrastBrightUniqueOrRandom struct{}

func (HighContrastBrightUniqueOrRandom) Name() string { return StrategyBrightContrast }

func (HighContrastBrightUniqueOrRandom) Pick(sel *Selection) (colour.Hex, bool) {
	bg, ok := sel.Background()
	if !ok {
		return "", false
	}

	candidates := sel.withinContrast(bg, sel.cfg.MinimumTextContrast, sel.cfg.MaximumTextContrast)
	if len(candidates) == 0 {
		return "", false
	}
	for _, c := range candidates {
		if !sel.Used(c) {
			return c, true
		}
	}
	return candidates[sel.rng.IntN(len(candidates))], true
}

// Random returns a uniformly random pool colour.
type Random struct{}

func (Random) Name() string { return StrategyRandom }

func (Random) Pick(sel *Selection) (colour.Hex, bool) {
	if sel.Pool.Len() == 0 {
		return "", false
	}
	return sel.Pool.colours[sel.rng.IntN(sel.Pool.Len())], true
}
