package base16

import (
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/autobase16/internal/colour"
)

// fixedRandom always returns its value modulo n.
type fixedRandom int

func (f fixedRandom) IntN(n int) int { return int(f) % n }

func mustPool(t *testing.T, colours ...string) *Pool {
	t.Helper()
	p, err := PreparePool(colours)
	if err != nil {
		t.Fatalf("PreparePool(%v): %v", colours, err)
	}
	return p
}

func newTestSelection(pool *Pool, assigned ...colour.Hex) *Selection {
	sel := &Selection{
		Role:   Role{Name: "test"},
		Pool:   pool,
		cfg:    DefaultConfig(),
		cursor: newCeilingCursor(DefaultConfig().BackgroundCeilings),
		rng:    fixedRandom(0),
		log:    hclog.NewNullLogger(),
	}
	for i, c := range assigned {
		sel.Assigned = append(sel.Assigned, Assignment{Index: i, Colour: c})
	}
	return sel
}

func TestForceDark(t *testing.T) {
	pool := mustPool(t, "ffffff", "000000", "808080")
	sel := newTestSelection(pool)

	want := []struct {
		colour  colour.Hex
		ceiling float64
	}{
		{"000000", 0.08},
		// 0.15 * 256 = 38.4
		{"262626", 0.15},
		// 0.2 * 256 = 51.2
		{"333333", 0.2},
	}
	for i, w := range want {
		got, ok := ForceDark{}.Pick(sel)
		if !ok {
			t.Fatalf("call %d: ForceDark returned no candidate", i)
		}
		if got != w.colour {
			t.Errorf("call %d: ForceDark = %s, want %s", i, got, w.colour)
		}
		if sel.ceiling != w.ceiling || !sel.capped {
			t.Errorf("call %d: ceiling = %v (capped %v), want %v", i, sel.ceiling, sel.capped, w.ceiling)
		}
	}

	if _, ok := (ForceDark{}).Pick(sel); ok {
		t.Error("ForceDark returned a candidate past the end of the pool")
	}
	if sel.cursor.pos != 4 {
		t.Errorf("cursor position = %d, want 4 after four calls", sel.cursor.pos)
	}
}

func TestForceDarkIgnoresUsed(t *testing.T) {
	pool := mustPool(t, "050505")
	sel := newTestSelection(pool, "050505")

	got, ok := ForceDark{}.Pick(sel)
	if !ok || got != "050505" {
		t.Errorf("ForceDark = %s, %v; want 050505, true", got, ok)
	}
}

func TestDarkestUnique(t *testing.T) {
	tests := []struct {
		name     string
		pool     []string
		assigned []colour.Hex
		want     colour.Hex
		wantOK   bool
	}{
		{name: "darkest", pool: []string{"808080", "101010", "f0f0f0"}, want: "101010", wantOK: true},
		{name: "skips used", pool: []string{"808080", "101010", "f0f0f0"}, assigned: []colour.Hex{"101010"}, want: "808080", wantOK: true},
		{name: "all used", pool: []string{"101010"}, assigned: []colour.Hex{"101010"}, wantOK: false},
		{name: "tie keeps pool order", pool: []string{"ff0000", "00ff00"}, want: "ff0000", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := newTestSelection(mustPool(t, tt.pool...), tt.assigned...)
			got, ok := DarkestUnique{}.Pick(sel)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DarkestUnique = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDarkestHighContrastUnique(t *testing.T) {
	// Lightness: 555555=0.332, 707070=0.4375, 808080=0.5, c0c0c0=0.75.
	pool := []string{"c0c0c0", "808080", "707070", "555555", "000000"}

	tests := []struct {
		name     string
		strategy DarkestHighContrastUnique
		assigned []colour.Hex
		want     colour.Hex
		wantOK   bool
	}{
		{name: "comment bound", strategy: DarkestHighContrastUnique{Comment: true}, assigned: []colour.Hex{"000000"}, want: "555555", wantOK: true},
		{name: "text bound", strategy: DarkestHighContrastUnique{}, assigned: []colour.Hex{"000000"}, want: "707070", wantOK: true},
		{name: "skips used", strategy: DarkestHighContrastUnique{}, assigned: []colour.Hex{"000000", "707070"}, want: "808080", wantOK: true},
		{name: "exhausted", strategy: DarkestHighContrastUnique{}, assigned: []colour.Hex{"000000", "707070", "808080"}, wantOK: false},
		{name: "no background", strategy: DarkestHighContrastUnique{}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := newTestSelection(mustPool(t, pool...), tt.assigned...)
			got, ok := tt.strategy.Pick(sel)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("%s = %q, %v; want %q, %v", tt.strategy.Name(), got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHighContrastBrightUniqueOrRandom(t *testing.T) {
	tests := []struct {
		name     string
		pool     []string
		assigned []colour.Hex
		rng      fixedRandom
		want     colour.Hex
		wantOK   bool
	}{
		{
			name:     "red against black",
			pool:     []string{"#000000", "#ff0000"},
			assigned: []colour.Hex{"000000"},
			want:     "ff0000",
			wantOK:   true,
		},
		{
			// White sits at 0.996 lightness, above the maximum text contrast.
			name:     "white against black",
			pool:     []string{"#000000", "#ffffff"},
			assigned: []colour.Hex{"000000"},
			wantOK:   false,
		},
		{
			name:     "first unused in pool order",
			pool:     []string{"000000", "00ff00", "ff0000", "0000ff"},
			assigned: []colour.Hex{"000000", "00ff00"},
			want:     "ff0000",
			wantOK:   true,
		},
		{
			name:     "random among candidates when all used",
			pool:     []string{"000000", "00ff00", "ff0000"},
			assigned: []colour.Hex{"000000", "00ff00", "ff0000"},
			rng:      1,
			want:     "ff0000",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := newTestSelection(mustPool(t, tt.pool...), tt.assigned...)
			sel.rng = tt.rng
			got, ok := HighContrastBrightUniqueOrRandom{}.Pick(sel)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("HighContrastBrightUniqueOrRandom = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	sel := newTestSelection(mustPool(t, "111111", "222222", "333333"))
	sel.rng = fixedRandom(2)

	got, ok := Random{}.Pick(sel)
	if !ok || got != "333333" {
		t.Errorf("Random = %q, %v; want 333333, true", got, ok)
	}
}

func TestStrategyByName(t *testing.T) {
	for _, name := range StrategyNames() {
		s, err := StrategyByName(name)
		if err != nil {
			t.Errorf("StrategyByName(%q) error: %v", name, err)
			continue
		}
		if s.Name() != name {
			t.Errorf("StrategyByName(%q).Name() = %q", name, s.Name())
		}
	}

	if _, err := StrategyByName("brightest"); err == nil {
		t.Error("StrategyByName accepted an unknown name")
	}
}

func TestCeilingCursor(t *testing.T) {
	c := newCeilingCursor([]float64{0.1, 0.2})
	want := []float64{0.1, 0.2, 0.2, 0.2}
	for i, w := range want {
		pos, got := c.next()
		if pos != i || got != w {
			t.Errorf("next() = %d, %v; want %d, %v", pos, got, i, w)
		}
	}

	if _, got := newCeilingCursor(nil).next(); got != 1.0 {
		t.Errorf("empty schedule ceiling = %v, want 1", got)
	}
}
