// Package base16 assigns colours from a pool to the sixteen base16 roles.
//
// Roles are resolved strictly in order. Each role's strategy sees the colours
// chosen for earlier roles, never later ones, and a chosen colour is never
// revisited. When a strategy finds no candidate the engine logs a warning and
// substitutes a random pool entry, so a non-empty pool always yields sixteen
// colours.
package base16

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/autobase16/internal/colour"
)

// RandomSource supplies uniform random indices. *rand.Rand satisfies it.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Assignment records the colour chosen for one role.
type Assignment struct {
	Role     string     `json:"role" yaml:"role"`
	Index    int        `json:"index" yaml:"index"`
	Colour   colour.Hex `json:"colour" yaml:"colour"`
	Strategy string     `json:"strategy" yaml:"strategy"`
	// Fallback is set when the strategy found no candidate and the colour is
	// a random pool pick.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	// Ceiling is the lightness cap handed to a force-dark role.
	Ceiling float64 `json:"ceiling,omitempty" yaml:"ceiling,omitempty"`
	Capped  bool    `json:"-" yaml:"-"`
}

// Scheme is the ordered result of a run.
type Scheme struct {
	Assignments []Assignment `json:"assignments"`
	PoolSize    int          `json:"pool_size"`
}

// Colours returns the sixteen colours in role order, without a leading '#'.
func (s *Scheme) Colours() []string {
	out := make([]string, len(s.Assignments))
	for i, a := range s.Assignments {
		out[i] = string(a.Colour)
	}
	return out
}

// Get returns the assignment for a role name.
func (s *Scheme) Get(role string) (Assignment, bool) {
	for _, a := range s.Assignments {
		if a.Role == role {
			return a, true
		}
	}
	return Assignment{}, false
}

// Fallbacks returns the names of roles resolved by random substitution.
func (s *Scheme) Fallbacks() []string {
	var out []string
	for _, a := range s.Assignments {
		if a.Fallback {
			out = append(out, a.Role)
		}
	}
	return out
}

// Engine runs the role assignment loop. An Engine holds no per-run state and
// may be reused; each Select call starts a fresh ceiling cursor.
type Engine struct {
	cfg   Config
	roles []Role
	rng   RandomSource
	log   hclog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger receiving fallback warnings and trace events.
func WithLogger(l hclog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRandom sets the source used for random picks.
func WithRandom(r RandomSource) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithSeed seeds the random source deterministically.
func WithSeed(seed uint64) Option {
	return WithRandom(rand.New(rand.NewPCG(seed, seed)))
}

// WithRoles replaces the role table, which is evaluated in slice order.
func WithRoles(roles []Role) Option {
	return func(e *Engine) {
		e.roles = roles
	}
}

// New creates an Engine for cfg.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	roles, err := rolesForConfig(cfg)
	if err != nil {
		return nil, err
	}

	now := uint64(time.Now().UnixNano())
	e := &Engine{
		cfg:   cfg,
		roles: roles,
		rng:   rand.New(rand.NewPCG(now, now>>1)),
		log:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Roles returns the role table in evaluation order.
func (e *Engine) Roles() []Role {
	out := make([]Role, len(e.roles))
	copy(out, e.roles)
	return out
}

// Run prepares raw pool lines and selects a scheme from them.
func (e *Engine) Run(raw []string) (*Scheme, error) {
	pool, err := PreparePool(raw)
	if err != nil {
		return nil, err
	}
	return e.Select(pool)
}

// Select resolves every role against pool in order.
func (e *Engine) Select(pool *Pool) (*Scheme, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, ErrEmptyPool
	}

	e.log.Debug("selecting scheme", "pool_size", pool.Len(), "roles", len(e.roles))

	cursor := newCeilingCursor(e.cfg.BackgroundCeilings)
	assigned := make([]Assignment, 0, len(e.roles))

	for _, role := range e.roles {
		sel := &Selection{
			Role:     role,
			Assigned: assigned,
			Pool:     pool,
			cfg:      e.cfg,
			cursor:   cursor,
			rng:      e.rng,
			log:      e.log,
		}

		c, ok := role.Strategy.Pick(sel)
		entry := Assignment{
			Role:     role.Name,
			Index:    role.Index,
			Colour:   c,
			Strategy: role.Strategy.Name(),
			Ceiling:  sel.ceiling,
			Capped:   sel.capped,
		}
		if !ok {
			e.log.Warn("no viable candidate, using a random colour", "role", role.Name, "strategy", role.Strategy.Name())
			entry.Colour, _ = Random{}.Pick(sel)
			entry.Fallback = true
		}

		e.log.Debug("assigned", "role", role.Name, "colour", entry.Colour, "fallback", entry.Fallback)
		assigned = append(assigned, entry)
	}

	return &Scheme{Assignments: assigned, PoolSize: pool.Len()}, nil
}

// SchemeFromColours builds a scheme from sixteen colours given in role order,
// such as those read back from a saved scheme file.
func SchemeFromColours(colours []string) (*Scheme, error) {
	if len(colours) != RoleCount {
		return nil, fmt.Errorf("expected %d colours, got %d", RoleCount, len(colours))
	}

	names := RoleNames()
	assigned := make([]Assignment, RoleCount)
	for i, raw := range colours {
		c, err := colour.ParseHex(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		assigned[i] = Assignment{Role: names[i], Index: i, Colour: c}
	}
	return &Scheme{Assignments: assigned}, nil
}
