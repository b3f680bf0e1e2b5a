package base16

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunable thresholds used by the selection strategies.
type Config struct {
	// BackgroundCeilings are the maximum lightness values handed out, one per
	// force-dark invocation, in call order. When a run needs more ceilings
	// than listed, the last one repeats.
	BackgroundCeilings []float64 `toml:"background_ceilings" json:"background_ceilings"`

	// MinimumCommentTextContrast is the lower contrast bound for comment roles.
	MinimumCommentTextContrast float64 `toml:"minimum_comment_text_contrast" json:"minimum_comment_text_contrast"`

	// MinimumTextContrast is the lower contrast bound for foreground and accent roles.
	MinimumTextContrast float64 `toml:"minimum_text_contrast" json:"minimum_text_contrast"`

	// MaximumTextContrast is the upper contrast bound for foreground and accent roles.
	MaximumTextContrast float64 `toml:"maximum_text_contrast" json:"maximum_text_contrast"`

	// Roles optionally replaces the strategy of individual roles, keyed by
	// role name (base00..base0F) with a strategy name as value.
	Roles map[string]string `toml:"roles" json:"roles,omitempty"`
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		BackgroundCeilings:         []float64{0.08, 0.15, 0.2, 0.25, 0.3, 0.4, 0.45},
		MinimumCommentTextContrast: 0.30,
		MinimumTextContrast:        0.43,
		MaximumTextContrast:        0.65,
	}
}

// Validate checks the thresholds and role overrides for consistency.
func (c Config) Validate() error {
	if len(c.BackgroundCeilings) == 0 {
		return errors.New("background ceilings cannot be empty")
	}
	for i, v := range c.BackgroundCeilings {
		if v < 0 || v > 1 {
			return fmt.Errorf("background ceiling %d out of range [0,1]: %v", i, v)
		}
		if i > 0 && v < c.BackgroundCeilings[i-1] {
			return fmt.Errorf("background ceilings must not decrease: %v follows %v", v, c.BackgroundCeilings[i-1])
		}
	}
	if c.MinimumCommentTextContrast > c.MaximumTextContrast {
		return fmt.Errorf("minimum comment contrast %v exceeds maximum text contrast %v",
			c.MinimumCommentTextContrast, c.MaximumTextContrast)
	}
	if c.MinimumTextContrast > c.MaximumTextContrast {
		return fmt.Errorf("minimum text contrast %v exceeds maximum text contrast %v",
			c.MinimumTextContrast, c.MaximumTextContrast)
	}
	for role, name := range c.Roles {
		if !slices.Contains(RoleNames(), role) {
			return fmt.Errorf("unknown role %q (valid: base00..base0F)", role)
		}
		if _, err := StrategyByName(name); err != nil {
			return fmt.Errorf("role %s: %w", role, err)
		}
	}
	return nil
}

// LoadConfigFile decodes a TOML file over DefaultConfig. Keys absent from the
// file keep their default values.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) // #nosec G304 - User-specified config path, intended to be read
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}
