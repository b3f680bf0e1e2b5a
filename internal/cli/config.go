package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/autobase16/internal/base16"
)

// thresholdFlags are the command-line overrides for base16.Config.
type thresholdFlags struct {
	configPath         string
	backgroundCeilings []float64
	minCommentContrast float64
	minTextContrast    float64
	maxTextContrast    float64
	roles              map[string]string
}

func (f *thresholdFlags) register(fs *pflag.FlagSet) {
	def := base16.DefaultConfig()
	fs.StringVar(&f.configPath, "config", "", "TOML config file (default: $XDG_CONFIG_HOME/autobase16/config.toml if present)")
	fs.Float64SliceVar(&f.backgroundCeilings, "background-ceilings", def.BackgroundCeilings, "lightness ceilings handed to background roles, in order")
	fs.Float64Var(&f.minCommentContrast, "min-comment-contrast", def.MinimumCommentTextContrast, "minimum lightness contrast for comments")
	fs.Float64Var(&f.minTextContrast, "min-text-contrast", def.MinimumTextContrast, "minimum lightness contrast for text and accents")
	fs.Float64Var(&f.maxTextContrast, "max-text-contrast", def.MaximumTextContrast, "maximum lightness contrast for text and accents")
	fs.StringToStringVar(&f.roles, "role", nil, "override a role's strategy (e.g. base06=darkest-unique, repeatable)")
}

// defaultConfigPath returns the user config file location.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "autobase16", "config.toml")
}

// resolve loads the config file (explicit, or the default one if it exists)
// and applies any flags the user set on top of it.
func (f *thresholdFlags) resolve(cmd *cobra.Command) (base16.Config, error) {
	cfg := base16.DefaultConfig()

	path := f.configPath
	if path == "" {
		if p := defaultConfigPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		loaded, err := base16.LoadConfigFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("background-ceilings") {
		cfg.BackgroundCeilings = f.backgroundCeilings
	}
	if flags.Changed("min-comment-contrast") {
		cfg.MinimumCommentTextContrast = f.minCommentContrast
	}
	if flags.Changed("min-text-contrast") {
		cfg.MinimumTextContrast = f.minTextContrast
	}
	if flags.Changed("max-text-contrast") {
		cfg.MaximumTextContrast = f.maxTextContrast
	}
	if len(f.roles) > 0 {
		if cfg.Roles == nil {
			cfg.Roles = make(map[string]string, len(f.roles))
		}
		for role, strategy := range f.roles {
			cfg.Roles[role] = strategy
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
