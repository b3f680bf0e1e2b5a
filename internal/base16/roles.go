package base16

import "fmt"

// RoleCount is the number of slots in a base16 scheme.
const RoleCount = 16

// Group classifies roles by what they are used for.
type Group int

const (
	// GroupBackground roles are background shades and want low lightness.
	GroupBackground Group = iota
	// GroupForeground roles are comment and text shades.
	GroupForeground
	// GroupAccent roles are syntax accents and want high contrast.
	GroupAccent
)

// String returns the string representation of a Group.
func (g Group) String() string {
	switch g {
	case GroupBackground:
		return "background"
	case GroupForeground:
		return "foreground"
	case GroupAccent:
		return "accent"
	default:
		return "unknown"
	}
}

// Role is one slot of the scheme. Its position in the role list is its
// identity in the output.
type Role struct {
	Name     string
	Index    int
	Group    Group
	Strategy Strategy
}

// RoleNames returns base00..base0F in output order.
func RoleNames() []string {
	names := make([]string, RoleCount)
	for i := range names {
		names[i] = fmt.Sprintf("base%02X", i)
	}
	return names
}

// DefaultRoles returns the sixteen roles in evaluation order. Background
// shades draw from the ceiling schedule, so the order of the force-dark roles
// fixes which ceiling each receives.
func DefaultRoles() []Role {
	groups := [RoleCount]Group{
		GroupBackground, GroupBackground, GroupBackground,
		GroupForeground, GroupForeground, GroupForeground,
		GroupBackground, GroupBackground,
		GroupAccent, GroupAccent, GroupAccent, GroupAccent,
		GroupAccent, GroupAccent, GroupAccent, GroupAccent,
	}

	roles := make([]Role, RoleCount)
	for i, name := range RoleNames() {
		roles[i] = Role{Name: name, Index: i, Group: groups[i]}
		switch {
		case groups[i] == GroupBackground:
			roles[i].Strategy = ForceDark{}
		case i == 3:
			// base03 is comments.
			roles[i].Strategy = DarkestHighContrastUnique{Comment: true}
		case groups[i] == GroupForeground:
			roles[i].Strategy = DarkestHighContrastUnique{}
		default:
			roles[i].Strategy = HighContrastBrightUniqueOrRandom{}
		}
	}
	return roles
}

// rolesForConfig applies the strategy overrides of cfg to DefaultRoles.
func rolesForConfig(cfg Config) ([]Role, error) {
	roles := DefaultRoles()
	for i := range roles {
		name, ok := cfg.Roles[roles[i].Name]
		if !ok {
			continue
		}
		s, err := StrategyByName(name)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", roles[i].Name, err)
		}
		roles[i].Strategy = s
	}
	return roles, nil
}
