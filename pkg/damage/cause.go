// Package damage computes the damage an entity actually takes once armor,
// armor enchantments and the resistance status effect have been applied.
package damage

import "fmt"

// Cause identifies what dealt the damage. Values match the host's damage
// cause identifiers.
type Cause string

const (
	CauseNone            Cause = "none"
	CauseAnvil           Cause = "anvil"
	CauseBlockExplosion  Cause = "blockExplosion"
	CauseContact         Cause = "contact"
	CauseDrowning        Cause = "drowning"
	CauseEntityAttack    Cause = "entityAttack"
	CauseEntityExplosion Cause = "entityExplosion"
	CauseFall            Cause = "fall"
	CauseFallingBlock    Cause = "fallingBlock"
	CauseFire            Cause = "fire"
	CauseFireTick        Cause = "fireTick"
	CauseFreezing        Cause = "freezing"
	CauseLava            Cause = "lava"
	CauseLightning       Cause = "lightning"
	CauseMagic           Cause = "magic"
	CauseMagma           Cause = "magma"
	CauseProjectile      Cause = "projectile"
	CauseStarve          Cause = "starve"
	CauseSuffocation     Cause = "suffocation"
	CauseThorns          Cause = "thorns"
	CauseVoid            Cause = "void"
	CauseWither          Cause = "wither"
)

var validCauses = map[Cause]struct{}{
	CauseNone: {}, CauseAnvil: {}, CauseBlockExplosion: {}, CauseContact: {},
	CauseDrowning: {}, CauseEntityAttack: {}, CauseEntityExplosion: {}, CauseFall: {},
	CauseFallingBlock: {}, CauseFire: {}, CauseFireTick: {}, CauseFreezing: {},
	CauseLava: {}, CauseLightning: {}, CauseMagic: {}, CauseMagma: {},
	CauseProjectile: {}, CauseStarve: {}, CauseSuffocation: {}, CauseThorns: {},
	CauseVoid: {}, CauseWither: {},
}

// ParseCause converts a host cause identifier into a Cause. The empty string
// maps to CauseNone.
//
// Postcondition: Returns a known Cause or a non-nil error.
func ParseCause(s string) (Cause, error) {
	if s == "" {
		return CauseNone, nil
	}
	c := Cause(s)
	if _, ok := validCauses[c]; !ok {
		return CauseNone, fmt.Errorf("damage: unknown cause %q", s)
	}
	return c, nil
}
