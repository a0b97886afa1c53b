package damage

import "strings"

// Enchantment is one enchantment on an armor piece.
type Enchantment struct {
	ID    string `yaml:"id"`
	Level int    `yaml:"level"`
}

const (
	// EnchantProtection reduces damage from every cause.
	EnchantProtection = "protection"
	// EnchantBlastProtection reduces explosion damage.
	EnchantBlastProtection = "blast_protection"
	// EnchantFireProtection reduces fire and lava damage.
	EnchantFireProtection = "fire_protection"
	// EnchantProjectileProtection reduces projectile damage.
	EnchantProjectileProtection = "projectile_protection"
	// EnchantFeatherFalling reduces fall damage.
	EnchantFeatherFalling = "feather_falling"
)

const (
	protectionPerLevel  = 0.05
	specializedPerLevel = 0.08
	maxEnchantReduction = 0.8
)

// specializedProtection maps each specialized protection enchantment to the
// causes it applies to.
var specializedProtection = map[string]map[Cause]struct{}{
	EnchantBlastProtection:      {CauseBlockExplosion: {}, CauseEntityExplosion: {}},
	EnchantFireProtection:       {CauseFire: {}, CauseFireTick: {}, CauseLava: {}},
	EnchantProjectileProtection: {CauseProjectile: {}},
	EnchantFeatherFalling:       {CauseFall: {}},
}

// AppliesTo reports whether the specialized protection enchantment id covers
// cause. The generic protection enchantment and unknown ids report false.
func AppliesTo(id string, cause Cause) bool {
	_, ok := specializedProtection[enchantmentKey(id)][cause]
	return ok
}

// enchantmentKey strips an optional namespace, e.g. "minecraft:protection".
func enchantmentKey(id string) string {
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// enchantmentReduction sums the reduction of every enchantment on every
// piece for the given cause.
//
// Postcondition: 0 <= result <= 0.8.
func enchantmentReduction(cause Cause, pieces []ArmorPiece) float64 {
	total := 0.0
	for _, p := range pieces {
		for _, e := range p.Enchantments {
			level := float64(max(e.Level, 0))
			id := enchantmentKey(e.ID)
			if id == EnchantProtection {
				total += level * protectionPerLevel
				continue
			}
			if AppliesTo(id, cause) {
				total += level * specializedPerLevel
			}
		}
	}
	return min(total, maxEnchantReduction)
}
