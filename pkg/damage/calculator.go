package damage

import (
	"maps"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/blockkit/pkg/mathx"
)

const (
	// MinDamage is the least damage armor and enchantments can reduce a hit to.
	// Resistance is applied afterwards and may still lower it to zero.
	MinDamage = 1.0

	armorReductionPerPoint = 0.04
	minArmorReduction      = 0.008
)

// Calculator computes modified damage. Its armor table is fixed at
// construction, so a Calculator is safe for concurrent use.
//
// Results approximate the host's own damage model and may not match it
// exactly for every edge case.
type Calculator struct {
	armorValues map[string]ArmorValue
	logger      *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger makes the Calculator trace every reduction step at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCalculator builds a Calculator whose armor table is the built-in table
// with overrides merged on top. overrides may be nil.
//
// Postcondition: the Calculator keeps its own copy; later changes to
// overrides are not observed.
func NewCalculator(overrides map[string]ArmorValue, opts ...Option) *Calculator {
	table := maps.Clone(builtinArmorValues)
	maps.Copy(table, overrides)
	c := &Calculator{armorValues: table, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ArmorValue resolves the armor value the Calculator uses for p.
func (c *Calculator) ArmorValue(p ArmorPiece) ArmorValue {
	return p.armorValue(c.armorValues)
}

// Calculate returns the damage left after armor, enchantment and resistance
// reductions are applied to base, in that order. Damage is floored at
// MinDamage before resistance. Non-positive and non-finite base damage
// (NaN, +Inf) is returned as is.
//
// Postcondition: result is base when base is not finite and positive,
// otherwise 0 <= result <= max(base, MinDamage).
func (c *Calculator) Calculate(base float64, snap Snapshot, cause Cause) float64 {
	if !reducible(base) {
		return base
	}
	dmg := base

	var armor, toughness float64
	for _, p := range snap.Armor {
		v := c.ArmorValue(p)
		armor += v.Armor
		toughness += v.Toughness
	}
	armorRed := armorReduction(base, armor, toughness)
	dmg *= 1 - armorRed

	enchRed := mathx.Clamp(enchantmentReduction(cause, snap.Armor), 0, 1)
	dmg *= 1 - enchRed

	dmg = max(dmg, MinDamage)

	resRed := ResistanceReduction(snap.Resistance)
	dmg *= 1 - resRed

	c.logger.Debug("modified damage",
		zap.Float64("base", base),
		zap.String("cause", string(cause)),
		zap.Float64("armor_points", armor),
		zap.Float64("toughness", toughness),
		zap.Float64("armor_reduction", armorRed),
		zap.Float64("enchantment_reduction", enchRed),
		zap.Float64("resistance_reduction", resRed),
		zap.Float64("final", dmg),
	)
	return dmg
}

// CalculateFor snapshots the target through its providers and calculates
// the damage against that snapshot.
func (c *Calculator) CalculateFor(base float64, equip EquipmentProvider, effects EffectProvider, cause Cause) float64 {
	if !reducible(base) {
		return base
	}
	return c.Calculate(base, TakeSnapshot(equip, effects), cause)
}

// reducible reports whether base is finite and positive. NaN fails the
// comparison.
func reducible(base float64) bool {
	return base > 0 && !math.IsInf(base, 1)
}

// armorReduction is 4% per effective armor point, where toughness raises the
// damage needed to penetrate armor. Any worn armor reduces by at least 0.8%.
// Toughness alone, with zero armor points, gives nothing.
//
// Postcondition: 0 <= result <= 1.
func armorReduction(base, armor, toughness float64) float64 {
	if armor == 0 {
		return 0
	}
	penetration := toughness/4 + 2
	effective := max(0, armor-base/penetration)
	return mathx.Clamp(max(effective*armorReductionPerPoint, minArmorReduction), 0, 1)
}
