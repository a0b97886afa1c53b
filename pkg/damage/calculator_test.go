package damage_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/blockkit/pkg/damage"
)

func piece(id string, ench ...damage.Enchantment) damage.ArmorPiece {
	return damage.ArmorPiece{TypeID: id, Enchantments: ench}
}

func fullSet(material string, ench ...damage.Enchantment) []damage.ArmorPiece {
	return []damage.ArmorPiece{
		piece("minecraft:"+material+"_helmet", ench...),
		piece("minecraft:"+material+"_chestplate", ench...),
		piece("minecraft:"+material+"_leggings", ench...),
		piece("minecraft:"+material+"_boots", ench...),
	}
}

func TestCalculate_NonPositiveBaseUnchanged(t *testing.T) {
	calc := damage.NewCalculator(nil)
	snap := damage.Snapshot{Armor: fullSet("diamond"), Resistance: 2}
	assert.Equal(t, 0.0, calc.Calculate(0, snap, damage.CauseNone))
	assert.Equal(t, -5.0, calc.Calculate(-5, snap, damage.CauseFall))
}

func TestCalculate_NonFiniteBaseUnchanged(t *testing.T) {
	calc := damage.NewCalculator(nil)
	snap := damage.Snapshot{Armor: fullSet("diamond"), Resistance: 5}
	assert.True(t, math.IsNaN(calc.Calculate(math.NaN(), snap, damage.CauseNone)))
	assert.True(t, math.IsInf(calc.Calculate(math.Inf(1), snap, damage.CauseNone), 1))
	assert.True(t, math.IsInf(calc.Calculate(math.Inf(-1), snap, damage.CauseNone), -1))
}

func TestCalculate_BareTarget(t *testing.T) {
	calc := damage.NewCalculator(nil)
	assert.Equal(t, 20.0, calc.Calculate(20, damage.Snapshot{}, damage.CauseNone))
}

func TestCalculate_ArmorFormula(t *testing.T) {
	calc := damage.NewCalculator(nil)

	// 6 armor, 0 toughness: 6 - 10/2 = 1 effective point = 4%.
	got := calc.Calculate(10, damage.Snapshot{Armor: []damage.ArmorPiece{piece("minecraft:iron_chestplate")}}, damage.CauseNone)
	assert.InDelta(t, 9.6, got, 1e-9)

	// Full diamond: 20 armor, 8 toughness, penetration 4: 20 - 20/4 = 15 points = 60%.
	got = calc.Calculate(20, damage.Snapshot{Armor: fullSet("diamond")}, damage.CauseNone)
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestCalculate_MinimumArmorReduction(t *testing.T) {
	calc := damage.NewCalculator(nil)
	// 1 armor against 100 damage has no effective points left; 0.8% still applies.
	got := calc.Calculate(100, damage.Snapshot{Armor: []damage.ArmorPiece{piece("minecraft:leather_helmet")}}, damage.CauseNone)
	assert.InDelta(t, 99.2, got, 1e-9)
}

func TestCalculate_ToughnessWithoutArmorGivesNothing(t *testing.T) {
	calc := damage.NewCalculator(nil)
	snap := damage.Snapshot{Armor: []damage.ArmorPiece{{TypeID: "custom:cape", Tags: []string{"toughness:8"}}}}
	assert.Equal(t, 20.0, calc.Calculate(20, snap, damage.CauseNone))
}

func TestCalculate_ProtectionIsUnconditional(t *testing.T) {
	calc := damage.NewCalculator(nil)
	prot := damage.Enchantment{ID: "protection", Level: 2}
	snap := damage.Snapshot{Armor: []damage.ArmorPiece{{TypeID: "custom:shirt", Enchantments: []damage.Enchantment{prot}}}}
	for _, cause := range []damage.Cause{damage.CauseNone, damage.CauseFall, damage.CauseLava} {
		assert.InDelta(t, 18.0, calc.Calculate(20, snap, cause), 1e-9, "cause %s", cause)
	}
}

func TestCalculate_SpecializedProtectionGatedByCause(t *testing.T) {
	calc := damage.NewCalculator(nil)
	cases := []struct {
		ench    string
		matches []damage.Cause
		misses  []damage.Cause
	}{
		{damage.EnchantBlastProtection, []damage.Cause{damage.CauseBlockExplosion, damage.CauseEntityExplosion}, []damage.Cause{damage.CauseFire, damage.CauseNone}},
		{damage.EnchantFireProtection, []damage.Cause{damage.CauseFire, damage.CauseFireTick, damage.CauseLava}, []damage.Cause{damage.CauseMagma, damage.CauseProjectile}},
		{damage.EnchantProjectileProtection, []damage.Cause{damage.CauseProjectile}, []damage.Cause{damage.CauseEntityAttack}},
		{damage.EnchantFeatherFalling, []damage.Cause{damage.CauseFall}, []damage.Cause{damage.CauseFallingBlock, damage.CauseNone}},
	}
	for _, tc := range cases {
		snap := damage.Snapshot{Armor: []damage.ArmorPiece{
			{TypeID: "custom:boots", Enchantments: []damage.Enchantment{{ID: tc.ench, Level: 4}}},
		}}
		for _, cause := range tc.matches {
			// 4 levels * 8% = 32%
			assert.InDelta(t, 13.6, calc.Calculate(20, snap, cause), 1e-9, "%s vs %s", tc.ench, cause)
		}
		for _, cause := range tc.misses {
			assert.Equal(t, 20.0, calc.Calculate(20, snap, cause), "%s vs %s", tc.ench, cause)
		}
	}
}

func TestCalculate_NamespacedEnchantment(t *testing.T) {
	calc := damage.NewCalculator(nil)
	snap := damage.Snapshot{Armor: []damage.ArmorPiece{
		{TypeID: "custom:boots", Enchantments: []damage.Enchantment{{ID: "minecraft:feather_falling", Level: 1}}},
	}}
	assert.InDelta(t, 18.4, calc.Calculate(20, snap, damage.CauseFall), 1e-9)
}

func TestCalculate_EnchantmentCap(t *testing.T) {
	calc := damage.NewCalculator(nil)
	// 20 levels of protection is 100% nominal, capped at 80%.
	snap := damage.Snapshot{Armor: []damage.ArmorPiece{
		{TypeID: "custom:plate", Enchantments: []damage.Enchantment{{ID: "protection", Level: 20}}},
	}}
	assert.InDelta(t, 4.0, calc.Calculate(20, snap, damage.CauseNone), 1e-9)

	// Spread over four pieces with specialized stacking on top: still 80%.
	snap = damage.Snapshot{Armor: []damage.ArmorPiece{
		{TypeID: "a", Enchantments: []damage.Enchantment{{ID: "protection", Level: 4}, {ID: "feather_falling", Level: 4}}},
		{TypeID: "b", Enchantments: []damage.Enchantment{{ID: "protection", Level: 4}}},
		{TypeID: "c", Enchantments: []damage.Enchantment{{ID: "protection", Level: 4}}},
		{TypeID: "d", Enchantments: []damage.Enchantment{{ID: "protection", Level: 4}}},
	}}
	assert.InDelta(t, 4.0, calc.Calculate(20, snap, damage.CauseFall), 1e-9)
}

func TestCalculate_NegativeEnchantmentLevelIgnored(t *testing.T) {
	calc := damage.NewCalculator(nil)
	snap := damage.Snapshot{Armor: []damage.ArmorPiece{
		{TypeID: "custom:plate", Enchantments: []damage.Enchantment{{ID: "protection", Level: -3}}},
	}}
	assert.Equal(t, 20.0, calc.Calculate(20, snap, damage.CauseNone))
}

func TestCalculate_FloorBeforeResistance(t *testing.T) {
	calc := damage.NewCalculator(nil)
	prot4 := damage.Enchantment{ID: "protection", Level: 4}
	snap := damage.Snapshot{Armor: fullSet("netherite", prot4)}

	// Armor and enchantments alone would leave well under 1 damage.
	assert.Equal(t, 1.0, calc.Calculate(2, snap, damage.CauseNone))

	// Resistance applies after the floor: amplifier 2 removes 40% of 1.
	snap.Resistance = 2
	assert.InDelta(t, 0.6, calc.Calculate(2, snap, damage.CauseNone), 1e-9)
}

func TestCalculate_ResistanceTable(t *testing.T) {
	calc := damage.NewCalculator(nil)
	cases := map[int]float64{
		-1: 20,
		0:  20,
		1:  16,
		2:  12,
		3:  8,
		4:  4,
		5:  0,
		9:  0,
	}
	for amp, want := range cases {
		got := calc.Calculate(20, damage.Snapshot{Resistance: amp}, damage.CauseNone)
		assert.InDelta(t, want, got, 1e-9, "amplifier %d", amp)
	}
}

func TestCalculate_FullResistanceReachesZero(t *testing.T) {
	calc := damage.NewCalculator(nil)
	snap := damage.Snapshot{Armor: fullSet("diamond"), Resistance: 5}
	assert.Equal(t, 0.0, calc.Calculate(50, snap, damage.CauseNone))
}

func TestCalculate_CustomArmorOverrides(t *testing.T) {
	overrides := map[string]damage.ArmorValue{
		"custom:ruby_chestplate":    {Armor: 8, Toughness: 2},
		"minecraft:iron_chestplate": {Armor: 0},
	}
	calc := damage.NewCalculator(overrides)

	assert.Equal(t, damage.ArmorValue{Armor: 8, Toughness: 2}, calc.ArmorValue(piece("custom:ruby_chestplate")))
	assert.Equal(t, damage.ArmorValue{}, calc.ArmorValue(piece("minecraft:iron_chestplate")))
	assert.Equal(t, damage.ArmorValue{Armor: 3, Toughness: 2}, calc.ArmorValue(piece("minecraft:diamond_helmet")))

	// Overrides do not leak into other calculators.
	plain := damage.NewCalculator(nil)
	assert.Equal(t, damage.ArmorValue{Armor: 6}, plain.ArmorValue(piece("minecraft:iron_chestplate")))
	assert.Equal(t, damage.ArmorValue{}, plain.ArmorValue(piece("custom:ruby_chestplate")))

	// Nor does mutating the caller's map after construction.
	overrides["custom:ruby_chestplate"] = damage.ArmorValue{Armor: 1}
	assert.Equal(t, damage.ArmorValue{Armor: 8, Toughness: 2}, calc.ArmorValue(piece("custom:ruby_chestplate")))
}

func TestCalculate_TableBeatsTags(t *testing.T) {
	calc := damage.NewCalculator(nil)
	p := damage.ArmorPiece{TypeID: "minecraft:iron_boots", Tags: []string{"armor:20"}}
	assert.Equal(t, damage.ArmorValue{Armor: 2}, calc.ArmorValue(p))
}

func TestCalculate_UnknownItemContributesNothing(t *testing.T) {
	calc := damage.NewCalculator(nil)
	snap := damage.Snapshot{Armor: []damage.ArmorPiece{piece("custom:hat"), piece("")}}
	assert.Equal(t, 20.0, calc.Calculate(20, snap, damage.CauseNone))
}

func TestCalculate_LargeCustomArmorClamped(t *testing.T) {
	calc := damage.NewCalculator(map[string]damage.ArmorValue{"custom:wall": {Armor: 500}})
	snap := damage.Snapshot{Armor: []damage.ArmorPiece{piece("custom:wall")}}
	assert.Equal(t, 1.0, calc.Calculate(20, snap, damage.CauseNone))
}

func TestCalculate_LogsSteps(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	calc := damage.NewCalculator(nil, damage.WithLogger(zap.New(core)))
	calc.Calculate(20, damage.Snapshot{Armor: fullSet("diamond")}, damage.CauseFall)

	entries := logs.FilterMessage("modified damage").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "fall", fields["cause"])
	assert.Equal(t, 20.0, fields["armor_points"])
	assert.Equal(t, 8.0, fields["toughness"])
}

func TestProperty_ArmoredResultWithinBounds(t *testing.T) {
	materials := []string{"leather", "golden", "chainmail", "iron", "diamond", "netherite"}
	calc := damage.NewCalculator(nil)
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.Float64Range(1, 1000).Draw(rt, "base")
		mat := rapid.SampledFrom(materials).Draw(rt, "material")
		n := rapid.IntRange(1, 4).Draw(rt, "pieces")
		snap := damage.Snapshot{Armor: fullSet(mat)[:n]}

		got := calc.Calculate(base, snap, damage.CauseNone)
		assert.GreaterOrEqual(rt, got, damage.MinDamage)
		assert.LessOrEqual(rt, got, base)
	})
}

func TestProperty_CalculateIsPure(t *testing.T) {
	calc := damage.NewCalculator(nil)
	causes := []damage.Cause{damage.CauseNone, damage.CauseFall, damage.CauseFire, damage.CauseProjectile, damage.CauseBlockExplosion}
	enchants := []string{"protection", "blast_protection", "fire_protection", "projectile_protection", "feather_falling", "unbreaking"}
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.Float64Range(-10, 1000).Draw(rt, "base")
		cause := rapid.SampledFrom(causes).Draw(rt, "cause")
		var pieces []damage.ArmorPiece
		for range rapid.IntRange(0, 4).Draw(rt, "pieces") {
			p := damage.ArmorPiece{TypeID: rapid.SampledFrom([]string{"minecraft:iron_helmet", "minecraft:diamond_chestplate", "custom:x"}).Draw(rt, "id")}
			for range rapid.IntRange(0, 3).Draw(rt, "enchants") {
				p.Enchantments = append(p.Enchantments, damage.Enchantment{
					ID:    rapid.SampledFrom(enchants).Draw(rt, "ench"),
					Level: rapid.IntRange(0, 10).Draw(rt, "level"),
				})
			}
			pieces = append(pieces, p)
		}
		snap := damage.Snapshot{Armor: pieces, Resistance: rapid.IntRange(0, 6).Draw(rt, "resistance")}

		first := calc.Calculate(base, snap, cause)
		second := calc.Calculate(base, snap, cause)
		assert.Equal(rt, first, second)
		if base > 0 {
			assert.GreaterOrEqual(rt, first, 0.0)
		}
	})
}
