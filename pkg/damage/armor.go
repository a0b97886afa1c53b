package damage

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ArmorValue is the raw protection an armor item contributes.
type ArmorValue struct {
	Armor     float64 `yaml:"armor"`
	Toughness float64 `yaml:"toughness"`
}

// builtinArmorValues holds the vanilla armor table. It is never mutated;
// NewCalculator copies it before merging overrides.
var builtinArmorValues = map[string]ArmorValue{
	// Helmets
	"minecraft:leather_helmet":   {Armor: 1},
	"minecraft:golden_helmet":    {Armor: 2},
	"minecraft:chainmail_helmet": {Armor: 2},
	"minecraft:iron_helmet":      {Armor: 2},
	"minecraft:turtle_helmet":    {Armor: 2},
	"minecraft:diamond_helmet":   {Armor: 3, Toughness: 2},
	"minecraft:netherite_helmet": {Armor: 3, Toughness: 3},

	// Chestplates
	"minecraft:leather_chestplate":   {Armor: 3},
	"minecraft:golden_chestplate":    {Armor: 5},
	"minecraft:chainmail_chestplate": {Armor: 5},
	"minecraft:iron_chestplate":      {Armor: 6},
	"minecraft:diamond_chestplate":   {Armor: 8, Toughness: 2},
	"minecraft:netherite_chestplate": {Armor: 8, Toughness: 3},

	// Leggings
	"minecraft:leather_leggings":   {Armor: 2},
	"minecraft:golden_leggings":    {Armor: 3},
	"minecraft:chainmail_leggings": {Armor: 4},
	"minecraft:iron_leggings":      {Armor: 5},
	"minecraft:diamond_leggings":   {Armor: 6, Toughness: 2},
	"minecraft:netherite_leggings": {Armor: 6, Toughness: 3},

	// Boots
	"minecraft:leather_boots":   {Armor: 1},
	"minecraft:golden_boots":    {Armor: 1},
	"minecraft:chainmail_boots": {Armor: 1},
	"minecraft:iron_boots":      {Armor: 2},
	"minecraft:diamond_boots":   {Armor: 3, Toughness: 2},
	"minecraft:netherite_boots": {Armor: 3, Toughness: 3},
}

// BuiltinArmorValues returns a copy of the vanilla armor table.
//
// Postcondition: mutating the result does not affect any Calculator.
func BuiltinArmorValues() map[string]ArmorValue {
	return maps.Clone(builtinArmorValues)
}

const (
	armorTagPrefix     = "armor:"
	toughnessTagPrefix = "toughness:"
)

// ArmorPiece is the snapshot of one equipped armor item.
type ArmorPiece struct {
	TypeID       string        `yaml:"type_id"`
	Tags         []string      `yaml:"tags"`
	Enchantments []Enchantment `yaml:"enchantments"`
}

// armorValue resolves p against table, falling back to the armor:<n> and
// toughness:<n> tags when the table has no entry, and to zero otherwise.
func (p ArmorPiece) armorValue(table map[string]ArmorValue) ArmorValue {
	if v, ok := table[p.TypeID]; ok {
		return v
	}
	var v ArmorValue
	for _, tag := range p.Tags {
		if n, ok := parseTagValue(tag, armorTagPrefix); ok {
			v.Armor = n
			continue
		}
		if n, ok := parseTagValue(tag, toughnessTagPrefix); ok {
			v.Toughness = n
		}
	}
	return v
}

// parseTagValue extracts the number from a "<prefix><n>" tag. Anything after
// a further ':' is ignored. An empty value reads as 0, so "armor:" resets an
// earlier tag. Malformed, negative and non-finite values are rejected.
func parseTagValue(tag, prefix string) (float64, bool) {
	rest, ok := strings.CutPrefix(tag, prefix)
	if !ok {
		return 0, false
	}
	rest, _, _ = strings.Cut(rest, ":")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(rest, 64)
	if err != nil || n < 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// armorFile is the on-disk layout read by LoadArmorValues.
type armorFile struct {
	Armor []struct {
		ID        string  `yaml:"id"`
		Armor     float64 `yaml:"armor"`
		Toughness float64 `yaml:"toughness"`
	} `yaml:"armor"`
}

// LoadArmorValues reads a YAML file of custom armor values suitable for
// NewCalculator:
//
//	armor:
//	  - id: custom:ruby_chestplate
//	    armor: 8
//	    toughness: 2
//
// Precondition: path must name a readable YAML file.
// Postcondition: Returns a non-nil map or an error describing every invalid entry.
func LoadArmorValues(path string) (map[string]ArmorValue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("damage: reading armor file %q: %w", path, err)
	}
	var f armorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("damage: parsing armor file %q: %w", path, err)
	}

	out := make(map[string]ArmorValue, len(f.Armor))
	var errs []error
	for i, e := range f.Armor {
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("armor[%d]: id must not be empty", i))
			continue
		}
		if e.Armor < 0 {
			errs = append(errs, fmt.Errorf("armor[%d] %q: armor must be >= 0", i, e.ID))
		}
		if e.Toughness < 0 {
			errs = append(errs, fmt.Errorf("armor[%d] %q: toughness must be >= 0", i, e.ID))
		}
		if _, dup := out[e.ID]; dup {
			errs = append(errs, fmt.Errorf("armor[%d]: duplicate id %q", i, e.ID))
		}
		out[e.ID] = ArmorValue{Armor: e.Armor, Toughness: e.Toughness}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("damage: invalid armor file %q: %w", path, errors.Join(errs...))
	}
	return out, nil
}
