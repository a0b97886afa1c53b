package damage

// Slot identifies an armor equipment slot on the host entity.
type Slot string

const (
	SlotHead  Slot = "Head"
	SlotChest Slot = "Chest"
	SlotLegs  Slot = "Legs"
	SlotFeet  Slot = "Feet"
)

// ArmorSlots lists the slots read by TakeSnapshot, in read order.
var ArmorSlots = []Slot{SlotHead, SlotChest, SlotLegs, SlotFeet}

// EquipmentProvider exposes the items an entity is wearing.
type EquipmentProvider interface {
	// Equipment returns the item in slot, or false when the slot is empty.
	Equipment(slot Slot) (ArmorPiece, bool)
}

// EffectProvider exposes the status effects active on an entity.
type EffectProvider interface {
	// EffectAmplifier returns the amplifier of effectID, or false when the
	// effect is not active.
	EffectAmplifier(effectID string) (int, bool)
}

// Snapshot is the protective state of a target at the moment damage is
// dealt. Calculate reads nothing but the snapshot.
type Snapshot struct {
	// Armor holds the equipped pieces in head, chest, legs, feet order with
	// empty slots omitted.
	Armor []ArmorPiece `yaml:"armor"`
	// Resistance is the resistance effect amplifier; 0 when not active.
	Resistance int `yaml:"resistance"`
}

// TakeSnapshot reads every armor slot and the resistance effect exactly once.
// A nil provider contributes nothing.
//
// Postcondition: the returned Snapshot shares no state with the providers
// beyond the item values they returned.
func TakeSnapshot(equip EquipmentProvider, effects EffectProvider) Snapshot {
	var snap Snapshot
	if equip != nil {
		for _, slot := range ArmorSlots {
			if p, ok := equip.Equipment(slot); ok {
				snap.Armor = append(snap.Armor, p)
			}
		}
	}
	if effects != nil {
		if amp, ok := effects.EffectAmplifier(EffectResistance); ok {
			snap.Resistance = amp
		}
	}
	return snap
}
