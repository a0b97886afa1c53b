package damage

// EffectResistance is the host status effect read for the resistance step.
const EffectResistance = "resistance"

// resistanceReductions maps an amplifier to its reduction; amplifiers past the
// end of the table give full immunity.
var resistanceReductions = [...]float64{0, 0.2, 0.4, 0.6, 0.8}

// ResistanceReduction returns the fraction of damage removed by a resistance
// effect with the given amplifier.
//
// Postcondition: 0 <= result <= 1.
func ResistanceReduction(amplifier int) float64 {
	if amplifier <= 0 {
		return 0
	}
	if amplifier >= len(resistanceReductions) {
		return 1
	}
	return resistanceReductions[amplifier]
}
