package world

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cory-johannsen/blockkit/pkg/direction"
)

// formatLocation renders v as command coordinates, e.g. "10.5 64.5 -3.5".
func formatLocation(v mgl64.Vec3) string {
	f := func(n float64) string { return strconv.FormatFloat(n, 'f', -1, 64) }
	return f(v.X()) + " " + f(v.Y()) + " " + f(v.Z())
}

// RunCommandAtBlock runs command positioned at the centre of b.
//
// Postcondition: the dimension receives "execute positioned <x> <y> <z> run <command>".
func RunCommandAtBlock(b Block, command string) (CommandResult, error) {
	full := "execute positioned " + formatLocation(b.Center()) + " run " + command
	res, err := b.Dimension().RunCommand(full)
	if err != nil {
		return CommandResult{}, fmt.Errorf("world: running %q: %w", full, err)
	}
	return res, nil
}

// DestroyBlock replaces b with air, dropping it as if mined.
func DestroyBlock(b Block) error {
	full := "setblock " + formatLocation(b.Center()) + " air destroy"
	if _, err := b.Dimension().RunCommand(full); err != nil {
		return fmt.Errorf("world: running %q: %w", full, err)
	}
	return nil
}

// RelativeBlock returns the block steps away from origin towards d. A
// non-positive steps counts as 1. Returns false for unknown directions or
// when the host has no block there.
func RelativeBlock(origin Block, d direction.Direction, steps int) (Block, bool) {
	if steps <= 0 {
		steps = 1
	}
	switch d {
	case direction.Up:
		return origin.Above(steps)
	case direction.Down:
		return origin.Below(steps)
	case direction.North:
		return origin.North(steps)
	case direction.South:
		return origin.South(steps)
	case direction.West:
		return origin.West(steps)
	case direction.East:
		return origin.East(steps)
	}
	return nil, false
}
