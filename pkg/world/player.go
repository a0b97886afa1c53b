package world

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidShakeMode is returned by AddCameraShake for an unknown mode.
var ErrInvalidShakeMode = errors.New("world: camera shake mode must be positional or rotational")

// ShakeMode selects how the camera shakes.
type ShakeMode string

const (
	ShakePositional ShakeMode = "positional"
	ShakeRotational ShakeMode = "rotational"
)

// IsAlive reports whether e has a health component with health above zero.
func IsAlive(e Entity) bool {
	hp, ok := e.Health()
	return ok && hp > 0
}

// IsCreativeOrSpectator reports whether p is in creative or spectator mode.
func IsCreativeOrSpectator(p Player) bool {
	switch p.GameMode() {
	case GameModeCreative, GameModeSpectator:
		return true
	}
	return false
}

// AddCameraShake shakes p's camera with the given intensity for seconds.
func AddCameraShake(p Player, intensity, seconds float64, mode ShakeMode) error {
	if mode != ShakePositional && mode != ShakeRotational {
		return fmt.Errorf("%w: got %q", ErrInvalidShakeMode, mode)
	}
	cmd := "camerashake add @s " +
		strconv.FormatFloat(intensity, 'f', -1, 64) + " " +
		strconv.FormatFloat(seconds, 'f', -1, 64) + " " +
		string(mode)
	if _, err := p.RunCommand(cmd); err != nil {
		return fmt.Errorf("world: running %q: %w", cmd, err)
	}
	return nil
}

// StopCameraShake stops any camera shake on p.
func StopCameraShake(p Player) error {
	const cmd = "camerashake stop @s"
	if _, err := p.RunCommand(cmd); err != nil {
		return fmt.Errorf("world: running %q: %w", cmd, err)
	}
	return nil
}
