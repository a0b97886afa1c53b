// Package world wraps the host's block, container, entity and player API with
// small helpers for scripts. The host types are consumed through the
// interfaces below; this package never implements them.
package world

import "github.com/go-gl/mathgl/mgl64"

// CommandResult is what the host reports after running a command.
type CommandResult struct {
	SuccessCount int
}

// Dimension runs commands in one world dimension.
type Dimension interface {
	RunCommand(command string) (CommandResult, error)
}

// Block is a block location in a dimension. The neighbour accessors return
// false when the target lies outside the loaded world.
type Block interface {
	Center() mgl64.Vec3
	Dimension() Dimension
	Above(steps int) (Block, bool)
	Below(steps int) (Block, bool)
	North(steps int) (Block, bool)
	South(steps int) (Block, bool)
	West(steps int) (Block, bool)
	East(steps int) (Block, bool)
}

// ItemStack is a stack of items held in a container slot.
type ItemStack interface {
	TypeID() string
	Amount() int
	Tags() []string
}

// ContainerSlot is a single addressable slot; it exists even when empty.
type ContainerSlot interface {
	Item() (ItemStack, bool)
}

// Container is an ordered set of slots.
type Container interface {
	Size() int
	Item(index int) (ItemStack, bool)
	Slot(index int) ContainerSlot
}

// Entity is any living or non-living entity.
type Entity interface {
	// Health returns the current health, or false when the entity has no
	// health component.
	Health() (float64, bool)
}

// GameMode is a player's game mode.
type GameMode string

const (
	GameModeSurvival  GameMode = "survival"
	GameModeCreative  GameMode = "creative"
	GameModeAdventure GameMode = "adventure"
	GameModeSpectator GameMode = "spectator"
)

// Player is a connected player.
type Player interface {
	Entity
	GameMode() GameMode
	RunCommand(command string) (CommandResult, error)
}
