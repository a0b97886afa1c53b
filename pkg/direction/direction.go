// Package direction converts between block faces, rotations and vectors.
//
// Rotations are (pitch, yaw) pairs in degrees: X is pitch, negative looking
// up; Y is yaw, 0 facing south and increasing towards west.
package direction

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Direction is one of the six block faces.
type Direction string

const (
	Down  Direction = "Down"
	Up    Direction = "Up"
	North Direction = "North"
	South Direction = "South"
	West  Direction = "West"
	East  Direction = "East"
)

// All lists every Direction.
var All = []Direction{Down, Up, North, South, West, East}

// DefaultPitchThreshold is the pitch, in degrees, beyond which FromRotation
// reports Up or Down.
const DefaultPitchThreshold = 45.0

var opposites = map[Direction]Direction{
	Up: Down, Down: Up,
	North: South, South: North,
	East: West, West: East,
}

var rotations = map[Direction]mgl64.Vec2{
	Up:    {-90, 0},
	Down:  {90, 0},
	South: {0, 0},
	West:  {0, 90},
	North: {0, 180},
	East:  {0, -90},
}

var vectors = map[Direction]mgl64.Vec3{
	Up:    {0, 1, 0},
	Down:  {0, -1, 0},
	North: {0, 0, -1},
	East:  {1, 0, 0},
	South: {0, 0, 1},
	West:  {-1, 0, 0},
}

// Valid reports whether d is one of the six faces.
func (d Direction) Valid() bool {
	_, ok := opposites[d]
	return ok
}

// Opposite returns the face facing away from d. An unknown direction yields North.
func Opposite(d Direction) Direction {
	if o, ok := opposites[d]; ok {
		return o
	}
	return North
}

// FromRotation returns the face a rotation looks towards. Unless ignorePitch
// is set, looking further up or down than pitchThreshold gives Up or Down.
func FromRotation(rot mgl64.Vec2, ignorePitch bool, pitchThreshold float64) Direction {
	pitch, yaw := rot.X(), rot.Y()
	switch {
	case !ignorePitch && pitch < -pitchThreshold:
		return Up
	case !ignorePitch && pitch > pitchThreshold:
		return Down
	case yaw > -45 && yaw <= 45:
		return South
	case yaw > 45 && yaw <= 135:
		return West
	case yaw > 135 || yaw <= -135:
		return North
	case yaw > -135 && yaw <= -45:
		return East
	}
	// NaN yaw.
	return North
}

// ToRotation returns the rotation looking straight at d. Unknown directions
// yield the zero rotation.
func ToRotation(d Direction) mgl64.Vec2 {
	return rotations[d]
}

// ToVector returns the unit vector pointing towards d. Unknown directions
// yield the zero vector.
func ToVector(d Direction) mgl64.Vec3 {
	return vectors[d]
}

// FromVector returns the face along v's dominant axis. Y only dominates when
// strictly larger than both X and Z; ties between X and Z go to Z. The zero
// vector yields North.
func FromVector(v mgl64.Vec3) Direction {
	ax, ay, az := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())
	switch {
	case ay > ax && ay > az:
		if v.Y() > 0 {
			return Up
		}
		return Down
	case ax > az:
		if v.X() > 0 {
			return East
		}
		return West
	case az > 0:
		if v.Z() > 0 {
			return South
		}
		return North
	}
	return North
}
