package world_test

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cory-johannsen/blockkit/pkg/world"
)

type fakeDimension struct {
	commands []string
	err      error
}

func (d *fakeDimension) RunCommand(cmd string) (world.CommandResult, error) {
	d.commands = append(d.commands, cmd)
	if d.err != nil {
		return world.CommandResult{}, d.err
	}
	return world.CommandResult{SuccessCount: 1}, nil
}

// fakeBlock is an integer block position; the centre is offset by 0.5.
type fakeBlock struct {
	pos [3]int
	dim *fakeDimension
	// minY is the lowest loaded layer.
	minY int
}

func (b *fakeBlock) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(b.pos[0]) + 0.5, float64(b.pos[1]) + 0.5, float64(b.pos[2]) + 0.5}
}

func (b *fakeBlock) Dimension() world.Dimension { return b.dim }

func (b *fakeBlock) offset(dx, dy, dz int) (world.Block, bool) {
	p := [3]int{b.pos[0] + dx, b.pos[1] + dy, b.pos[2] + dz}
	if p[1] < b.minY {
		return nil, false
	}
	return &fakeBlock{pos: p, dim: b.dim, minY: b.minY}, true
}

func (b *fakeBlock) Above(n int) (world.Block, bool) { return b.offset(0, n, 0) }
func (b *fakeBlock) Below(n int) (world.Block, bool) { return b.offset(0, -n, 0) }
func (b *fakeBlock) North(n int) (world.Block, bool) { return b.offset(0, 0, -n) }
func (b *fakeBlock) South(n int) (world.Block, bool) { return b.offset(0, 0, n) }
func (b *fakeBlock) West(n int) (world.Block, bool)  { return b.offset(-n, 0, 0) }
func (b *fakeBlock) East(n int) (world.Block, bool)  { return b.offset(n, 0, 0) }

type fakeItem struct {
	typeID string
	amount int
	tags   []string
}

func (i *fakeItem) TypeID() string { return i.typeID }
func (i *fakeItem) Amount() int    { return i.amount }
func (i *fakeItem) Tags() []string { return i.tags }

type fakeSlot struct {
	item *fakeItem
}

func (s *fakeSlot) Item() (world.ItemStack, bool) {
	if s.item == nil {
		return nil, false
	}
	return s.item, true
}

type fakeContainer struct {
	slots []*fakeSlot
}

func (c *fakeContainer) Size() int { return len(c.slots) }

func (c *fakeContainer) Item(i int) (world.ItemStack, bool) { return c.slots[i].Item() }

func (c *fakeContainer) Slot(i int) world.ContainerSlot { return c.slots[i] }

type fakePlayer struct {
	hp       *float64
	mode     world.GameMode
	commands []string
	err      error
}

func (p *fakePlayer) Health() (float64, bool) {
	if p.hp == nil {
		return 0, false
	}
	return *p.hp, true
}

func (p *fakePlayer) GameMode() world.GameMode { return p.mode }

func (p *fakePlayer) RunCommand(cmd string) (world.CommandResult, error) {
	p.commands = append(p.commands, cmd)
	return world.CommandResult{}, p.err
}
