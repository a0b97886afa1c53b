package scripting

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/blockkit/pkg/damage"
	"github.com/cory-johannsen/blockkit/pkg/direction"
	"github.com/cory-johannsen/blockkit/pkg/mathx"
	"github.com/cory-johannsen/blockkit/pkg/random"
)

// RegisterModules installs the engine global and its sub-tables into L:
// engine.log, engine.math, engine.random, engine.damage and engine.direction.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", L.SetFuncs(L.NewTable(), m.logFuncs()))
	L.SetField(engine, "math", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"clamp":         luaClamp,
		"almost_equals": luaAlmostEquals,
	}))
	L.SetField(engine, "random", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"int":    m.luaRandomInt,
		"float":  m.luaRandomFloat,
		"select": m.luaRandomSelect,
	}))
	L.SetField(engine, "damage", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"calculate": m.luaDamageCalculate,
	}))
	L.SetField(engine, "direction", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"opposite":      luaOpposite,
		"from_rotation": luaFromRotation,
		"to_rotation":   luaToRotation,
		"to_vector":     luaToVector,
		"from_vector":   luaFromVector,
	}))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logFuncs() map[string]lua.LGFunction {
	logAt := func(log func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			log(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	return map[string]lua.LGFunction{
		"debug": logAt(m.logger.Debug),
		"info":  logAt(m.logger.Info),
		"warn":  logAt(m.logger.Warn),
		"error": logAt(m.logger.Error),
	}
}

// engine.math.clamp(value, min, max) -> number
func luaClamp(L *lua.LState) int {
	v := float64(L.CheckNumber(1))
	lo := float64(L.CheckNumber(2))
	hi := float64(L.CheckNumber(3))
	L.Push(lua.LNumber(mathx.Clamp(v, lo, hi)))
	return 1
}

// engine.math.almost_equals(a, b [, epsilon]) -> boolean
func luaAlmostEquals(L *lua.LState) int {
	a := float64(L.CheckNumber(1))
	b := float64(L.CheckNumber(2))
	eps := float64(L.OptNumber(3, lua.LNumber(mathx.DefaultEpsilon)))
	L.Push(lua.LBool(mathx.AlmostEquals(a, b, eps)))
	return 1
}

// checkInt is L.CheckInt without the silent wrap-around: the argument must
// be a finite number inside the int range. Fractions are truncated.
func checkInt(L *lua.LState, n int) int {
	f := float64(L.CheckNumber(n))
	if math.IsNaN(f) || f < math.MinInt || f >= math.MaxInt {
		L.ArgError(n, "integer out of range")
		return 0
	}
	return int(f)
}

// saturatingInt converts a table field to an int in [0, limit]. NaN and
// negative values count as 0.
func saturatingInt(n lua.LNumber, limit int) int {
	f := float64(n)
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= float64(limit):
		return limit
	}
	return int(f)
}

// engine.random.int(min, max) -> integer in [min, max]
func (m *Manager) luaRandomInt(L *lua.LState) int {
	lo := checkInt(L, 1)
	hi := checkInt(L, 2)
	if hi < lo {
		L.ArgError(2, "max must be >= min")
		return 0
	}
	if !random.ValidIntRange(lo, hi) {
		L.ArgError(2, "range span must be below math.MaxInt")
		return 0
	}
	L.Push(lua.LNumber(m.picker.Int(lo, hi)))
	return 1
}

// engine.random.float(min, max) -> number in [min, max)
func (m *Manager) luaRandomFloat(L *lua.LState) int {
	lo := float64(L.CheckNumber(1))
	hi := float64(L.CheckNumber(2))
	L.Push(lua.LNumber(m.picker.Float(lo, hi)))
	return 1
}

// engine.random.select({ {weight = n, ...}, ... }) -> the chosen table
func (m *Manager) luaRandomSelect(L *lua.LState) int {
	tbl := L.CheckTable(1)
	n := tbl.Len()
	candidates := make([]random.Candidate[lua.LValue], 0, n)
	for i := 1; i <= n; i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(1, "every candidate must be a table")
			return 0
		}
		w, ok := entry.RawGetString("weight").(lua.LNumber)
		if !ok {
			L.ArgError(1, "every candidate needs a numeric weight")
			return 0
		}
		candidates = append(candidates, random.Candidate[lua.LValue]{Value: entry, Weight: float64(w)})
	}
	chosen, err := random.Pick(m.picker, candidates)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(chosen)
	return 1
}

// engine.damage.calculate(base, target [, cause]) -> number
//
// target = { armor = { { type_id = "...", tags = {...}, enchantments = { { id = "...", level = n } } } }, resistance = n }
func (m *Manager) luaDamageCalculate(L *lua.LState) int {
	base := float64(L.CheckNumber(1))
	target := L.OptTable(2, L.NewTable())
	cause, err := damage.ParseCause(L.OptString(3, string(damage.CauseNone)))
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}
	L.Push(lua.LNumber(m.calc.Calculate(base, snapshotFromTable(target), cause)))
	return 1
}

// maxTableInt bounds amplifiers and enchantment levels read from Lua. Both
// saturate well below it.
const maxTableInt = math.MaxInt32

// snapshotFromTable reads a Lua target table. Missing or mistyped fields
// count as absent. Amplifiers and levels saturate instead of wrapping, so a
// huge value protects at least as much as a small one.
func snapshotFromTable(t *lua.LTable) damage.Snapshot {
	var snap damage.Snapshot
	if amp, ok := t.RawGetString("resistance").(lua.LNumber); ok {
		snap.Resistance = saturatingInt(amp, maxTableInt)
	}
	armor, ok := t.RawGetString("armor").(*lua.LTable)
	if !ok {
		return snap
	}
	for i := 1; i <= armor.Len(); i++ {
		pt, ok := armor.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		p := damage.ArmorPiece{TypeID: lua.LVAsString(pt.RawGetString("type_id"))}
		if tags, ok := pt.RawGetString("tags").(*lua.LTable); ok {
			for j := 1; j <= tags.Len(); j++ {
				p.Tags = append(p.Tags, lua.LVAsString(tags.RawGetInt(j)))
			}
		}
		if enchs, ok := pt.RawGetString("enchantments").(*lua.LTable); ok {
			for j := 1; j <= enchs.Len(); j++ {
				et, ok := enchs.RawGetInt(j).(*lua.LTable)
				if !ok {
					continue
				}
				p.Enchantments = append(p.Enchantments, damage.Enchantment{
					ID:    lua.LVAsString(et.RawGetString("id")),
					Level: saturatingInt(lua.LVAsNumber(et.RawGetString("level")), maxTableInt),
				})
			}
		}
		snap.Armor = append(snap.Armor, p)
	}
	return snap
}

// engine.direction.opposite(dir) -> dir
func luaOpposite(L *lua.LState) int {
	L.Push(lua.LString(direction.Opposite(direction.Direction(L.CheckString(1)))))
	return 1
}

// engine.direction.from_rotation(pitch, yaw [, ignore_pitch [, pitch_threshold]]) -> dir
func luaFromRotation(L *lua.LState) int {
	rot := mgl64.Vec2{float64(L.CheckNumber(1)), float64(L.CheckNumber(2))}
	ignorePitch := L.OptBool(3, false)
	threshold := float64(L.OptNumber(4, lua.LNumber(direction.DefaultPitchThreshold)))
	L.Push(lua.LString(direction.FromRotation(rot, ignorePitch, threshold)))
	return 1
}

// engine.direction.to_rotation(dir) -> pitch, yaw
func luaToRotation(L *lua.LState) int {
	rot := direction.ToRotation(direction.Direction(L.CheckString(1)))
	L.Push(lua.LNumber(rot.X()))
	L.Push(lua.LNumber(rot.Y()))
	return 2
}

// engine.direction.to_vector(dir) -> x, y, z
func luaToVector(L *lua.LState) int {
	v := direction.ToVector(direction.Direction(L.CheckString(1)))
	L.Push(lua.LNumber(v.X()))
	L.Push(lua.LNumber(v.Y()))
	L.Push(lua.LNumber(v.Z()))
	return 3
}

// engine.direction.from_vector(x, y, z) -> dir
func luaFromVector(L *lua.LState) int {
	v := mgl64.Vec3{float64(L.CheckNumber(1)), float64(L.CheckNumber(2)), float64(L.CheckNumber(3))}
	L.Push(lua.LString(direction.FromVector(v)))
	return 1
}
