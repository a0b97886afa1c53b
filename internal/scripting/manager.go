package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/blockkit/pkg/damage"
	"github.com/cory-johannsen/blockkit/pkg/random"
)

var errSetName = errors.New("scripting: script set name must not be empty")

// ErrSetClosed is returned by CallHook when the set's VM was replaced or
// closed while the call waited for it.
var ErrSetClosed = errors.New("scripting: script set closed")

// vm is one loaded script set. An LState is single-threaded, so mu
// serializes every call into it.
type vm struct {
	mu     sync.Mutex
	id     string
	limit  int
	state  *lua.LState
	cancel func()
	closed bool
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.cancel()
	v.state.Close()
}

// Manager owns one sandboxed LState per script set and dispatches hooks
// into them.
//
// Manager is safe for concurrent use. Different script sets run
// concurrently; calls into the same set are serialized.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	picker *random.Picker
	calc   *damage.Calculator
	logger *zap.Logger
}

// NewManager creates a Manager whose scripts draw randomness through picker
// and compute damage through calc.
//
// Precondition: picker, calc and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no script sets loaded.
func NewManager(picker *random.Picker, calc *damage.Calculator, logger *zap.Logger) *Manager {
	if picker == nil {
		panic("scripting: NewManager precondition violated: picker must be non-nil")
	}
	if calc == nil {
		panic("scripting: NewManager precondition violated: calc must be non-nil")
	}
	if logger == nil {
		panic("scripting: NewManager precondition violated: logger must be non-nil")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		picker: picker,
		calc:   calc,
		logger: logger,
	}
}

// Load creates a sandboxed VM named name, registers the engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order. A set
// already loaded under name is replaced and closed.
//
// Precondition: name must be non-empty; scriptDir must be a readable directory.
// Postcondition: The VM is registered under name; returns error on any load failure.
func (m *Manager) Load(name, scriptDir string, instLimit int) error {
	if name == "" {
		return errSetName
	}
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, name, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	return m.load(name, func(L *lua.LState) error {
		for _, path := range luaFiles {
			if err := L.DoFile(path); err != nil {
				return fmt.Errorf("scripting: loading %q for %q: %w", path, name, err)
			}
		}
		return nil
	}, instLimit)
}

// LoadString is Load for a single in-memory chunk.
func (m *Manager) LoadString(name, src string, instLimit int) error {
	if name == "" {
		return errSetName
	}
	return m.load(name, func(L *lua.LState) error {
		if err := L.DoString(src); err != nil {
			return fmt.Errorf("scripting: loading chunk for %q: %w", name, err)
		}
		return nil
	}, instLimit)
}

func (m *Manager) load(name string, run func(*lua.LState) error, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	if err := run(L); err != nil {
		cancel()
		L.Close()
		return err
	}

	v := &vm{id: uuid.NewString(), limit: instLimit, state: L, cancel: cancel}
	m.mu.Lock()
	old := m.vms[name]
	m.vms[name] = v
	m.mu.Unlock()
	if old != nil {
		old.close()
	}

	m.logger.Info("scripting: script set loaded",
		zap.String("set", name),
		zap.String("vm_id", v.id),
	)
	return nil
}

// CallHook calls the named Lua global function in the named script set.
// Returns (LNil, nil) if the set or the hook does not exist, and ErrSetClosed
// if the set was closed or replaced while the call waited for it. Lua runtime
// errors, including an exhausted instruction budget, are logged at Warn level
// and never propagated. Every call runs under its own instruction budget.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(name, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v := m.vms[name]
	m.mu.RUnlock()

	if v == nil {
		m.logger.Info("scripting: no script set",
			zap.String("set", name),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return lua.LNil, fmt.Errorf("calling %q in %q: %w", hook, name, ErrSetClosed)
	}

	L := v.state
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	ctx, cancel := newCountingContext(v.limit)
	defer cancel()
	L.SetContext(ctx)

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("set", name),
			zap.String("vm_id", v.id),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close releases every loaded script set.
//
// Postcondition: CallHook returns LNil for every set until it is loaded again.
func (m *Manager) Close() {
	m.mu.Lock()
	vms := m.vms
	m.vms = make(map[string]*vm)
	m.mu.Unlock()
	for _, v := range vms {
		v.close()
	}
}
