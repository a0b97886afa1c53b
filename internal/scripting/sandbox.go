// Package scripting hosts game scripts in sandboxed GopherLua VMs and exposes
// the helper library to them as the engine.* modules.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes a VM may
// execute when no explicit limit is configured.
const DefaultInstructionLimit = 100_000

// countingContext is a context.Context that cancels itself after Done() has
// been called limit times. GopherLua's mainLoopWithContext calls Done() once
// per opcode, making this an exact instruction-count limit.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

// Done decrements the remaining budget and fires cancel once it is spent.
func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newCountingContext returns a context that cancels after limit calls to
// Done(). A non-positive limit uses DefaultInstructionLimit.
func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{
		Context:   base,
		cancel:    cancel,
		remaining: rem,
	}, cancel
}

// NewSandboxedState creates a GopherLua LState with:
//   - Only safe stdlib loaded: base, table, string, math
//   - Dangerous globals removed: dofile, loadfile, load, loadstring, collectgarbage, require
//   - Execution limited to at most instLimit Lua opcodes until the context
//     is replaced; Manager grants each hook call a fresh budget
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: The caller owns the LState and the cancel func; both
// L.Close() and cancel() must be called when done.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, cancel := newCountingContext(instLimit)
	L.SetContext(ctx)

	return L, cancel
}
