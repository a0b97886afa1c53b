package host

import (
	"context"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// HookCaller dispatches a named hook into a loaded script set.
// *scripting.Manager satisfies it: script errors are logged by the caller
// and yield a nil error, so a non-nil error means the hook could not be
// dispatched at all, such as scripting.ErrSetClosed.
type HookCaller interface {
	CallHook(set, hook string, args ...lua.LValue) (lua.LValue, error)
}

// Ticker calls a hook in every registered script set once per interval,
// passing the current tick number as the only argument.
//
// Invariant: each registered hook is called at most once per tick, and sets
// are visited in name order.
type Ticker struct {
	interval time.Duration
	caller   HookCaller
	logger   *zap.Logger
	tick     atomic.Uint64

	mu    sync.Mutex
	hooks map[string]string
}

// NewTicker returns a Ticker that fires every interval.
//
// Precondition: interval must be > 0; caller and logger must be non-nil.
func NewTicker(interval time.Duration, caller HookCaller, logger *zap.Logger) *Ticker {
	if interval <= 0 {
		panic("host: NewTicker precondition violated: interval must be > 0")
	}
	if caller == nil || logger == nil {
		panic("host: NewTicker precondition violated: caller and logger must be non-nil")
	}
	return &Ticker{
		interval: interval,
		caller:   caller,
		logger:   logger,
		hooks:    make(map[string]string),
	}
}

// Register makes the Ticker call hook in set. Replaces any existing hook for set.
func (t *Ticker) Register(set, hook string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks[set] = hook
}

// Unregister stops ticking set.
func (t *Ticker) Unregister(set string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.hooks, set)
}

// Tick returns the number of ticks fired so far.
func (t *Ticker) Tick() uint64 {
	return t.tick.Load()
}

// Run fires ticks until ctx is cancelled.
//
// Postcondition: returns nil once ctx is done.
func (t *Ticker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.fire()
		}
	}
}

func (t *Ticker) fire() {
	n := t.tick.Add(1)

	t.mu.Lock()
	hooks := maps.Clone(t.hooks)
	t.mu.Unlock()

	for _, set := range slices.Sorted(maps.Keys(hooks)) {
		if _, err := t.caller.CallHook(set, hooks[set], lua.LNumber(n)); err != nil {
			t.logger.Warn("tick hook failed",
				zap.String("set", set),
				zap.String("hook", hooks[set]),
				zap.Uint64("tick", n),
				zap.Error(err),
			)
		}
	}
}
