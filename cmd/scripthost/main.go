// Package main runs a set of sandboxed Lua scripts against the engine
// modules. It calls their entry hook once, then keeps calling the tick hook
// until interrupted when a tick interval is configured.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/blockkit/internal/config"
	"github.com/cory-johannsen/blockkit/pkg/damage"
	"github.com/cory-johannsen/blockkit/internal/host"
	"github.com/cory-johannsen/blockkit/internal/observability"
	"github.com/cory-johannsen/blockkit/pkg/random"
	"github.com/cory-johannsen/blockkit/internal/scripting"
)

const scriptSet = "main"

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scriptDir := flag.String("scripts", "", "override scripting.script_dir")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *scriptDir != "" {
		cfg.Scripting.ScriptDir = *scriptDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src random.Source
	if cfg.Random.Seed != 0 {
		src = random.NewSeededSource(cfg.Random.Seed)
	} else {
		src = random.NewCryptoSource()
	}
	picker := random.NewPicker(src, observability.Component(logger, "random"))

	var overrides map[string]damage.ArmorValue
	if cfg.Damage.ArmorFile != "" {
		overrides, err = damage.LoadArmorValues(cfg.Damage.ArmorFile)
		if err != nil {
			logger.Fatal("loading armor overrides", zap.Error(err))
		}
		logger.Info("armor overrides loaded",
			zap.String("path", cfg.Damage.ArmorFile),
			zap.Int("count", len(overrides)),
		)
	}
	calc := damage.NewCalculator(overrides, damage.WithLogger(observability.Component(logger, "damage")))

	mgr := scripting.NewManager(picker, calc, observability.Component(logger, "scripting"))
	defer mgr.Close()

	if err := mgr.Load(scriptSet, cfg.Scripting.ScriptDir, cfg.Scripting.InstructionLimit); err != nil {
		logger.Fatal("loading scripts", zap.Error(err))
	}
	logger.Info("scripts loaded",
		zap.String("dir", cfg.Scripting.ScriptDir),
		zap.Duration("elapsed", time.Since(start)),
	)

	ret, err := mgr.CallHook(scriptSet, cfg.Scripting.EntryHook)
	if err != nil {
		logger.Fatal("calling entry hook", zap.Error(err))
	}
	logger.Info("entry hook returned",
		zap.String("hook", cfg.Scripting.EntryHook),
		zap.String("type", ret.Type().String()),
		zap.String("value", lua.LVAsString(ret)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if cfg.Scripting.TickInterval <= 0 {
		return
	}

	ticker := host.NewTicker(cfg.Scripting.TickInterval, mgr, observability.Component(logger, "ticker"))
	ticker.Register(scriptSet, cfg.Scripting.TickHook)

	lc := host.NewLifecycle(observability.Component(logger, "lifecycle"))
	lc.Add("ticker", ticker)
	if err := lc.Run(context.Background()); err != nil {
		logger.Error("host stopped with error", zap.Error(err))
	}
	logger.Info("ticks fired", zap.Uint64("ticks", ticker.Tick()))
}
