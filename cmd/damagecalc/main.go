// Package main computes modified damage for a target described in YAML.
//
// Usage:
//
//	damagecalc -snapshot target.yaml -base 20 -cause entityAttack
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/blockkit/internal/config"
	"github.com/cory-johannsen/blockkit/pkg/damage"
	"github.com/cory-johannsen/blockkit/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	snapshotPath := flag.String("snapshot", "", "path to a YAML target snapshot (empty means unarmored)")
	base := flag.Float64("base", 0, "incoming damage")
	causeName := flag.String("cause", "", "damage cause, e.g. fall or entityAttack")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	cause, err := damage.ParseCause(*causeName)
	if err != nil {
		logger.Fatal("parsing cause", zap.Error(err))
	}

	var snap damage.Snapshot
	if *snapshotPath != "" {
		data, err := os.ReadFile(*snapshotPath)
		if err != nil {
			logger.Fatal("reading snapshot", zap.String("path", *snapshotPath), zap.Error(err))
		}
		if err := yaml.Unmarshal(data, &snap); err != nil {
			logger.Fatal("parsing snapshot", zap.String("path", *snapshotPath), zap.Error(err))
		}
	}

	var overrides map[string]damage.ArmorValue
	if cfg.Damage.ArmorFile != "" {
		overrides, err = damage.LoadArmorValues(cfg.Damage.ArmorFile)
		if err != nil {
			logger.Fatal("loading armor overrides", zap.Error(err))
		}
	}
	calc := damage.NewCalculator(overrides, damage.WithLogger(observability.Component(logger, "damage")))

	fmt.Printf("%g\n", calc.Calculate(*base, snap, cause))
}
