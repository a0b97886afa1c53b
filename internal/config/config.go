// Package config provides Viper-based configuration loading for the script host.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RandomConfig selects the randomness source handed to scripts.
type RandomConfig struct {
	// Seed makes every draw reproducible when non-zero. Zero selects the
	// crypto/rand source.
	Seed uint64 `mapstructure:"seed"`
}

// DamageConfig holds modified-damage calculator settings.
type DamageConfig struct {
	// ArmorFile is an optional YAML file of custom armor values merged over
	// the built-in table.
	ArmorFile string `mapstructure:"armor_file"`
}

// ScriptingConfig holds Lua sandbox settings.
type ScriptingConfig struct {
	// ScriptDir is the directory whose *.lua files are loaded at startup.
	ScriptDir string `mapstructure:"script_dir"`
	// InstructionLimit caps Lua opcodes per VM; 0 uses the sandbox default.
	InstructionLimit int `mapstructure:"instruction_limit"`
	// EntryHook is the global Lua function the host calls after loading.
	EntryHook string `mapstructure:"entry_hook"`
	// TickHook is the global Lua function called every TickInterval.
	TickHook string `mapstructure:"tick_hook"`
	// TickInterval keeps the host running and ticking when positive. Zero
	// exits after the entry hook.
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Random    RandomConfig    `mapstructure:"random"`
	Damage    DamageConfig    `mapstructure:"damage"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	var errs []string
	if s.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit))
	}
	if s.EntryHook == "" {
		errs = append(errs, "scripting.entry_hook must not be empty")
	}
	if s.TickInterval < 0 {
		errs = append(errs, fmt.Sprintf("scripting.tick_interval must be >= 0, got %s", s.TickInterval))
	}
	if s.TickInterval > 0 && s.TickHook == "" {
		errs = append(errs, "scripting.tick_hook must not be empty when ticking")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with BLOCKKIT_ prefix
	v.SetEnvPrefix("BLOCKKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("random.seed", 0)

	v.SetDefault("damage.armor_file", "")

	v.SetDefault("scripting.script_dir", "scripts")
	v.SetDefault("scripting.instruction_limit", 0)
	v.SetDefault("scripting.entry_hook", "main")
	v.SetDefault("scripting.tick_hook", "on_tick")
	v.SetDefault("scripting.tick_interval", "0s")
}
