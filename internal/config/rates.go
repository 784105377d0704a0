package config

import (
	"fmt"
	"time"
)

// Rates holds server rate multipliers. Read-only once the server is running.
type Rates struct {
	DropRate            float64 `yaml:"drop_rate" toml:"drop_rate"`
	GoldRate            float64 `yaml:"gold_rate" toml:"gold_rate"`
	XPRate              float64 `yaml:"xp_rate" toml:"xp_rate"`
	ItemAutoDestroyTime int     `yaml:"item_auto_destroy_time" toml:"item_auto_destroy_time"` // seconds, 0 = never
}

// DefaultRates returns Rates with x1 multipliers and 60s auto-destroy.
func DefaultRates() Rates {
	return Rates{
		DropRate:            1.0,
		GoldRate:            1.0,
		XPRate:              1.0,
		ItemAutoDestroyTime: 60,
	}
}

// OverflowMode selects how damage above 65535 is fitted into the outcome field.
type OverflowMode string

const (
	OverflowClamp OverflowMode = "clamp"
	OverflowWrap  OverflowMode = "wrap"
)

// Combat holds combat timing constants and limits.
type Combat struct {
	TimeUnit        time.Duration `yaml:"time_unit" toml:"time_unit"`                 // one cooldown/cast-time unit
	TransformLock   time.Duration `yaml:"transform_lock" toml:"transform_lock"`       // no attacks right after transforming
	ComboIdleWindow time.Duration `yaml:"combo_idle_window" toml:"combo_idle_window"` // combo streak expiry
	OverflowMode    OverflowMode  `yaml:"overflow_mode" toml:"overflow_mode"`
	MaxGold         int64         `yaml:"max_gold" toml:"max_gold"`
	MaxDropsPerKill int           `yaml:"max_drops_per_kill" toml:"max_drops_per_kill"`
}

// DefaultCombat returns the standard combat timings.
func DefaultCombat() Combat {
	return Combat{
		TimeUnit:        100 * time.Millisecond,
		TransformLock:   3 * time.Second,
		ComboIdleWindow: 3 * time.Second,
		OverflowMode:    OverflowClamp,
		MaxGold:         1_000_000_000,
		MaxDropsPerKill: 4,
	}
}

// Units converts a count of time units into a duration.
func (c Combat) Units(n int16) time.Duration {
	return time.Duration(n) * c.TimeUnit
}

func (c Combat) validate() error {
	if c.TimeUnit <= 0 {
		return fmt.Errorf("combat.time_unit must be positive, got %v", c.TimeUnit)
	}
	if c.OverflowMode != OverflowClamp && c.OverflowMode != OverflowWrap {
		return fmt.Errorf("combat.overflow_mode must be %q or %q, got %q", OverflowClamp, OverflowWrap, c.OverflowMode)
	}
	if c.MaxGold <= 0 {
		return fmt.Errorf("combat.max_gold must be positive, got %d", c.MaxGold)
	}
	if c.MaxDropsPerKill <= 0 {
		return fmt.Errorf("combat.max_drops_per_kill must be positive, got %d", c.MaxDropsPerKill)
	}
	return nil
}
