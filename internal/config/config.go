// Package config handles packlens configuration loading and management.
package config

import "github.com/Faultbox/packlens/internal/engine/rig"

// Config holds all tool settings.
type Config struct {
	Rig     RigConfig     `yaml:"rig"`
	Logging LoggingConfig `yaml:"logging"`
}

// RigConfig holds hierarchy reconstruction settings.
type RigConfig struct {
	ArmPivotMinPx    float64 `yaml:"arm_pivot_min_px"`   // Arm pivot height (px) from which y is absolute
	Head2BaselineMax float64 `yaml:"head2_baseline_max"` // Largest constant head2.ty treated as a pivot
	HeadPivotName    string  `yaml:"head_pivot_name"`    // Name for an empty villager head after the swap
	HierarchyFile    string  `yaml:"hierarchy_file"`     // Extracted hierarchy table (YAML)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	tuning := rig.DefaultTuning()
	return &Config{
		Rig: RigConfig{
			ArmPivotMinPx:    tuning.ArmPivotMinPixels,
			Head2BaselineMax: tuning.Head2BaselineMax,
			HeadPivotName:    tuning.HeadPivotName,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Tuning converts the rig section into semantics tuning.
func (c *Config) Tuning() rig.Tuning {
	return rig.Tuning{
		ArmPivotMinPixels: c.Rig.ArmPivotMinPx,
		Head2BaselineMax:  c.Rig.Head2BaselineMax,
		HeadPivotName:     c.Rig.HeadPivotName,
	}
}
