package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Rig.ArmPivotMinPx <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: rig.arm_pivot_min_px must be positive, got %v",
			ErrInvalidConfig, c.Rig.ArmPivotMinPx))
	}
	if c.Rig.Head2BaselineMax >= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: rig.head2_baseline_max must be negative, got %v",
			ErrInvalidConfig, c.Rig.Head2BaselineMax))
	}
	if c.Rig.HeadPivotName == "" {
		err = multierr.Append(err, fmt.Errorf("%w: rig.head_pivot_name is empty", ErrInvalidConfig))
	}
	if !logLevels[c.Logging.Level] {
		err = multierr.Append(err, fmt.Errorf("%w: unknown logging.level %q", ErrInvalidConfig, c.Logging.Level))
	}
	return err
}
