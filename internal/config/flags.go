package config

import "github.com/spf13/pflag"

var (
	flagConfig    string
	flagDebug     bool
	flagHierarchy string
	flagArmPivot  float64
)

// BindFlags registers the config flags on fs and resets their values. Call
// this before fs is parsed. Each call binds a fresh flag set, so a later
// command never sees values parsed for an earlier one.
func BindFlags(fs *pflag.FlagSet) {
	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)
	flags.StringVar(&flagConfig, "config", "", "Path to config file")
	flags.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	flags.StringVar(&flagHierarchy, "hierarchy", "", "Extracted hierarchy table (YAML)")
	flags.Float64Var(&flagArmPivot, "arm-pivot-min-px", 0, "Arm pivot height (px) from which y is absolute")
	fs.AddFlagSet(flags)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagHierarchy != "" {
		cfg.Rig.HierarchyFile = flagHierarchy
	}
	if flagArmPivot > 0 {
		cfg.Rig.ArmPivotMinPx = flagArmPivot
	}
}
