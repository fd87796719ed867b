// rigtool inspects entity rig documents and runs hierarchy reconstruction on them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/packlens/internal/config"
	"github.com/Faultbox/packlens/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the loaded configuration into subcommands.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "rigtool",
		Short: "Entity rig hierarchy and transform-semantics utility",
		Long: `rigtool reads rig documents (JSON bone trees with animation layers),
rebuilds the vanilla bone hierarchy and tags bones whose animated
translations are absolute pivot coordinates.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	config.BindFlags(rootCmd.PersistentFlags())

	archetypeCmd := &cobra.Command{
		Use:   "archetype <rig.json>",
		Short: "Print the detected rig archetype",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runArchetype,
	}

	refsCmd := &cobra.Command{
		Use:   "refs <rig.json>",
		Short: "Print animated bones and the bones their expressions read",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runRefs,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect <rig.json>",
		Short: "Rebuild the hierarchy and print the tree with its reparent report",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runInspect,
	}
	inspectCmd.Flags().String("entity", "", "Entity id for hierarchy lookup (default: document entity)")

	dumpCmd := &cobra.Command{
		Use:   "dump <rig.json>",
		Short: "Rebuild the hierarchy and write the processed tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runDump,
	}
	dumpCmd.Flags().String("entity", "", "Entity id for hierarchy lookup (default: document entity)")
	dumpCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  a.runConfig,
	}
	configCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	configCmd.Flags().Bool("save", false, "Write to the user config directory")

	rootCmd.AddCommand(archetypeCmd, refsCmd, inspectCmd, dumpCmd, configCmd)
	return rootCmd
}
