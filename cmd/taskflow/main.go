package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joshharrison/taskflow/internal/config"
	"github.com/joshharrison/taskflow/internal/engine"
	"github.com/joshharrison/taskflow/internal/logging"
	"github.com/joshharrison/taskflow/internal/sequence"
)

var (
	flagConfig      string
	flagPreset      string
	flagStrategy    string
	flagMaxParallel int
	flagJSON        bool
	flagLogLevel    string
	flagLogJSON     bool
	flagBeads       bool
	flagDB          string
	flagFilter      string
)

// app carries what PersistentPreRunE sets up for subcommands.
type app struct {
	cfg *config.Config
	log logging.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "Schedule task graphs with the critical path method",
		Long: `Taskflow reads task sets from JSON or YAML files (or a Beads database),
computes earliest and latest timing for every task, finds the critical path
and parallel groups, checks resource load and scores schedule risk.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/taskflow/config.yaml)")
	pf.StringVar(&flagPreset, "preset", "", "Engine preset (see 'taskflow presets')")
	pf.StringVar(&flagStrategy, "strategy", "", "Scheduling strategy: CRITICAL_PATH, PRIORITY_FIRST, SHORTEST_FIRST, LONGEST_FIRST, EARLY_START")
	pf.IntVar(&flagMaxParallel, "max-parallel", 0, "Advisory limit on concurrently running tasks")
	pf.BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagLogJSON, "log-json", false, "Log as JSON")
	pf.BoolVar(&flagBeads, "beads", false, "Read open issues from the Beads database instead of files")
	pf.StringVar(&flagDB, "db", "", "Beads database path")
	pf.StringVar(&flagFilter, "filter", "", "Filter tasks (e.g., priority>=high, type=feature)")

	rootCmd.AddCommand(planCmd(a))
	rootCmd.AddCommand(timeInfoCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(vizCmd(a))
	rootCmd.AddCommand(presetsCmd())
	rootCmd.AddCommand(recommendPresetCmd())
	rootCmd.AddCommand(importBeadsCmd(a))

	return rootCmd
}

// setup loads configuration and builds the logger. Flags take precedence
// over TASKFLOW_* variables, which take precedence over the config file.
func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.New(flagConfig)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	flags := cmd.Flags()
	for key, name := range map[string]string{
		"preset":        "preset",
		"logging.level": "log-level",
		"logging.json":  "log-json",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lc := logging.DefaultConfig()
	lc.Level = logging.Level(cfg.Logging.Level)
	lc.JSON = cfg.Logging.JSON
	lc.Output = cmd.ErrOrStderr()
	a.log = logging.New(lc)
	return nil
}

// overrides collects engine settings given explicitly on the command line.
func overrides(cmd *cobra.Command) *config.Overrides {
	o := &config.Overrides{}
	if cmd.Flags().Changed("strategy") {
		s := sequence.Strategy(flagStrategy)
		o.SchedulingStrategy = &s
	}
	if cmd.Flags().Changed("max-parallel") {
		n := flagMaxParallel
		o.MaxParallelTasks = &n
	}
	return o
}

// newEngine builds the engine from the preset when one is selected, otherwise
// from the loaded engine config. Command line overrides win in both cases.
func (a *app) newEngine(cmd *cobra.Command, extra ...engine.Option) (*engine.Engine, error) {
	opts := append([]engine.Option{engine.WithLogger(a.log)}, extra...)
	if a.cfg.Preset != "" {
		return engine.CreateEngine(a.cfg.Preset, overrides(cmd), opts...)
	}

	cfg := overrides(cmd).Apply(a.cfg.Engine)
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, config.ValidationErrors(errs)
	}
	return engine.New(cfg, opts...), nil
}
