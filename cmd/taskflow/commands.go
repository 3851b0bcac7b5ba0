package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/joshharrison/taskflow/internal/bd"
	"github.com/joshharrison/taskflow/internal/engine"
	"github.com/joshharrison/taskflow/internal/loader"
	"github.com/joshharrison/taskflow/internal/metrics"
	"github.com/joshharrison/taskflow/internal/preset"
	"github.com/joshharrison/taskflow/internal/reporter"
	"github.com/joshharrison/taskflow/internal/task"
)

// source is a named task set.
type source struct {
	name  string
	tasks []task.Task
}

// readSources loads every file in paths, or the open Beads issues when
// --beads is set. "-" reads JSON from stdin.
func (a *app) readSources(ctx context.Context, cmd *cobra.Command, paths []string) ([]source, error) {
	var sources []source
	switch {
	case flagBeads:
		issues, err := bd.NewClient("", flagDB).OpenIssues(ctx)
		if err != nil {
			return nil, fmt.Errorf("list beads issues: %w", err)
		}
		sources = append(sources, source{name: "beads", tasks: bd.ToTasks(issues)})
	case len(paths) == 0:
		return nil, fmt.Errorf("no task files given (pass files or --beads)")
	default:
		for _, p := range paths {
			var (
				tasks []task.Task
				err   error
			)
			if p == "-" {
				var data []byte
				data, err = io.ReadAll(cmd.InOrStdin())
				if err == nil {
					tasks, err = loader.Parse(data, loader.FormatJSON)
				}
			} else {
				tasks, err = loader.Load(p)
			}
			if err != nil {
				return nil, fmt.Errorf("load tasks: %w", err)
			}
			sources = append(sources, source{name: p, tasks: tasks})
		}
	}

	if flagFilter != "" {
		for i := range sources {
			filtered, err := task.Filter(sources[i].tasks, flagFilter)
			if err != nil {
				return nil, fmt.Errorf("apply filter: %w", err)
			}
			sources[i].tasks = filtered
		}
	}
	for _, s := range sources {
		if len(s.tasks) == 0 {
			return nil, fmt.Errorf("%s: no tasks found", s.name)
		}
	}
	return sources, nil
}

// orchestrateAll runs every source through one engine concurrently. Results
// keep the order of sources.
func orchestrateAll(ctx context.Context, e *engine.Engine, sources []source) ([]*engine.Result, error) {
	results := make([]*engine.Result, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range sources {
		g.Go(func() error {
			res, err := e.Orchestrate(ctx, s.tasks)
			if err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// single loads exactly one source and orchestrates it.
func (a *app) single(cmd *cobra.Command, args []string) (*engine.Engine, *engine.Result, source, error) {
	sources, err := a.readSources(cmd.Context(), cmd, args)
	if err != nil {
		return nil, nil, source{}, err
	}
	if len(sources) != 1 {
		return nil, nil, source{}, fmt.Errorf("expected one task file, got %d", len(sources))
	}
	e, err := a.newEngine(cmd)
	if err != nil {
		return nil, nil, source{}, err
	}
	res, err := e.Orchestrate(cmd.Context(), sources[0].tasks)
	if err != nil {
		return nil, nil, source{}, err
	}
	return e, res, sources[0], nil
}

func outputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func planCmd(a *app) *cobra.Command {
	var flagOutput, flagMetrics string

	cmd := &cobra.Command{
		Use:   "plan [files...]",
		Short: "Orchestrate one or more task files and print the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := a.readSources(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}
			var opts []engine.Option
			var rec *metrics.Recorder
			if flagMetrics != "" {
				rec = metrics.New()
				opts = append(opts, engine.WithObserver(rec))
			}
			e, err := a.newEngine(cmd, opts...)
			if err != nil {
				return err
			}
			results, err := orchestrateAll(cmd.Context(), e, sources)
			if rec != nil {
				if werr := rec.WriteFile(flagMetrics); werr != nil {
					a.log.Warn("could not write metrics", "path", flagMetrics, "err", werr)
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagOutput != "" {
				var v any = results
				if len(results) == 1 {
					v = results[0]
				}
				data, err := json.MarshalIndent(v, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(flagOutput, data, 0644); err != nil {
					return err
				}
				a.log.Info("schedule written", "path", flagOutput)
				return nil
			}
			if flagJSON {
				if len(results) == 1 {
					return outputJSON(out, results[0])
				}
				return outputJSON(out, results)
			}
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				reporter.New(res, sources[i].name).PrintPlan(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "Save the result as JSON to file")
	cmd.Flags().StringVar(&flagMetrics, "metrics-file", "", "Write run metrics in Prometheus text format to file")
	return cmd
}

func timeInfoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeinfo <file>",
		Short: "Print tasks with computed dates, starting now",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := a.readSources(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}
			e, err := a.newEngine(cmd)
			if err != nil {
				return err
			}
			var all []task.Task
			for _, s := range sources {
				tasks, err := e.UpdateTaskTimeInfo(cmd.Context(), s.tasks)
				if err != nil {
					return fmt.Errorf("%s: %w", s.name, err)
				}
				all = append(all, tasks...)
			}
			if flagJSON {
				return outputJSON(cmd.OutOrStdout(), all)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(map[string][]task.Task{"tasks": all}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	return cmd
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Print orchestration statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, _, err := a.single(cmd, args)
			if err != nil {
				return err
			}
			if flagJSON {
				return outputJSON(cmd.OutOrStdout(), e.Stats())
			}
			reporter.PrintStats(cmd.OutOrStdout(), e.Stats())
			return nil
		},
	}
}

func vizCmd(a *app) *cobra.Command {
	var (
		flagFormat string
		flagWidth  int
	)

	cmd := &cobra.Command{
		Use:   "viz <file>",
		Short: "Visualize the schedule (ascii, gantt or dot)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, src, err := a.single(cmd, args)
			if err != nil {
				return err
			}
			rpt := reporter.New(res, src.name)
			out := cmd.OutOrStdout()
			switch flagFormat {
			case "ascii":
				rpt.PrintASCII(out)
			case "gantt":
				rpt.PrintGantt(out, flagWidth)
			case "dot":
				rpt.WriteDOT(out)
			default:
				return fmt.Errorf("unknown format %q (use ascii, gantt or dot)", flagFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "gantt", "Output format: ascii, gantt, dot")
	cmd.Flags().IntVar(&flagWidth, "width", reporter.DefaultGanttWidth, "Gantt chart width in columns")
	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List presets or show one preset's settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				p, err := preset.Lookup(args[0])
				if err != nil {
					return err
				}
				return outputJSON(out, p)
			}
			if flagJSON {
				return outputJSON(out, preset.All())
			}
			reporter.PrintPresets(out, preset.All(), "")
			return nil
		},
	}
}

func recommendPresetCmd() *cobra.Command {
	var c preset.Characteristics

	cmd := &cobra.Command{
		Use:   "recommend-preset",
		Short: "Suggest a preset from project characteristics",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := preset.Recommend(c)
			out := cmd.OutOrStdout()
			if flagJSON {
				p, err := preset.Lookup(string(name))
				if err != nil {
					return err
				}
				return outputJSON(out, p)
			}
			reporter.PrintPresets(out, preset.All(), name)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&c.TeamSize, "team-size", 0, "Number of people on the project")
	f.Float64Var(&c.ProjectDuration, "duration", 0, "Expected project duration in days")
	f.Float64Var(&c.UncertaintyLevel, "uncertainty", 0, "Uncertainty, 1-10")
	f.Float64Var(&c.QualityRequirement, "quality", 0, "Quality requirement, 1-10")
	f.Float64Var(&c.TimeConstraint, "time-constraint", 0, "Time pressure, 1-10")
	f.Float64Var(&c.BudgetConstraint, "budget-constraint", 0, "Budget pressure, 1-10")
	f.BoolVar(&c.IsAgile, "agile", false, "Team works in sprints")
	f.BoolVar(&c.IsResearch, "research", false, "Exploratory research project")
	f.BoolVar(&c.IsEnterprise, "enterprise", false, "Enterprise-scale project")
	return cmd
}

func importBeadsCmd(a *app) *cobra.Command {
	var (
		flagOutput string
		flagBdBin  string
	)

	cmd := &cobra.Command{
		Use:   "import-beads",
		Short: "Export open Beads issues as a task file",
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := bd.NewClient(flagBdBin, flagDB).OpenIssues(cmd.Context())
			if err != nil {
				return fmt.Errorf("list beads issues: %w", err)
			}
			tasks := bd.ToTasks(issues)
			a.log.Info("imported beads issues", "count", len(tasks))

			w := cmd.OutOrStdout()
			if flagOutput != "" {
				f, err := os.Create(flagOutput)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if flagOutput != "" && loader.FormatOf(flagOutput) == loader.FormatYAML {
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(map[string][]task.Task{"tasks": tasks}); err != nil {
					return err
				}
				return enc.Close()
			}
			return outputJSON(w, map[string][]task.Task{"tasks": tasks})
		},
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "Write to file (.json or .yaml)")
	cmd.Flags().StringVar(&flagBdBin, "bd-bin", "bd", "Path to the bd binary")
	return cmd
}
