// Package engine runs the full scheduling pipeline over a task set.
//
// An Engine holds only configuration, so one instance may serve concurrent
// calls. Every call builds its own graph and analysis.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joshharrison/taskflow/internal/config"
	"github.com/joshharrison/taskflow/internal/cpm"
	"github.com/joshharrison/taskflow/internal/graph"
	"github.com/joshharrison/taskflow/internal/logging"
	"github.com/joshharrison/taskflow/internal/parallel"
	"github.com/joshharrison/taskflow/internal/preset"
	"github.com/joshharrison/taskflow/internal/recommend"
	"github.com/joshharrison/taskflow/internal/resource"
	"github.com/joshharrison/taskflow/internal/risk"
	"github.com/joshharrison/taskflow/internal/sequence"
	"github.com/joshharrison/taskflow/internal/task"
)

// Engine orchestrates task sets.
type Engine struct {
	cfg    config.EngineConfig
	preset string
	log    logging.Logger
	now    func() time.Time
	obs    Observer

	mu    sync.Mutex
	stats Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock sets the time source used for dates and metadata.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Observer is notified after every Orchestrate call. Stats is zero when err
// is non-nil.
type Observer interface {
	ObserveRun(err error, elapsed time.Duration, stats Stats)
}

// WithObserver registers an observer for orchestration runs.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.obs = o
	}
}

// New creates an engine with the given settings.
func New(cfg config.EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		log: logging.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateEngine creates an engine from a named preset with overrides applied.
// An empty name starts from the default settings.
func CreateEngine(name string, overrides *config.Overrides, opts ...Option) (*Engine, error) {
	base := config.DefaultEngine()
	if name != "" {
		p, err := preset.Lookup(name)
		if err != nil {
			return nil, err
		}
		base = p.Engine
		name = string(p.Name)
	}

	cfg := overrides.Apply(base)
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, config.ValidationErrors(errs)
	}

	e := New(cfg, opts...)
	e.preset = name
	return e, nil
}

// Config returns the engine settings.
func (e *Engine) Config() config.EngineConfig {
	return e.cfg
}

// Preset returns the preset the engine was created from, if any.
func (e *Engine) Preset() string {
	return e.preset
}

// Orchestrate validates tasks, computes their schedule and runs every
// enabled analysis. The input slice is not modified.
func (e *Engine) Orchestrate(ctx context.Context, tasks []task.Task) (*Result, error) {
	began := time.Now()
	res, err := e.orchestrate(ctx, tasks)
	if e.obs != nil {
		var stats Stats
		if err == nil {
			stats = StatsFor(res)
		}
		e.obs.ObserveRun(err, time.Since(began), stats)
	}
	return res, err
}

func (e *Engine) orchestrate(ctx context.Context, tasks []task.Task) (*Result, error) {
	id := uuid.NewString()
	log := e.log.With("run", id)
	log.Debug("orchestration started", "tasks", len(tasks), "strategy", e.cfg.SchedulingStrategy)

	analysis, err := e.analyze(ctx, tasks, log)
	if err != nil {
		return nil, err
	}
	tasks = task.CloneAll(tasks)

	res := &Result{
		Tasks:               sequence.Order(e.cfg.SchedulingStrategy, tasks, analysis),
		CriticalPath:        []string{},
		TotalDuration:       analysis.TotalDuration,
		ParallelGroups:      [][]string{},
		ResourceUtilization: []resource.Utilization{},
		RiskAssessment:      risk.Assessment{RiskFactors: []risk.Factor{}, MitigationSuggestions: []string{}, ContingencyPlans: []risk.ContingencyPlan{}},
		Schedule:            analysis.Ordered(),
		Metadata: Metadata{
			ID:        id,
			Strategy:  e.cfg.SchedulingStrategy,
			Goal:      e.cfg.OptimizationGoal,
			Preset:    e.preset,
			Timestamp: e.now(),
			Version:   Version,
		},
	}

	if e.cfg.EnableCriticalPath {
		res.CriticalPath = analysis.CriticalPath
	}
	if e.cfg.EnableParallelOptimization {
		if groups := parallel.Group(tasks, analysis); groups != nil {
			res.ParallelGroups = groups
		}
	}
	utilization := resource.Analyze(tasks)
	if e.cfg.EnableResourceLeveling {
		res.ResourceUtilization = utilization
	}
	if e.cfg.EnableRiskAnalysis {
		res.RiskAssessment = risk.Assess(risk.Input{
			Tasks:        tasks,
			CriticalPath: analysis.CriticalPath,
			Utilization:  utilization,
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Recommendations = recommend.Generate(recommend.Input{
		Tasks:          tasks,
		CriticalPath:   res.CriticalPath,
		TotalDuration:  res.TotalDuration,
		ParallelGroups: res.ParallelGroups,
		Utilization:    res.ResourceUtilization,
		Risk:           res.RiskAssessment,
		Config:         e.cfg,
	})

	stats := StatsFor(res)
	e.mu.Lock()
	e.stats = stats
	e.mu.Unlock()

	log.Debug("orchestration finished",
		"duration", res.TotalDuration,
		"critical", len(res.CriticalPath),
		"groups", len(res.ParallelGroups),
		"risk", res.RiskAssessment.OverallRiskLevel,
	)
	return res, nil
}

// UpdateTaskTimeInfo returns copies of tasks with computed TimeInfo. Dates
// are hour offsets from the engine clock.
func (e *Engine) UpdateTaskTimeInfo(ctx context.Context, tasks []task.Task) ([]task.Task, error) {
	analysis, err := e.analyze(ctx, tasks, e.log)
	if err != nil {
		return nil, err
	}

	start := e.now()
	at := func(hours float64) time.Time {
		return start.Add(time.Duration(hours * float64(time.Hour)))
	}

	out := task.CloneAll(tasks)
	for i := range out {
		n, ok := analysis.Node(out[i].ID)
		if !ok {
			continue
		}
		info := &task.TimeInfo{}
		if out[i].TimeInfo != nil {
			info.EstimatedDuration = out[i].TimeInfo.EstimatedDuration
		}
		info.EarliestStart = at(n.ES)
		info.EarliestFinish = at(n.EF)
		info.LatestStart = at(n.LS)
		info.LatestFinish = at(n.LF)
		info.TotalFloat = n.TotalFloat
		info.FreeFloat = n.FreeFloat
		info.IsCritical = n.IsCritical
		out[i].TimeInfo = info
	}
	return out, nil
}

// Stats returns the stats of the most recent successful Orchestrate call.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) analyze(ctx context.Context, tasks []task.Task, log logging.Logger) (*cpm.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := task.Validate(tasks); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}

	g, err := graph.Build(tasks, log)
	if err != nil {
		return nil, fmt.Errorf("build dependency graph: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := cpm.Analyze(g)
	log.Debug("critical path analyzed",
		"tasks", g.Len(),
		"edges", len(g.Edges),
		"skipped", len(g.Skipped),
		"duration", analysis.TotalDuration,
	)
	return analysis, nil
}
