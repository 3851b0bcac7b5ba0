// Package config loads taskflow settings from files, environment and flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/joshharrison/taskflow/internal/sequence"
)

// EnvPrefix prefixes environment overrides, e.g. TASKFLOW_ENGINE_MAX_PARALLEL_TASKS.
const EnvPrefix = "TASKFLOW"

// Goal is the optimization goal reported with a schedule.
type Goal string

const (
	GoalMinimizeTime     Goal = "MINIMIZE_TIME"
	GoalMinimizeCost     Goal = "MINIMIZE_COST"
	GoalMaximizeQuality  Goal = "MAXIMIZE_QUALITY"
	GoalBalanceResources Goal = "BALANCE_RESOURCES"
	GoalMinimizeRisk     Goal = "MINIMIZE_RISK"
)

// Goals lists the accepted optimization goals.
func Goals() []Goal {
	return []Goal{GoalMinimizeTime, GoalMinimizeCost, GoalMaximizeQuality, GoalBalanceResources, GoalMinimizeRisk}
}

// Config represents the complete taskflow configuration
type Config struct {
	// Preset names a preset whose engine settings replace Engine
	Preset  string        `mapstructure:"preset"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig controls which analyses run and how the schedule is ordered
type EngineConfig struct {
	EnableCriticalPath         bool              `mapstructure:"enable_critical_path" json:"enableCriticalPath"`
	EnableParallelOptimization bool              `mapstructure:"enable_parallel_optimization" json:"enableParallelOptimization"`
	EnableResourceLeveling     bool              `mapstructure:"enable_resource_leveling" json:"enableResourceLeveling"`
	EnableRiskAnalysis         bool              `mapstructure:"enable_risk_analysis" json:"enableRiskAnalysis"`
	SchedulingStrategy         sequence.Strategy `mapstructure:"scheduling_strategy" json:"schedulingStrategy"`
	OptimizationGoal           Goal              `mapstructure:"optimization_goal" json:"optimizationGoal"`
	// MaxParallelTasks is advisory; wider parallel groups produce a recommendation
	MaxParallelTasks   int     `mapstructure:"max_parallel_tasks" json:"maxParallelTasks"`
	WorkingHoursPerDay float64 `mapstructure:"working_hours_per_day" json:"workingHoursPerDay"`
	WorkingDaysPerWeek int     `mapstructure:"working_days_per_week" json:"workingDaysPerWeek"`
	// BufferPercentage is the schedule contingency suggested on top of the critical path
	BufferPercentage float64 `mapstructure:"buffer_percentage" json:"bufferPercentage"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// JSON switches the formatter to JSON
	JSON bool `mapstructure:"json"`
}

// DefaultEngine returns the engine settings used when no preset is selected.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		EnableCriticalPath:         true,
		EnableParallelOptimization: true,
		EnableResourceLeveling:     true,
		EnableRiskAnalysis:         true,
		SchedulingStrategy:         sequence.CriticalPath,
		OptimizationGoal:           GoalMinimizeTime,
		MaxParallelTasks:           5,
		WorkingHoursPerDay:         8,
		WorkingDaysPerWeek:         5,
		BufferPercentage:           10,
	}
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Engine: DefaultEngine(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("preset", defaults.Preset)

	v.SetDefault("engine.enable_critical_path", defaults.Engine.EnableCriticalPath)
	v.SetDefault("engine.enable_parallel_optimization", defaults.Engine.EnableParallelOptimization)
	v.SetDefault("engine.enable_resource_leveling", defaults.Engine.EnableResourceLeveling)
	v.SetDefault("engine.enable_risk_analysis", defaults.Engine.EnableRiskAnalysis)
	v.SetDefault("engine.scheduling_strategy", string(defaults.Engine.SchedulingStrategy))
	v.SetDefault("engine.optimization_goal", string(defaults.Engine.OptimizationGoal))
	v.SetDefault("engine.max_parallel_tasks", defaults.Engine.MaxParallelTasks)
	v.SetDefault("engine.working_hours_per_day", defaults.Engine.WorkingHoursPerDay)
	v.SetDefault("engine.working_days_per_week", defaults.Engine.WorkingDaysPerWeek)
	v.SetDefault("engine.buffer_percentage", defaults.Engine.BufferPercentage)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.json", defaults.Logging.JSON)
}

// New returns a viper instance with defaults registered and environment
// overrides enabled. When file is empty the default config file is used if
// it exists.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		if _, err := os.Stat(ConfigFile()); err != nil {
			return v, nil
		}
		file = ConfigFile()
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskflow")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskflow"
	}
	return filepath.Join(home, ".config", "taskflow")
}

// ConfigFile returns the path to the default config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
