package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/projmatch/projmatch/match"
	"github.com/projmatch/projmatch/match/trace"
)

// RunConfig holds everything a matching run needs, loadable from a YAML file
// and overridable through PROJMATCH_* environment variables.
// Precedence: defaults < YAML < environment < explicitly set flags.
type RunConfig struct {
	ProjectsPath   string `yaml:"projects" env:"PROJMATCH_PROJECTS"`
	ApplicantsPath string `yaml:"applicants" env:"PROJMATCH_APPLICANTS"`

	MaxIterations int           `yaml:"max_iterations" env:"PROJMATCH_MAX_ITERATIONS"`
	SnapshotEvery int           `yaml:"snapshot_every" env:"PROJMATCH_SNAPSHOT_EVERY"`
	Timeout       time.Duration `yaml:"timeout" env:"PROJMATCH_TIMEOUT"` // 0 = no deadline
	Trace         string        `yaml:"trace" env:"PROJMATCH_TRACE"`

	MatrixOut    string `yaml:"matrix_out" env:"PROJMATCH_MATRIX_OUT"`
	RanksOut     string `yaml:"ranks_out" env:"PROJMATCH_RANKS_OUT"`
	ReportOut    string `yaml:"report_out" env:"PROJMATCH_REPORT_OUT"`
	SnapshotsOut string `yaml:"snapshots_out" env:"PROJMATCH_SNAPSHOTS_OUT"`
	MetricsOut   string `yaml:"metrics_out" env:"PROJMATCH_METRICS_OUT"`

	Locale string `yaml:"locale" env:"PROJMATCH_LOCALE"`
}

// DefaultRunConfig returns the built-in defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		ProjectsPath:   "projetos.txt",
		ApplicantsPath: "alunos.txt",
		MaxIterations:  match.DefaultMaxIterations,
		SnapshotEvery:  match.DefaultSnapshotEvery,
		Trace:          string(trace.TraceLevelNone),
		MatrixOut:      "matriz_emparelhamento_final.csv",
		Locale:         "en",
	}
}

// LoadRunConfig overlays the YAML file at path onto cfg.
// Uses strict field checking: typos must cause errors.
func LoadRunConfig(path string, cfg *RunConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading run config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parsing run config: %w", err)
	}
	return nil
}

// ApplyEnv overlays PROJMATCH_* environment variables onto cfg.
func ApplyEnv(cfg *RunConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks paths, ranges and names.
func (c *RunConfig) Validate() error {
	if c.ProjectsPath == "" {
		return fmt.Errorf("project records file not provided")
	}
	if c.ApplicantsPath == "" {
		return fmt.Errorf("applicant records file not provided")
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.SnapshotEvery < 0 {
		return fmt.Errorf("snapshot_every must not be negative, got %d", c.SnapshotEvery)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}
	return nil
}
