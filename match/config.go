package match

import "github.com/projmatch/projmatch/match/trace"

// Defaults applied by DefaultEngineConfig and the CLI run configuration.
const (
	DefaultMaxIterations = 1000
	DefaultSnapshotEvery = 100
)

// EngineConfig groups run parameters for NewEngine.
type EngineConfig struct {
	MaxIterations int // safety bound on iterations (must be > 0)
	SnapshotEvery int // observer cadence in iterations (0 = final snapshot only, < 0 invalid)

	Observer SnapshotObserver  // optional
	Trace    *trace.MatchTrace // optional; nil disables decision tracing
	Metrics  *Metrics          // optional; a private set is created when nil
}

// DefaultEngineConfig returns the configuration used by the CLI when no flags are given.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxIterations: DefaultMaxIterations,
		SnapshotEvery: DefaultSnapshotEvery,
	}
}
