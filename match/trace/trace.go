package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every admit, evict, reject and exhausted decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// MatchTrace collects decision records during a matching run.
type MatchTrace struct {
	Level     TraceLevel
	Decisions []DecisionRecord
}

// NewMatchTrace creates a MatchTrace ready for recording.
func NewMatchTrace(level TraceLevel) *MatchTrace {
	return &MatchTrace{
		Level:     level,
		Decisions: make([]DecisionRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil.
func (mt *MatchTrace) Enabled() bool {
	return mt != nil && mt.Level == TraceLevelDecisions
}

// Record appends a decision record if tracing is enabled.
func (mt *MatchTrace) Record(record DecisionRecord) {
	if !mt.Enabled() {
		return
	}
	mt.Decisions = append(mt.Decisions, record)
}
