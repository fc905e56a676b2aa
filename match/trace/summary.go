package trace

// TraceSummary aggregates statistics from a MatchTrace.
type TraceSummary struct {
	TotalDecisions int
	ByKind         map[DecisionKind]int
	// Proposals counts admit, evict and reject decisions per project.
	Proposals map[string]int
	// Evictions counts evictions suffered per project.
	Evictions map[string]int
	// Displaced lists evicted applicants in eviction order.
	Displaced []string
}

// Summarize computes aggregate statistics from a MatchTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(mt *MatchTrace) *TraceSummary {
	summary := &TraceSummary{
		ByKind:    make(map[DecisionKind]int),
		Proposals: make(map[string]int),
		Evictions: make(map[string]int),
	}
	if mt == nil {
		return summary
	}

	summary.TotalDecisions = len(mt.Decisions)
	for _, d := range mt.Decisions {
		summary.ByKind[d.Kind]++
		if d.Kind == KindExhausted {
			continue
		}
		summary.Proposals[d.ProjectID]++
		if d.Kind == KindEvict {
			summary.Evictions[d.ProjectID]++
			summary.Displaced = append(summary.Displaced, d.Displaced)
		}
	}
	return summary
}
