// Package trace provides decision-trace recording for matching runs.
// This package has no dependencies on match/; it stores pure data types.
package trace

// DecisionKind names the outcome of one engine iteration.
type DecisionKind string

const (
	// KindAdmit: the proposer took a free seat.
	KindAdmit DecisionKind = "admit"
	// KindEvict: the proposer displaced the weakest incumbent of a full project.
	KindEvict DecisionKind = "evict"
	// KindReject: the project was full and the proposer did not beat its weakest incumbent.
	KindReject DecisionKind = "reject"
	// KindExhausted: the applicant had no eligible project left to propose to.
	KindExhausted DecisionKind = "exhausted"
)

// DecisionRecord captures a single engine iteration.
type DecisionRecord struct {
	Iteration   int          `yaml:"iteration"`
	Kind        DecisionKind `yaml:"kind"`
	ApplicantID string       `yaml:"applicant"`
	ProjectID   string       `yaml:"project,omitempty"` // empty for KindExhausted
	Score       int          `yaml:"score"`
	Displaced   string       `yaml:"displaced,omitempty"` // evicted incumbent for KindEvict
	Requeued    bool         `yaml:"requeued,omitempty"`  // rejected proposer or evictee went back to the queue
}
