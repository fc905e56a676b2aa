package match

// Edge is one applicant-to-project assignment.
type Edge struct {
	ApplicantID string `yaml:"applicant"`
	ProjectID   string `yaml:"project"`
	Score       int    `yaml:"score"`
}

// AssignmentView is a read-only copy of the assignment relation at one point
// of a run. Later engine iterations never change a view already handed out.
type AssignmentView struct {
	Iteration int      `yaml:"iteration"`
	Final     bool     `yaml:"final"`
	Edges     []Edge   `yaml:"edges"`           // project load order, then admission order
	Queue     []string `yaml:"queue,omitempty"` // available applicants, front first
}

// Len returns the number of edges.
func (v AssignmentView) Len() int {
	return len(v.Edges)
}

// ProjectOf returns the project applicantID is assigned to.
func (v AssignmentView) ProjectOf(applicantID string) (string, bool) {
	for _, e := range v.Edges {
		if e.ApplicantID == applicantID {
			return e.ProjectID, true
		}
	}
	return "", false
}

// Roster returns the applicants assigned to projectID in admission order.
func (v AssignmentView) Roster(projectID string) []string {
	var out []string
	for _, e := range v.Edges {
		if e.ProjectID == projectID {
			out = append(out, e.ApplicantID)
		}
	}
	return out
}

// ByApplicant indexes edges by applicant identifier.
func (v AssignmentView) ByApplicant() map[string]Edge {
	out := make(map[string]Edge, len(v.Edges))
	for _, e := range v.Edges {
		out[e.ApplicantID] = e
	}
	return out
}

// SnapshotObserver receives assignment snapshots during a run. It is invoked
// synchronously on the engine's goroutine and must not retain the engine.
type SnapshotObserver interface {
	OnSnapshot(view AssignmentView)
}

// ObserverFunc adapts a function to SnapshotObserver.
type ObserverFunc func(view AssignmentView)

func (f ObserverFunc) OnSnapshot(view AssignmentView) { f(view) }
