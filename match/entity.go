package match

import "slices"

// Project is a capacity-bounded placement with a minimum qualification score.
// Projects are immutable once added to a Store.
type Project struct {
	ID       string
	Capacity int
	MinScore int
}

// Admits reports whether score meets the project's minimum.
func (p *Project) Admits(score int) bool {
	return score >= p.MinScore
}

// Applicant is a candidate with a qualification score and a ranked preference
// list (most preferred first). The proposal history is mutated only by the
// Engine; it grows monotonically and never exceeds len(Preferences).
type Applicant struct {
	ID          string
	Score       int
	Preferences []string

	proposed []string
}

// NewApplicant creates an applicant with an empty proposal history.
// The preference slice is copied.
func NewApplicant(id string, score int, prefs []string) *Applicant {
	return &Applicant{ID: id, Score: score, Preferences: slices.Clone(prefs)}
}

// Proposed returns a copy of the projects proposed to so far, in proposal order.
func (a *Applicant) Proposed() []string {
	return slices.Clone(a.proposed)
}

// HasProposed reports whether a has already proposed to projectID.
func (a *Applicant) HasProposed(projectID string) bool {
	return slices.Contains(a.proposed, projectID)
}

// CanPropose reports whether a still has preferences it has not proposed to.
func (a *Applicant) CanPropose() bool {
	return len(a.proposed) < len(a.Preferences)
}

// Rank returns the 1-based position of projectID in a's preference list,
// or 0 if it is not listed.
func (a *Applicant) Rank(projectID string) int {
	return slices.Index(a.Preferences, projectID) + 1
}

// markProposed is idempotent per project.
func (a *Applicant) markProposed(projectID string) {
	if a.HasProposed(projectID) {
		return
	}
	a.proposed = append(a.proposed, projectID)
}
