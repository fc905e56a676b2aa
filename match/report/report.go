// Package report derives the final applicant-by-project matrix and the
// preference-rank index from a terminal assignment. It is a read-only view
// and never feeds back into the engine.
package report

import (
	"strconv"

	"github.com/projmatch/projmatch/match"
)

// Marker is the cell value for an existing assignment edge.
const Marker = "*"

// Unmatched is the rank reported for an applicant without an edge.
const Unmatched = 0

// Row is the outcome for one applicant.
type Row struct {
	ApplicantID string `yaml:"applicant"`
	Score       int    `yaml:"score"`
	ProjectID   string `yaml:"project,omitempty"` // empty when unmatched
	Rank        int    `yaml:"rank"`              // 1-based preference position, 0 when unmatched
}

// Matched reports whether the applicant holds an assignment.
func (r Row) Matched() bool {
	return r.ProjectID != ""
}

// RankLabel renders the rank, using "unmatched" for applicants without an edge.
func (r Row) RankLabel() string {
	if !r.Matched() {
		return "unmatched"
	}
	return strconv.Itoa(r.Rank)
}

// ProjectIndex is the per-project preference index.
type ProjectIndex struct {
	ProjectID string      `yaml:"project"`
	Capacity  int         `yaml:"capacity"`
	Filled    int         `yaml:"filled"`
	FillRatio float64     `yaml:"fill_ratio"`
	ByRank    map[int]int `yaml:"by_rank"` // preference position -> admitted applicants
}

// Report holds the terminal assignment in a fixed enumeration order: applicants
// and projects both in load order.
type Report struct {
	ApplicantIDs []string
	ProjectIDs   []string
	Rows         []Row
	Projects     []ProjectIndex

	cells [][]bool
}

// Build derives a Report. Edges naming applicants or projects unknown to the
// store are ignored.
func Build(view match.AssignmentView, store *match.Store) *Report {
	applicants := store.Applicants()
	projects := store.Projects()

	r := &Report{
		ApplicantIDs: make([]string, len(applicants)),
		ProjectIDs:   make([]string, len(projects)),
		Rows:         make([]Row, len(applicants)),
		Projects:     make([]ProjectIndex, len(projects)),
		cells:        make([][]bool, len(applicants)),
	}
	col := make(map[string]int, len(projects))
	for j, p := range projects {
		r.ProjectIDs[j] = p.ID
		r.Projects[j] = ProjectIndex{ProjectID: p.ID, Capacity: p.Capacity, ByRank: make(map[int]int)}
		col[p.ID] = j
	}

	edges := view.ByApplicant()
	for i, a := range applicants {
		r.ApplicantIDs[i] = a.ID
		r.cells[i] = make([]bool, len(projects))
		r.Rows[i] = Row{ApplicantID: a.ID, Score: a.Score, Rank: Unmatched}

		e, ok := edges[a.ID]
		if !ok {
			continue
		}
		j, known := col[e.ProjectID]
		if !known {
			continue
		}
		r.cells[i][j] = true
		rank := a.Rank(e.ProjectID)
		r.Rows[i].ProjectID = e.ProjectID
		r.Rows[i].Rank = rank
		r.Projects[j].Filled++
		r.Projects[j].ByRank[rank]++
	}
	for j := range r.Projects {
		r.Projects[j].FillRatio = float64(r.Projects[j].Filled) / float64(r.Projects[j].Capacity)
	}
	return r
}

// Cell returns Marker when applicant i is assigned to project j, "" otherwise.
func (r *Report) Cell(i, j int) string {
	if r.cells[i][j] {
		return Marker
	}
	return ""
}

// Assigned reports whether the edge (applicantID, projectID) exists.
func (r *Report) Assigned(applicantID, projectID string) bool {
	for i, aid := range r.ApplicantIDs {
		if aid != applicantID {
			continue
		}
		for j, pid := range r.ProjectIDs {
			if pid == projectID {
				return r.cells[i][j]
			}
		}
	}
	return false
}

// Row returns the outcome for applicantID.
func (r *Report) Row(applicantID string) (Row, bool) {
	for _, row := range r.Rows {
		if row.ApplicantID == applicantID {
			return row, true
		}
	}
	return Row{}, false
}

// Summary aggregates the report.
type Summary struct {
	Applicants    int         `yaml:"applicants"`
	Matched       int         `yaml:"matched"`
	Unmatched     int         `yaml:"unmatched"`
	RankHistogram map[int]int `yaml:"rank_histogram"` // rank -> applicants; unmatched under key 0
	FullProjects  int         `yaml:"full_projects"`
	EmptyProjects int         `yaml:"empty_projects"`
}

// Summarize computes the aggregate counts.
func (r *Report) Summarize() Summary {
	s := Summary{Applicants: len(r.Rows), RankHistogram: make(map[int]int)}
	for _, row := range r.Rows {
		if row.Matched() {
			s.Matched++
		} else {
			s.Unmatched++
		}
		s.RankHistogram[row.Rank]++
	}
	for _, p := range r.Projects {
		switch {
		case p.Filled == 0:
			s.EmptyProjects++
		case p.Filled >= p.Capacity:
			s.FullProjects++
		}
	}
	return s
}
