package match

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/projmatch/projmatch/match/input"
)

// Store holds applicant and project records keyed by identifier and keeps the
// order in which they were loaded. It has no behavior beyond storage and lookup.
type Store struct {
	projects       map[string]*Project
	projectOrder   []string
	applicants     map[string]*Applicant
	applicantOrder []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		projects:   make(map[string]*Project),
		applicants: make(map[string]*Applicant),
	}
}

// LoadReport lists what a bulk load accepted and what it skipped.
// Skipped records are diagnostics, not failures.
type LoadReport struct {
	Projects   int
	Applicants int
	Warnings   []error
}

// AddProject stores p. Duplicate or empty identifiers and non-positive
// capacities are rejected with a *MalformedRecordError.
func (s *Store) AddProject(p Project) error {
	switch {
	case p.ID == "":
		return &MalformedRecordError{Text: fmt.Sprint(p), Reason: "empty project identifier"}
	case p.Capacity <= 0:
		return &MalformedRecordError{Text: p.ID, Reason: fmt.Sprintf("capacity must be positive, got %d", p.Capacity)}
	}
	if _, exists := s.projects[p.ID]; exists {
		return &MalformedRecordError{Text: p.ID, Reason: "duplicate project identifier"}
	}
	s.projects[p.ID] = &p
	s.projectOrder = append(s.projectOrder, p.ID)
	return nil
}

// AddApplicant stores a. Duplicate or empty identifiers are rejected with a
// *MalformedRecordError.
func (s *Store) AddApplicant(a *Applicant) error {
	if a == nil || a.ID == "" {
		return &MalformedRecordError{Reason: "empty applicant identifier"}
	}
	if _, exists := s.applicants[a.ID]; exists {
		return &MalformedRecordError{Text: a.ID, Reason: "duplicate applicant identifier"}
	}
	s.applicants[a.ID] = a
	s.applicantOrder = append(s.applicantOrder, a.ID)
	return nil
}

// Project looks up a project by identifier.
func (s *Store) Project(id string) (*Project, bool) {
	p, ok := s.projects[id]
	return p, ok
}

// Applicant looks up an applicant by identifier.
func (s *Store) Applicant(id string) (*Applicant, bool) {
	a, ok := s.applicants[id]
	return a, ok
}

// Projects returns all projects in load order.
func (s *Store) Projects() []*Project {
	out := make([]*Project, 0, len(s.projectOrder))
	for _, id := range s.projectOrder {
		out = append(out, s.projects[id])
	}
	return out
}

// Applicants returns all applicants in load order.
func (s *Store) Applicants() []*Applicant {
	out := make([]*Applicant, 0, len(s.applicantOrder))
	for _, id := range s.applicantOrder {
		out = append(out, s.applicants[id])
	}
	return out
}

// UnknownReferences lists every preference entry that names a project not held
// by the store, in applicant load order.
func (s *Store) UnknownReferences() []*UnknownReferenceError {
	var out []*UnknownReferenceError
	for _, a := range s.Applicants() {
		for _, pid := range a.Preferences {
			if _, ok := s.projects[pid]; !ok {
				out = append(out, &UnknownReferenceError{ApplicantID: a.ID, ProjectID: pid})
			}
		}
	}
	return out
}

// Load bulk-loads projects then applicants. Records that fail to parse or
// collide with an existing identifier are skipped; each one is logged and
// returned in LoadReport.Warnings. Over-long preference lists and unknown
// project references are kept but also reported there. Only a read failure
// is returned as error.
func (s *Store) Load(applicants, projects io.Reader) (*LoadReport, error) {
	return s.load("applicants", applicants, "projects", projects)
}

// LoadFiles opens both record files and calls Load.
func (s *Store) LoadFiles(applicantsPath, projectsPath string) (*LoadReport, error) {
	pf, err := os.Open(projectsPath)
	if err != nil {
		return nil, fmt.Errorf("opening project records: %w", err)
	}
	defer pf.Close() //nolint:errcheck // read-only file

	af, err := os.Open(applicantsPath)
	if err != nil {
		return nil, fmt.Errorf("opening applicant records: %w", err)
	}
	defer af.Close() //nolint:errcheck // read-only file

	return s.load(applicantsPath, af, projectsPath, pf)
}

func (s *Store) load(applicantSrc string, applicants io.Reader, projectSrc string, projects io.Reader) (*LoadReport, error) {
	report := &LoadReport{}
	warn := func(err error) {
		logrus.Warnf("skipping record: %v", err)
		report.Warnings = append(report.Warnings, err)
	}

	precs, skipped, err := input.ParseProjects(projects)
	if err != nil {
		return nil, err
	}
	for _, le := range skipped {
		warn(&MalformedRecordError{Source: projectSrc, Line: le.Line, Text: le.Text, Reason: le.Reason})
	}
	for _, rec := range precs {
		if err := s.AddProject(Project{ID: rec.ID, Capacity: rec.Capacity, MinScore: rec.MinScore}); err != nil {
			warn(located(err, projectSrc, rec.Line))
			continue
		}
		report.Projects++
	}

	arecs, skipped, err := input.ParseApplicants(applicants)
	if err != nil {
		return nil, err
	}
	for _, le := range skipped {
		warn(&MalformedRecordError{Source: applicantSrc, Line: le.Line, Text: le.Text, Reason: le.Reason})
	}
	for _, rec := range arecs {
		if err := s.AddApplicant(NewApplicant(rec.ID, rec.Score, rec.Preferences)); err != nil {
			warn(located(err, applicantSrc, rec.Line))
			continue
		}
		report.Applicants++
		if len(rec.Preferences) > input.MaxPreferences {
			limitErr := &PreferenceLimitError{Source: applicantSrc, Line: rec.Line, ApplicantID: rec.ID,
				Count: len(rec.Preferences), Limit: input.MaxPreferences}
			logrus.Warnf("%v; keeping the full list", limitErr)
			report.Warnings = append(report.Warnings, limitErr)
		}
	}

	for _, ref := range s.UnknownReferences() {
		logrus.Warnf("%v; treated as ineligible", ref)
		report.Warnings = append(report.Warnings, ref)
	}
	logrus.Infof("loaded %d projects and %d applicants (%d warnings)",
		report.Projects, report.Applicants, len(report.Warnings))
	return report, nil
}

func located(err error, source string, line int) error {
	if mr, ok := err.(*MalformedRecordError); ok {
		mr.Source = source
		mr.Line = line
	}
	return err
}
