package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// WriteCSV writes the assignment matrix: a header row with an empty corner
// cell followed by project IDs, then one row per applicant with Marker cells.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{""}, r.ProjectIDs...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing matrix header: %w", err)
	}
	for i, aid := range r.ApplicantIDs {
		record := make([]string, 0, len(r.ProjectIDs)+1)
		record = append(record, aid)
		for j := range r.ProjectIDs {
			record = append(record, r.Cell(i, j))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing matrix row %s: %w", aid, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRanksCSV writes one `applicant,project,rank` row per applicant.
func (r *Report) WriteRanksCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"applicant", "project", "rank"}); err != nil {
		return fmt.Errorf("writing rank header: %w", err)
	}
	for _, row := range r.Rows {
		if err := cw.Write([]string{row.ApplicantID, row.ProjectID, row.RankLabel()}); err != nil {
			return fmt.Errorf("writing rank row %s: %w", row.ApplicantID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// yamlReport is the on-disk shape of WriteYAML.
type yamlReport struct {
	Summary    Summary        `yaml:"summary"`
	Applicants []Row          `yaml:"applicants"`
	Projects   []ProjectIndex `yaml:"projects"`
}

// WriteYAML writes the summary, the per-applicant rank index and the
// per-project preference index.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlReport{Summary: r.Summarize(), Applicants: r.Rows, Projects: r.Projects}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// Print displays aggregated results, formatting numbers for the given locale.
func (r *Report) Print(w io.Writer, tag language.Tag) {
	p := message.NewPrinter(tag)
	s := r.Summarize()
	p.Fprintln(w, "=== Matching Results ===")
	p.Fprintf(w, "Applicants           : %d\n", s.Applicants)
	p.Fprintf(w, "Matched              : %d\n", s.Matched)
	p.Fprintf(w, "Unmatched            : %d\n", s.Unmatched)
	for _, rank := range slices.Sorted(maps.Keys(s.RankHistogram)) {
		if rank == Unmatched {
			continue
		}
		p.Fprintf(w, "Choice #%d            : %d\n", rank, s.RankHistogram[rank])
	}
	p.Fprintf(w, "Full projects        : %d of %d\n", s.FullProjects, len(r.Projects))
	p.Fprintf(w, "Empty projects       : %d\n", s.EmptyProjects)
	if s.Applicants > 0 {
		p.Fprintf(w, "Match rate           : %.2f%%\n", 100*float64(s.Matched)/float64(s.Applicants))
	}
}
