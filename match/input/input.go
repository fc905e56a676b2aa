// Package input parses the line-oriented project and applicant record files.
// This package has no dependencies on match/; it produces plain records and
// per-line diagnostics that the entity store turns into domain values.
package input

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxPreferences is the domain cap on an applicant's preference list.
// The parser accepts longer lists and flags them; it never truncates.
const MaxPreferences = 3

// ProjectRecord is one parsed `(<ID>, <capacity>, <minScore>)` line.
type ProjectRecord struct {
	Line     int
	ID       string
	Capacity int
	MinScore int
}

// ApplicantRecord is one parsed `(<ID>):(<P>, <P>, ...) (<score>)` line.
type ApplicantRecord struct {
	Line        int
	ID          string
	Preferences []string
	Score       int
}

// LineError describes a line that was skipped.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Reason)
}

var (
	projectPattern   = regexp.MustCompile(`^\((.*)\)$`)
	applicantPattern = regexp.MustCompile(`^\(([^()]*)\)\s*:\s*\(([^()]*)\)\s*\(([^()]*)\)$`)
)

// IsComment reports whether a trimmed line carries no record: blank lines and
// lines starting with "//" or "#".
func IsComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#")
}

// ParseProjects reads project records from r. Lines that do not match the
// expected shape are returned as LineErrors and otherwise ignored.
// The returned error is non-nil only when reading r fails.
func ParseProjects(r io.Reader) ([]ProjectRecord, []LineError, error) {
	var records []ProjectRecord
	var skipped []LineError
	err := scanLines(r, func(lineNo int, line string) {
		rec, reason := parseProject(line)
		if reason != "" {
			skipped = append(skipped, LineError{Line: lineNo, Text: line, Reason: reason})
			return
		}
		rec.Line = lineNo
		records = append(records, rec)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reading project records: %w", err)
	}
	return records, skipped, nil
}

// ParseApplicants reads applicant records from r with the same skipping rules
// as ParseProjects.
func ParseApplicants(r io.Reader) ([]ApplicantRecord, []LineError, error) {
	var records []ApplicantRecord
	var skipped []LineError
	err := scanLines(r, func(lineNo int, line string) {
		rec, reason := parseApplicant(line)
		if reason != "" {
			skipped = append(skipped, LineError{Line: lineNo, Text: line, Reason: reason})
			return
		}
		rec.Line = lineNo
		records = append(records, rec)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reading applicant records: %w", err)
	}
	return records, skipped, nil
}

// scanLines strips a leading byte-order mark, trims every line and hands
// non-comment lines to fn with their 1-based line number.
func scanLines(r io.Reader, fn func(lineNo int, line string)) error {
	scanner := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if IsComment(line) {
			continue
		}
		fn(lineNo, line)
	}
	return scanner.Err()
}

func parseProject(line string) (ProjectRecord, string) {
	m := projectPattern.FindStringSubmatch(line)
	if m == nil {
		return ProjectRecord{}, "expected (<id>, <capacity>, <min-score>)"
	}
	fields := splitFields(m[1])
	if len(fields) != 3 {
		return ProjectRecord{}, fmt.Sprintf("expected 3 fields, got %d", len(fields))
	}
	if reason := checkID(fields[0]); reason != "" {
		return ProjectRecord{}, reason
	}
	capacity, err := strconv.Atoi(fields[1])
	if err != nil {
		return ProjectRecord{}, fmt.Sprintf("capacity %q is not an integer", fields[1])
	}
	if capacity <= 0 {
		return ProjectRecord{}, fmt.Sprintf("capacity must be positive, got %d", capacity)
	}
	minScore, err := strconv.Atoi(fields[2])
	if err != nil {
		return ProjectRecord{}, fmt.Sprintf("minimum score %q is not an integer", fields[2])
	}
	return ProjectRecord{ID: fields[0], Capacity: capacity, MinScore: minScore}, ""
}

func parseApplicant(line string) (ApplicantRecord, string) {
	m := applicantPattern.FindStringSubmatch(line)
	if m == nil {
		return ApplicantRecord{}, "expected (<id>):(<project>, ...) (<score>)"
	}
	id := strings.TrimSpace(m[1])
	if reason := checkID(id); reason != "" {
		return ApplicantRecord{}, reason
	}
	prefs := splitFields(m[2])
	seen := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		if reason := checkID(p); reason != "" {
			return ApplicantRecord{}, "preference list: " + reason
		}
		if seen[p] {
			return ApplicantRecord{}, fmt.Sprintf("project %s listed twice", p)
		}
		seen[p] = true
	}
	scoreText := strings.TrimSpace(m[3])
	score, err := strconv.Atoi(scoreText)
	if err != nil {
		return ApplicantRecord{}, fmt.Sprintf("score %q is not an integer", scoreText)
	}
	return ApplicantRecord{ID: id, Preferences: prefs, Score: score}, ""
}

func splitFields(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func checkID(id string) string {
	if id == "" {
		return "empty identifier"
	}
	if strings.ContainsAny(id, " \t") {
		return fmt.Sprintf("identifier %q contains whitespace", id)
	}
	return ""
}
