package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsComment(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"// header", true},
		{"//(P1, 1, 3)", true},
		{"# note", true},
		{"(P1, 1, 3)", false},
		{"(A1):(P1) (3)", false},
		{"/ (P1, 1, 3)", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsComment(tc.line), "IsComment(%q)", tc.line)
	}
}

// TestParseProjects_CommentedRecordsAreSkipped pins the corrected comment
// predicate: a commented-out record is not loaded.
func TestParseProjects_CommentedRecordsAreSkipped(t *testing.T) {
	recs, skipped, err := ParseProjects(strings.NewReader("// (P1, 1, 3)\n(P2, 2, 4)\n"))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, recs, 1)
	assert.Equal(t, ProjectRecord{Line: 2, ID: "P2", Capacity: 2, MinScore: 4}, recs[0])
}

func TestParseProjects_Shapes(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   ProjectRecord
		reason string
	}{
		{name: "canonical", line: "(P1, 2, 3)", want: ProjectRecord{ID: "P1", Capacity: 2, MinScore: 3}},
		{name: "no spaces", line: "(P10,1,5)", want: ProjectRecord{ID: "P10", Capacity: 1, MinScore: 5}},
		{name: "padded", line: "  ( P7 ,  3 , 4 )  ", want: ProjectRecord{ID: "P7", Capacity: 3, MinScore: 4}},
		{name: "too few fields", line: "(P1, 2)", reason: "expected 3 fields, got 2"},
		{name: "too many fields", line: "(P1, 2, 3, 4)", reason: "expected 3 fields, got 4"},
		{name: "non-numeric capacity", line: "(P1, x, 3)", reason: `capacity "x" is not an integer`},
		{name: "non-numeric minimum", line: "(P1, 2, high)", reason: `minimum score "high" is not an integer`},
		{name: "zero capacity", line: "(P1, 0, 3)", reason: "capacity must be positive, got 0"},
		{name: "missing parens", line: "P1, 2, 3", reason: "expected (<id>, <capacity>, <min-score>)"},
		{name: "empty id", line: "(, 2, 3)", reason: "empty identifier"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs, skipped, err := ParseProjects(strings.NewReader(tc.line))
			require.NoError(t, err)
			if tc.reason != "" {
				assert.Empty(t, recs)
				require.Len(t, skipped, 1)
				assert.Equal(t, tc.reason, skipped[0].Reason)
				assert.Equal(t, 1, skipped[0].Line)
				return
			}
			assert.Empty(t, skipped)
			require.Len(t, recs, 1)
			tc.want.Line = 1
			assert.Equal(t, tc.want, recs[0])
		})
	}
}

func TestParseApplicants_Shapes(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   ApplicantRecord
		reason string
	}{
		{name: "canonical", line: "(A1):(P1, P30, P50) (5)", want: ApplicantRecord{ID: "A1", Preferences: []string{"P1", "P30", "P50"}, Score: 5}},
		{name: "no space before score", line: "(A2):(P3)(4)", want: ApplicantRecord{ID: "A2", Preferences: []string{"P3"}, Score: 4}},
		{name: "spaced colon", line: "(A3) : (P1,P2) ( 3 )", want: ApplicantRecord{ID: "A3", Preferences: []string{"P1", "P2"}, Score: 3}},
		{name: "four preferences", line: "(A4):(P1, P2, P3, P4) (3)", want: ApplicantRecord{ID: "A4", Preferences: []string{"P1", "P2", "P3", "P4"}, Score: 3}},
		{name: "non-numeric score", line: "(A1):(P1) (five)", reason: `score "five" is not an integer`},
		{name: "missing score", line: "(A1):(P1)", reason: "expected (<id>):(<project>, ...) (<score>)"},
		{name: "empty preferences", line: "(A1):() (4)", reason: "preference list: empty identifier"},
		{name: "empty preference entry", line: "(A1):(P1, , P2) (4)", reason: "preference list: empty identifier"},
		{name: "repeated preference", line: "(A1):(P1, P1) (4)", reason: "project P1 listed twice"},
		{name: "whitespace in id", line: "(A 1):(P1) (4)", reason: `identifier "A 1" contains whitespace`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs, skipped, err := ParseApplicants(strings.NewReader(tc.line))
			require.NoError(t, err)
			if tc.reason != "" {
				assert.Empty(t, recs)
				require.Len(t, skipped, 1)
				assert.Equal(t, tc.reason, skipped[0].Reason)
				return
			}
			assert.Empty(t, skipped)
			require.Len(t, recs, 1)
			tc.want.Line = 1
			assert.Equal(t, tc.want, recs[0])
		})
	}
}

func TestParseApplicants_LineNumbersCountCommentsAndBlanks(t *testing.T) {
	text := "// applicants\n\n(A1):(P1) (3)\nnot a record\n(A2):(P2) (4)\n"
	recs, skipped, err := ParseApplicants(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 3, recs[0].Line)
	assert.Equal(t, 5, recs[1].Line)
	require.Len(t, skipped, 1)
	assert.Equal(t, 4, skipped[0].Line)
	assert.Equal(t, "not a record", skipped[0].Text)
	assert.Contains(t, skipped[0].Error(), "line 4")
}

func TestParseProjects_StripsByteOrderMark(t *testing.T) {
	recs, skipped, err := ParseProjects(strings.NewReader("\uFEFF(P1, 1, 3)\r\n(P2, 1, 4)\r\n"))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, recs, 2)
	assert.Equal(t, "P1", recs[0].ID)
}
