package match

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching. The typed errors below all report
// themselves as one of these.
var (
	ErrMalformedRecord  = errors.New("malformed record")
	ErrUnknownReference = errors.New("unknown reference")
	ErrPreferenceLimit  = errors.New("preference limit exceeded")
	ErrEngineMisuse     = errors.New("engine misuse")
)

// MalformedRecordError describes a single input record that could not be parsed.
// It is non-fatal: the record is dropped and loading continues.
type MalformedRecordError struct {
	Source string // file name or stream label, may be empty
	Line   int    // 1-based line number, 0 when not line-oriented
	Text   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	loc := e.Source
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	if loc == "" {
		return fmt.Sprintf("malformed record %q: %s", e.Text, e.Reason)
	}
	return fmt.Sprintf("%s: malformed record %q: %s", loc, e.Text, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// UnknownReferenceError reports a preference entry naming a project that the
// store does not hold. The matching scan treats such entries as ineligible.
type UnknownReferenceError struct {
	ApplicantID string
	ProjectID   string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("applicant %s references unknown project %s", e.ApplicantID, e.ProjectID)
}

func (e *UnknownReferenceError) Is(target error) bool { return target == ErrUnknownReference }

// PreferenceLimitError flags an applicant listing more projects than the
// domain allows. The record is kept with its full list.
type PreferenceLimitError struct {
	Source      string
	Line        int
	ApplicantID string
	Count       int
	Limit       int
}

func (e *PreferenceLimitError) Error() string {
	return fmt.Sprintf("%s:%d: applicant %s lists %d preferences, limit is %d",
		e.Source, e.Line, e.ApplicantID, e.Count, e.Limit)
}

func (e *PreferenceLimitError) Is(target error) bool { return target == ErrPreferenceLimit }

// EngineMisuseError is fatal and is reported before any matching iteration runs.
type EngineMisuseError struct {
	Reason string
}

func (e *EngineMisuseError) Error() string {
	return "engine misuse: " + e.Reason
}

func (e *EngineMisuseError) Is(target error) bool { return target == ErrEngineMisuse }

func misuse(format string, args ...any) error {
	return &EngineMisuseError{Reason: fmt.Sprintf(format, args...)}
}
