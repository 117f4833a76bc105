package diag

import "fmt"

// Summary turns a recorded diagnostic set into an error value, mirroring
// the teacher's ValidationError: a Collect (or Silent) handler never
// returns an error itself, but a caller that wants Go's usual
// if err != nil idiom after validation can wrap the diagnostics with
// NewSummary and check HasErrors.
type Summary struct {
	diagnostics []Diagnostic
}

// NewSummary copies d into an immutable Summary.
func NewSummary(d []Diagnostic) *Summary {
	return &Summary{diagnostics: append([]Diagnostic(nil), d...)}
}

// Error implements the error interface. Summary is only meant to be
// surfaced as an error when HasErrors is true; callers that want a
// plain error from a Handler's output should guard with that check
// first, same as the teacher's `if ve, ok := err.(*ValidationError)`.
func (s *Summary) Error() string {
	n := s.Count()
	if n == 0 {
		return "no diagnostics"
	}
	first := s.diagnostics[0]
	if n == 1 {
		return fmt.Sprintf("%s: %s", first.Code, first.Message)
	}
	return fmt.Sprintf("%d diagnostics (first: %s: %s)", n, first.Code, first.Message)
}

// Diagnostics returns a copy of all recorded diagnostics.
func (s *Summary) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), s.diagnostics...)
}

// Count returns the number of diagnostics.
func (s *Summary) Count() int {
	return len(s.diagnostics)
}

// HasErrors reports whether any diagnostic is ERROR or CRITICAL, the
// same threshold a CLI wrapper uses to pick exit code 1.
func (s *Summary) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity.AtLeastError() {
			return true
		}
	}
	return false
}

// HasCode reports whether a diagnostic with the given code exists.
func (s *Summary) HasCode(code string) bool {
	for _, d := range s.diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}
