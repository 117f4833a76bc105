// Package diag defines the diagnostic record type shared by every stage of
// the parsing and validation pipeline, plus the three error-handling
// policies a caller can choose between.
//
// Diagnostics are data, not exceptions: tokenizer, envelope, plugin,
// and rules all append to a Handler instead of returning or panicking
// on recoverable findings. Only the handful of genuinely fatal
// conditions named in spec.md §7 (no ISA header, out-of-memory class
// failures) bypass the handler and return a plain error.
package diag

import "fmt"

// Severity orders diagnostics from informational to domain-blocking.
// The framework itself never emits CRITICAL; that severity is reserved
// for rule authors marking domain-blocking conditions.
type Severity int

const (
	INFO Severity = iota
	WARNING
	ERROR
	CRITICAL
)

func (s Severity) String() string {
	switch s {
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// AtLeastError reports whether the severity is ERROR or CRITICAL, the
// threshold used by fail-fast mode and by CLI exit-code mapping.
func (s Severity) AtLeastError() bool {
	return s >= ERROR
}

// Diagnostic is a single structured finding produced by any pipeline
// stage. Every diagnostic carries at least Severity, Code, and Message;
// the remaining fields are populated by whichever stage emitted it.
type Diagnostic struct {
	Severity     Severity
	Code         string
	Message      string
	Path         string // field path, when the finding is path-addressable
	Value        any    // the offending value, if any
	RuleName     string // populated by the business-rule engine
	RuleCategory string
	Extras       map[string]any // kind-specific fields (total_field, difference, ...)
}

func (d Diagnostic) String() string {
	if d.Path != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", d.Severity, d.Code, d.Message, d.Path)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message)
}

// Handler is the central sink every component routes diagnostics
// through rather than throwing directly (spec.md §4.8).
type Handler interface {
	// Record appends a diagnostic. It returns an error only under the
	// fail-fast policy, and only once the first ERROR/CRITICAL has
	// been recorded.
	Record(d Diagnostic) error
	// Diagnostics returns everything recorded so far, in recording
	// order.
	Diagnostics() []Diagnostic
}

// NewCollect returns the default policy: accumulate everything, never
// abort.
func NewCollect() Handler {
	return &collectHandler{}
}

// NewSilent returns a policy identical to Collect except that it
// suppresses any side-channel logging a component might otherwise do
// (currently only plugin.Discover's slog output on a
// malformed artifact).
func NewSilent() Handler {
	return &collectHandler{silent: true}
}

// NewFailFast returns a policy whose Record returns a *FatalError for
// the first ERROR or CRITICAL diagnostic and for every Record after it.
// WARNING and INFO are still collected; the aborting diagnostic is
// included in Diagnostics(). The pipeline stages in this module
// (tokenizer, envelope, edi, rules) do not act on Record's return
// value, so under this policy they keep processing and recording after
// the first ERROR.
func NewFailFast() Handler {
	return &failFastHandler{}
}

// Silent reports whether h was built with NewSilent, the one place a
// component needs to check its policy rather than just calling Record.
func Silent(h Handler) bool {
	ch, ok := h.(*collectHandler)
	return ok && ch.silent
}

type collectHandler struct {
	diagnostics []Diagnostic
	silent      bool
}

func (h *collectHandler) Record(d Diagnostic) error {
	h.diagnostics = append(h.diagnostics, d)
	return nil
}

func (h *collectHandler) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), h.diagnostics...)
}

type failFastHandler struct {
	diagnostics []Diagnostic
	aborted     *FatalError
}

func (h *failFastHandler) Record(d Diagnostic) error {
	h.diagnostics = append(h.diagnostics, d)
	if h.aborted == nil && d.Severity.AtLeastError() {
		h.aborted = &FatalError{Diagnostic: d}
		return h.aborted
	}
	if h.aborted != nil {
		return h.aborted
	}
	return nil
}

func (h *failFastHandler) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), h.diagnostics...)
}

// FatalError is returned by a FailFast Handler's Record once an
// ERROR-or-above diagnostic has been seen. It wraps the triggering
// Diagnostic so callers can inspect it with errors.As.
type FatalError struct {
	Diagnostic Diagnostic
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("aborted on %s", e.Diagnostic)
}
