// Package tokenizer implements C1: splitting a raw interchange-format
// byte buffer into an ordered sequence of segments and elements, with
// delimiters auto-detected from the mandatory ISA header (spec.md
// §4.1).
package tokenizer

import (
	"errors"
	"strings"

	"github.com/edihealth/x12edi/diag"
)

// Delimiters holds the three wire-format characters authoritative from
// the ISA header: element separator, component (sub-element)
// separator, and segment terminator.
type Delimiters struct {
	Element   byte
	Component byte
	Segment   byte
}

// RawSegment is an ordered sequence of element strings; Elements[0] is
// always the segment tag. RawSegments are immutable after tokenization
// (spec.md §3).
type RawSegment struct {
	Elements []string
}

// Tag returns the segment tag (Elements[0]).
func (s RawSegment) Tag() string {
	if len(s.Elements) == 0 {
		return ""
	}
	return s.Elements[0]
}

// Get returns the i-th element (0 is the tag), or "" if the segment is
// shorter than i+1 elements — tokenizer output never faults on short
// segments (spec.md §4.4 robustness rule 1).
func (s RawSegment) Get(i int) string {
	if i < 0 || i >= len(s.Elements) {
		return ""
	}
	return s.Elements[i]
}

// ErrNoISAHeader is returned when the buffer does not begin with a
// well-formed ISA segment; this is the one fatal, un-recoverable parse
// condition (spec.md §4.1, §7).
var ErrNoISAHeader = errors.New("tokenizer: no ISA header found")

const isaLength = 106 // ISA is a fixed-width segment: tag + 16 elements + terminator

// Tokenize splits data into RawSegments, auto-detecting delimiters
// from the ISA header, and reports recoverable findings (leading empty
// segments, a truncated final segment) to h. It returns ErrNoISAHeader
// when no usable ISA header is present.
func Tokenize(data []byte, h diag.Handler) ([]RawSegment, Delimiters, error) {
	isaCandidate, ok := locateISA(data)
	if !ok || len(isaCandidate) < isaLength || string(isaCandidate[:3]) != "ISA" {
		h.Record(diag.Diagnostic{
			Severity: diag.ERROR,
			Code:     "NO_ISA_HEADER",
			Message:  "input does not begin with a well-formed ISA segment",
		})
		return nil, Delimiters{}, ErrNoISAHeader
	}

	delims := Delimiters{
		Element:   isaCandidate[3],
		Component: isaCandidate[104],
		Segment:   isaCandidate[105],
	}

	segments, truncated := splitSegments(data, delims)

	for i := range segments {
		if segments[i].Tag() == "" {
			h.Record(diag.Diagnostic{
				Severity: diag.WARNING,
				Code:     "LEADING_EMPTY_SEGMENT",
				Message:  "segment with an empty tag was skipped",
			})
		}
	}
	segments = removeEmptyTagged(segments)

	if truncated {
		h.Record(diag.Diagnostic{
			Severity: diag.WARNING,
			Code:     "TRUNCATED_FINAL_SEGMENT",
			Message:  "final segment had no terminator before EOF; buffered content was used as-is",
		})
	}

	return segments, delims, nil
}

// locateISA scans data for the first segment using the conventional
// assumed delimiters ('*' element, '~' terminator) to find the ISA
// header before real delimiters are known (spec.md §4.1), skipping CR
// and LF as it goes.
func locateISA(data []byte) ([]byte, bool) {
	var buf []byte
	for _, b := range data {
		if b == '\r' || b == '\n' {
			continue
		}
		if b == '~' {
			buf = append(buf, b)
			return buf, true
		}
		buf = append(buf, b)
	}
	return nil, false
}

// splitSegments performs the real tokenization pass once delimiters are
// known. It reports whether the final segment lacked a terminator.
func splitSegments(data []byte, delims Delimiters) ([]RawSegment, bool) {
	var segments []RawSegment
	var cur []byte
	for _, b := range data {
		if b == '\r' || b == '\n' {
			continue
		}
		if b == delims.Segment {
			segments = append(segments, newRawSegment(cur, delims))
			cur = nil
			continue
		}
		cur = append(cur, b)
	}
	truncated := len(strings.TrimSpace(string(cur))) > 0
	if truncated {
		segments = append(segments, newRawSegment(cur, delims))
	}
	return segments, truncated
}

func newRawSegment(raw []byte, delims Delimiters) RawSegment {
	elements := strings.Split(string(raw), string(delims.Element))
	return RawSegment{Elements: elements}
}

func removeEmptyTagged(segments []RawSegment) []RawSegment {
	out := segments[:0]
	for _, s := range segments {
		if s.Tag() == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
