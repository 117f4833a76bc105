// Package txn implements C4: one parser per built-in transaction set
// (835, 837P, 270, 271, 276, 277), each consuming the buffered segment
// frame the envelope assembler produced for one ST..SE transaction and
// producing a typed ast.Payload (spec.md §4.4).
package txn

import (
	"fmt"
	"strings"

	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/tokenizer"
	"github.com/shopspring/decimal"
)

// cursor walks a transaction's buffered segments in order.
type cursor struct {
	segments []tokenizer.RawSegment
	pos      int
}

func newCursor(segments []tokenizer.RawSegment) *cursor {
	return &cursor{segments: segments}
}

func (c *cursor) done() bool { return c.pos >= len(c.segments) }

// peek returns the current segment without advancing, or the zero
// RawSegment if exhausted.
func (c *cursor) peek() tokenizer.RawSegment {
	if c.done() {
		return tokenizer.RawSegment{}
	}
	return c.segments[c.pos]
}

func (c *cursor) peekTag() string { return c.peek().Tag() }

// next returns the current segment and advances past it.
func (c *cursor) next() tokenizer.RawSegment {
	s := c.peek()
	c.pos++
	return s
}

// skipTo advances past segments until tag is at the head, or the
// cursor is exhausted. Used to tolerate unrecognized segments between
// the ones a parser cares about, per spec.md §4.4 robustness rule 3
// (unknown tags pass through rather than aborting the parse).
func (c *cursor) skipTo(tags ...string) {
	for !c.done() {
		t := c.peekTag()
		for _, want := range tags {
			if t == want {
				return
			}
		}
		c.pos++
	}
}

// errMissingSegment is returned by ValidateEnvelope implementations.
func errMissingSegment(tag string) error {
	return fmt.Errorf("txn: required segment %s is missing from the transaction frame", tag)
}

func errUnexpectedLeadingSegment(got string) error {
	return fmt.Errorf("txn: transaction frame must begin with ST, got %s", got)
}

// validateFrameShape checks the universal envelope shape every
// built-in parser requires: the frame starts with ST and ends with SE.
func validateFrameShape(segments []tokenizer.RawSegment) error {
	if len(segments) < 2 {
		return errMissingSegment("SE")
	}
	if segments[0].Tag() != "ST" {
		return errUnexpectedLeadingSegment(segments[0].Tag())
	}
	if segments[len(segments)-1].Tag() != "SE" {
		return errMissingSegment("SE")
	}
	return nil
}

// parseMoney parses an X12 numeric element into Money, defaulting to
// zero (rather than failing the whole transaction) when the element is
// absent or unparseable — spec.md §4.4 robustness rule 4: a malformed
// monetary field is a rule violation to surface later, not a parse
// abort.
func parseMoney(raw string) ast.Money {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseDate normalizes an X12 date element (CCYYMMDD or YYMMDD) to
// ISO-8601, preserving Raw verbatim so a downstream rule can still flag
// an invalid date rather than lose it entirely.
func parseDate(raw string) ast.DateField {
	d := ast.DateField{Raw: raw}
	switch len(raw) {
	case 8:
		d.ISO = raw[0:4] + "-" + raw[4:6] + "-" + raw[6:8]
	case 6:
		century := "20"
		if raw[0] > '5' {
			century = "19"
		}
		d.ISO = century + raw[0:2] + "-" + raw[2:4] + "-" + raw[4:6]
	}
	if !isAllDigits(raw) {
		d.ISO = ""
	}
	return d
}

// parseTimeField normalizes HHMM or HHMMSS to HH:MM[:SS].
func parseTimeField(raw string) ast.TimeField {
	t := ast.TimeField{Raw: raw}
	if !isAllDigits(raw) {
		return t
	}
	switch len(raw) {
	case 4:
		t.Normalized = raw[0:2] + ":" + raw[2:4]
	case 6:
		t.Normalized = raw[0:2] + ":" + raw[2:4] + ":" + raw[4:6]
	}
	return t
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseParty reads an N1 loop (N1 plus the optional N3/N4 that
// immediately follow it) at the cursor's current position. It assumes
// the caller has already confirmed peekTag() == "N1".
func parseParty(c *cursor) *ast.Party {
	n1 := c.next()
	p := &ast.Party{
		Qualifier:   n1.Get(1),
		Name:        n1.Get(2),
		IDQualifier: n1.Get(3),
		ID:          n1.Get(4),
	}
	for !c.done() {
		switch c.peekTag() {
		case "N3":
			n3 := c.next()
			if p.Address == nil {
				p.Address = &ast.Address{}
			}
			p.Address.Line1 = n3.Get(1)
			p.Address.Line2 = n3.Get(2)
		case "N4":
			n4 := c.next()
			if p.Address == nil {
				p.Address = &ast.Address{}
			}
			p.Address.City = n4.Get(1)
			p.Address.State = n4.Get(2)
			p.Address.PostalCode = n4.Get(3)
		default:
			return p
		}
	}
	return p
}

// splitComposite splits a composite element ("ABK:R591") on the
// component separator; X12 doesn't expose the real component separator
// this deep in the pipeline (tokenizer already split on element
// boundaries only), so this accepts either ':' or the common '>' rarely
// seen in the wild, defaulting to ':' per X12 convention.
func splitComposite(raw string) (first, second string) {
	for _, sep := range []string{":", ">"} {
		if idx := strings.IndexByte(raw, sep[0]); idx >= 0 {
			return raw[:idx], raw[idx+1:]
		}
	}
	return raw, ""
}
