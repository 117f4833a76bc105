// Package ast defines the typed, polymorphic document tree produced by
// the parsing pipeline: a generic envelope (Document/Interchange/
// FunctionalGroup/Transaction) wrapping a transaction-specific Payload
// variant selected by transaction set code (spec.md §3, §4.5, §9).
//
// Every node implements Navigable so the field-path resolver
// (package fieldpath) can walk the tree by name without reflection —
// each node hand-writes its own attribute switch instead of the source
// system's runtime attribute lookup (§9 Design Notes).
package ast

import "github.com/shopspring/decimal"

// Navigable is implemented by every AST node the field-path resolver
// can step into. Field returns the named attribute and whether it
// exists; a name the node doesn't recognize returns (nil, false),
// which the resolver turns into a null result rather than an error.
type Navigable interface {
	Field(name string) (any, bool)
}

// Document is the root of a parsed interchange file. It owns one or
// more Interchanges in the order they were framed by the envelope
// assembler.
type Document struct {
	Interchanges []*Interchange
}

// TransactionCount returns the total number of Transactions across all
// Interchanges and FunctionalGroups, used by the "N ST segments -> N
// Transactions" testable property.
func (d *Document) TransactionCount() int {
	n := 0
	for _, ic := range d.Interchanges {
		for _, fg := range ic.FunctionalGroups {
			n += len(fg.Transactions)
		}
	}
	return n
}

// Transactions returns every Transaction in the document, in document
// order (interchange, then group, then transaction — the same order
// diagnostics are emitted in per spec.md §5).
func (d *Document) Transactions() []*Transaction {
	var out []*Transaction
	for _, ic := range d.Interchanges {
		for _, fg := range ic.FunctionalGroups {
			out = append(out, fg.Transactions...)
		}
	}
	return out
}

// Interchange is the ISA/IEA envelope. ControlNumber is the value
// carried on both ISA13 and IEA02; the envelope assembler has already
// verified they match (or recorded CONTROL_NUMBER_MISMATCH if not).
type Interchange struct {
	ControlNumber   string
	SenderID        string
	ReceiverID      string
	Date            string // raw ISA09, CCYYMMDD or YYMMDD per version
	Time            string // raw ISA10
	UsageIndicator  string // ISA15: P (production) or T (test)
	ElementSep      byte
	ComponentSep    byte
	SegmentTerm     byte
	FunctionalGroups []*FunctionalGroup
}

// FunctionalGroup is the GS/GE envelope.
type FunctionalGroup struct {
	ControlNumber        string
	FunctionalIDCode      string // GS01, e.g. HP for 835, HC for 837
	ApplicationSenderCode string
	Date                  string
	Time                  string
	Transactions          []*Transaction
}

// TransactionHeader is the ST/SE-derived header common to every
// transaction, resolved when a field path begins with "header.".
type TransactionHeader struct {
	SetCode                      string // ST01
	ControlNumber                string // ST02 / SE02
	ImplementationConventionRef  string // ST03, when present
	ClaimedSegmentCount          int    // SE01, informational only
}

func (h *TransactionHeader) Field(name string) (any, bool) {
	switch name {
	case "set_code":
		return h.SetCode, true
	case "control_number":
		return h.ControlNumber, true
	case "implementation_convention_ref":
		return h.ImplementationConventionRef, true
	case "claimed_segment_count":
		return h.ClaimedSegmentCount, true
	default:
		return nil, false
	}
}

// Payload is implemented by every transaction-specific variant (835,
// 837P, 270, 271, 276, 277, and any user-registered code). Transaction
// owns exactly one Payload (spec.md §3: "Ownership: Transaction
// exclusively owns its payload").
type Payload interface {
	Navigable
	// SetCode returns the transaction set code this payload variant
	// implements, e.g. "835". It must equal the owning Transaction's
	// Header.SetCode; the parse pipeline does not check this.
	SetCode() string
}

// Transaction is the ST/SE-framed unit carrying exactly one Payload.
type Transaction struct {
	Header  TransactionHeader
	Payload Payload

	// UntypedSegments holds segments with tags no registered parser
	// recognized inside this transaction's frame; spec.md §6 requires
	// unknown tags to pass through rather than being dropped.
	UntypedSegments []UntypedSegment
}

// UntypedSegment preserves an unrecognized segment's tag and elements
// verbatim, attached to the nearest enclosing scope.
type UntypedSegment struct {
	Tag      string
	Elements []string
}

// Field implements Navigable for the payload root: resolving directly
// against a Transaction (rather than "header.xxx") delegates to the
// Payload, matching spec.md §4.6 ("otherwise it targets the payload
// root").
func (t *Transaction) Field(name string) (any, bool) {
	if t.Payload == nil {
		return nil, false
	}
	return t.Payload.Field(name)
}

// Money is the module-wide type for every monetary and quantity field;
// amounts are exact fixed-point decimals, never binary floats
// (spec.md §9 Design Notes).
type Money = decimal.Decimal

// DateField stores a date both in its raw wire form and, when it could
// be normalized, as a time.Time-free ISO string ("YYYY-MM-DD"); the
// transaction parsers never parse into time.Time directly since many payers
// supply deliberately invalid dates that must still round-trip
// (spec.md §4.4 robustness rule 2).
type DateField struct {
	Raw string
	ISO string // empty when Raw could not be normalized
}

func (d DateField) Field(name string) (any, bool) {
	switch name {
	case "raw":
		return d.Raw, true
	case "iso":
		return d.ISO, true
	default:
		return nil, false
	}
}

// TimeField stores HHMM/HHMMSS both raw and normalized to HH:MM[:SS].
type TimeField struct {
	Raw        string
	Normalized string
}

func (t TimeField) Field(name string) (any, bool) {
	switch name {
	case "raw":
		return t.Raw, true
	case "normalized":
		return t.Normalized, true
	default:
		return nil, false
	}
}

// toAnySlice converts a slice of Navigable-ish elements to []any so the
// field-path resolver can index it uniformly regardless of element
// type (spec.md §4.6: "name[i] requires the intermediate to be an
// ordered sequence").
func toAnySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
