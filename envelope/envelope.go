// Package envelope implements C2: grouping a segment stream into
// interchange -> functional group -> transaction frames and verifying
// control-number pairing at each nesting level (spec.md §4.2).
package envelope

import (
	"strconv"

	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/diag"
	"github.com/edihealth/x12edi/tokenizer"
)

// TransactionFrame is the buffered segment list for one ST..SE frame,
// handed to a transaction parser (C4) by the plugin registry (C5).
// Segments includes the ST and SE segments themselves so a parser's
// validate_envelope can check "first segment is ST" per spec.md §4.4.
type TransactionFrame struct {
	Header   ast.TransactionHeader
	Segments []tokenizer.RawSegment
}

// GroupFrame is one GS..GE frame.
type GroupFrame struct {
	ControlNumber         string
	FunctionalIDCode      string
	ApplicationSenderCode string
	Date                  string
	Time                  string
	Transactions          []TransactionFrame
}

// InterchangeFrame is one ISA..IEA frame.
type InterchangeFrame struct {
	ControlNumber  string
	SenderID       string
	ReceiverID     string
	Date           string
	Time           string
	UsageIndicator string
	FunctionalGroups []GroupFrame
}

// Result is the complete framed output of one Assemble call.
type Result struct {
	Interchanges []InterchangeFrame
}

type state int

const (
	outside state = iota
	inInterchange
	inGroup
	inTransaction
)

type assembler struct {
	h     diag.Handler
	state state

	result Result

	curInterchange *InterchangeFrame
	curGroup       *GroupFrame
	curTransaction *TransactionFrame

	seenInterchangeControl map[string]bool
	seenGroupControl       map[string]bool
}

// Assemble consumes a tokenized segment stream and emits framed
// transactions, recovering locally from out-of-order envelope
// segments and control-number mismatches rather than aborting
// (spec.md §4.2).
func Assemble(segments []tokenizer.RawSegment, h diag.Handler) *Result {
	a := &assembler{
		h:                      h,
		seenInterchangeControl: map[string]bool{},
		seenGroupControl:       map[string]bool{},
	}
	for _, seg := range segments {
		a.step(seg)
	}
	a.closeDangling()
	return &a.result
}

func (a *assembler) step(seg tokenizer.RawSegment) {
	switch seg.Tag() {
	case "ISA":
		a.onISA(seg)
	case "GS":
		a.onGS(seg)
	case "ST":
		a.onST(seg)
	case "SE":
		a.onSE(seg)
	case "GE":
		a.onGE(seg)
	case "IEA":
		a.onIEA(seg)
	default:
		a.buffer(seg)
	}
}

func (a *assembler) sequenceError(msg string) {
	a.h.Record(diag.Diagnostic{
		Severity: diag.ERROR,
		Code:     "ENVELOPE_SEQUENCE_ERROR",
		Message:  msg,
	})
}

func (a *assembler) onISA(seg tokenizer.RawSegment) {
	if a.state != outside {
		a.sequenceError("ISA encountered while a prior interchange was still open; closing it early")
		a.closeDangling()
	}
	control := seg.Get(13)
	if a.seenInterchangeControl[control] {
		a.h.Record(diag.Diagnostic{
			Severity: diag.WARNING,
			Code:     "DUPLICATE_CONTROL_NUMBER",
			Message:  "interchange control number reused across interchanges in the same document",
			Value:    control,
		})
	}
	a.seenInterchangeControl[control] = true
	a.result.Interchanges = append(a.result.Interchanges, InterchangeFrame{
		ControlNumber:  control,
		SenderID:       seg.Get(6),
		ReceiverID:     seg.Get(8),
		Date:           seg.Get(9),
		Time:           seg.Get(10),
		UsageIndicator: seg.Get(15),
	})
	a.curInterchange = &a.result.Interchanges[len(a.result.Interchanges)-1]
	a.state = inInterchange
}

func (a *assembler) onGS(seg tokenizer.RawSegment) {
	if a.state != inInterchange {
		a.sequenceError("GS encountered outside an open interchange")
		if a.curInterchange == nil {
			return
		}
	}
	control := seg.Get(6)
	if a.seenGroupControl[control] {
		a.h.Record(diag.Diagnostic{
			Severity: diag.WARNING,
			Code:     "DUPLICATE_CONTROL_NUMBER",
			Message:  "group control number reused in the same document",
			Value:    control,
		})
	}
	a.seenGroupControl[control] = true
	a.curInterchange.FunctionalGroups = append(a.curInterchange.FunctionalGroups, GroupFrame{
		ControlNumber:         control,
		FunctionalIDCode:      seg.Get(1),
		ApplicationSenderCode: seg.Get(2),
		Date:                  seg.Get(4),
		Time:                  seg.Get(5),
	})
	a.curGroup = &a.curInterchange.FunctionalGroups[len(a.curInterchange.FunctionalGroups)-1]
	a.state = inGroup
}

func (a *assembler) onST(seg tokenizer.RawSegment) {
	if a.state != inGroup {
		a.sequenceError("ST encountered outside an open functional group")
		if a.curGroup == nil {
			return
		}
	}
	header := ast.TransactionHeader{
		SetCode:                     seg.Get(1),
		ControlNumber:               seg.Get(2),
		ImplementationConventionRef: seg.Get(3),
	}
	a.curGroup.Transactions = append(a.curGroup.Transactions, TransactionFrame{
		Header:   header,
		Segments: []tokenizer.RawSegment{seg},
	})
	a.curTransaction = &a.curGroup.Transactions[len(a.curGroup.Transactions)-1]
	a.state = inTransaction
}

func (a *assembler) onSE(seg tokenizer.RawSegment) {
	if a.state != inTransaction {
		a.sequenceError("SE encountered outside an open transaction")
		return
	}
	a.curTransaction.Segments = append(a.curTransaction.Segments, seg)
	if seg.Get(2) != a.curTransaction.Header.ControlNumber {
		a.h.Record(diag.Diagnostic{
			Severity: diag.WARNING,
			Code:     "CONTROL_NUMBER_MISMATCH",
			Message:  "SE control number does not match the opening ST control number",
			Value:    seg.Get(2),
		})
	}
	claimed := seg.Get(1)
	if claimed != "" {
		if n, err := strconv.Atoi(claimed); err == nil {
			a.curTransaction.Header.ClaimedSegmentCount = n
		}
		actual := len(a.curTransaction.Segments)
		if claimed != itoa(actual) {
			a.h.Record(diag.Diagnostic{
				Severity: diag.INFO,
				Code:     "SHORT_SEGMENT",
				Message:  "SE segment count claim does not match the number of segments actually framed",
				Value:    claimed,
			})
		}
	}
	a.curTransaction = nil
	a.state = inGroup
}

func (a *assembler) onGE(seg tokenizer.RawSegment) {
	if a.state != inGroup {
		a.sequenceError("GE encountered outside an open functional group")
		return
	}
	if seg.Get(2) != a.curGroup.ControlNumber {
		a.h.Record(diag.Diagnostic{
			Severity: diag.WARNING,
			Code:     "CONTROL_NUMBER_MISMATCH",
			Message:  "GE control number does not match the opening GS control number",
			Value:    seg.Get(2),
		})
	}
	a.curGroup = nil
	a.state = inInterchange
}

func (a *assembler) onIEA(seg tokenizer.RawSegment) {
	if a.state != inInterchange {
		a.sequenceError("IEA encountered outside an open interchange")
		return
	}
	if seg.Get(2) != a.curInterchange.ControlNumber {
		a.h.Record(diag.Diagnostic{
			Severity: diag.WARNING,
			Code:     "CONTROL_NUMBER_MISMATCH",
			Message:  "IEA control number does not match the opening ISA control number",
			Value:    seg.Get(2),
		})
	}
	a.curInterchange = nil
	a.state = outside
}

// buffer attaches a non-envelope segment to the open transaction frame.
// Outside a transaction there is no frame to hold it: group- and
// interchange-level segments are dropped without a diagnostic.
func (a *assembler) buffer(seg tokenizer.RawSegment) {
	switch {
	case a.state == inTransaction:
		a.curTransaction.Segments = append(a.curTransaction.Segments, seg)
	case a.curGroup != nil:
		// No open transaction: segments between GS and the first ST,
		// or between an SE and the next ST, have no owner to attach
		// to other than being dropped; nothing in the built-in
		// transaction set expects this, so it is silently ignored.
	}
}

// closeDangling force-closes any still-open frames at end of input (or
// before starting a new interchange mid-stream), recovering to a
// plausible level rather than losing already-framed data.
func (a *assembler) closeDangling() {
	if a.state == inTransaction && a.curTransaction != nil {
		a.curGroup.Transactions[len(a.curGroup.Transactions)-1] = *a.curTransaction
		a.curTransaction = nil
	}
	if a.curGroup != nil && a.curInterchange != nil {
		a.curGroup = nil
	}
	if a.curInterchange != nil {
		a.curInterchange = nil
	}
	a.state = outside
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
