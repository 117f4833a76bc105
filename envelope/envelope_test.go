package envelope

import (
	"testing"

	"github.com/edihealth/x12edi/diag"
	"github.com/edihealth/x12edi/tokenizer"
)

func seg(elements ...string) tokenizer.RawSegment {
	return tokenizer.RawSegment{Elements: elements}
}

func wellFormedSegments() []tokenizer.RawSegment {
	return []tokenizer.RawSegment{
		seg("ISA", "00", "", "00", "", "ZZ", "SENDER", "ZZ", "RECEIVER", "230101", "1253", "^", "00501", "000000001", "0", "P", ":"),
		seg("GS", "HP", "SENDER", "RECEIVER", "20230101", "1253", "1", "X", "005010X221A1"),
		seg("ST", "835", "0001"),
		seg("BPR", "I", "100.00"),
		seg("SE", "3", "0001"),
		seg("GE", "1", "1"),
		seg("IEA", "1", "000000001"),
	}
}

func TestAssembleWellFormed(t *testing.T) {
	h := diag.NewCollect()
	result := Assemble(wellFormedSegments(), h)

	if len(h.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", h.Diagnostics())
	}
	if len(result.Interchanges) != 1 {
		t.Fatalf("got %d interchanges, want 1", len(result.Interchanges))
	}
	ic := result.Interchanges[0]
	if ic.ControlNumber != "000000001" {
		t.Errorf("interchange control number = %q, want 000000001", ic.ControlNumber)
	}
	if len(ic.FunctionalGroups) != 1 {
		t.Fatalf("got %d functional groups, want 1", len(ic.FunctionalGroups))
	}
	fg := ic.FunctionalGroups[0]
	if len(fg.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(fg.Transactions))
	}
	txn := fg.Transactions[0]
	if txn.Header.SetCode != "835" || txn.Header.ControlNumber != "0001" {
		t.Errorf("unexpected header: %+v", txn.Header)
	}
	if len(txn.Segments) != 3 {
		t.Errorf("got %d segments in the frame, want 3 (ST, BPR, SE)", len(txn.Segments))
	}
}

func TestAssembleControlNumberMismatch(t *testing.T) {
	segments := wellFormedSegments()
	segments[4] = seg("SE", "2", "9999") // SE02 != ST02
	h := diag.NewCollect()
	Assemble(segments, h)

	found := false
	for _, d := range h.Diagnostics() {
		if d.Code == "CONTROL_NUMBER_MISMATCH" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected CONTROL_NUMBER_MISMATCH, got %v", h.Diagnostics())
	}
}

func TestAssembleSequenceError(t *testing.T) {
	// GS with no preceding ISA.
	segments := []tokenizer.RawSegment{
		seg("GS", "HP", "SENDER", "RECEIVER", "20230101", "1253", "1", "X", "005010X221A1"),
	}
	h := diag.NewCollect()
	result := Assemble(segments, h)

	found := false
	for _, d := range h.Diagnostics() {
		if d.Code == "ENVELOPE_SEQUENCE_ERROR" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ENVELOPE_SEQUENCE_ERROR, got %v", h.Diagnostics())
	}
	if len(result.Interchanges) != 0 {
		t.Errorf("got %d interchanges, want 0", len(result.Interchanges))
	}
}

func TestAssembleDuplicateControlNumber(t *testing.T) {
	first := wellFormedSegments()
	second := wellFormedSegments() // same ISA13/IEA02 control number
	segments := append(first, second...)

	h := diag.NewCollect()
	result := Assemble(segments, h)

	if len(result.Interchanges) != 2 {
		t.Fatalf("got %d interchanges, want 2", len(result.Interchanges))
	}
	found := false
	for _, d := range h.Diagnostics() {
		if d.Code == "DUPLICATE_CONTROL_NUMBER" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected DUPLICATE_CONTROL_NUMBER, got %v", h.Diagnostics())
	}
}
