package txn

import (
	"testing"

	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/tokenizer"
)

func sample837PFrame() []tokenizer.RawSegment {
	return []tokenizer.RawSegment{
		seg835("ST", "837", "0001"),
		seg835("BHT", "0019", "00", "REF123", "20230115"),
		seg835("HL", "1", "", "20"),
		seg835("N1", "41", "Clearinghouse Inc"),
		seg835("N1", "40", "Acme Health Plan"),
		seg835("CLM", "CLM001", "500.00", "", "", "11:B:1"),
		seg835("NM1", "IL", "1", "Doe", "John"),
		seg835("HI", "ABK:R591", "ABF:M25.5"),
		seg835("SV1", "HC:99213", "150.00", "UN", "1", "", "", "1>2"),
		seg835("SE", "9", "0001"),
	}
}

func TestParser837PValidateEnvelope(t *testing.T) {
	p := Parser837P{}
	if err := p.ValidateEnvelope(sample837PFrame()); err != nil {
		t.Fatalf("ValidateEnvelope returned error: %v", err)
	}
	missingBHT := []tokenizer.RawSegment{seg835("ST", "837", "0001"), seg835("SE", "1", "0001")}
	if err := p.ValidateEnvelope(missingBHT); err == nil {
		t.Fatal("expected an error for a frame with no BHT segment")
	}
}

func TestParser837PParse(t *testing.T) {
	p := Parser837P{}
	payload, err := p.Parse(sample837PFrame())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	claimDoc, ok := payload.(*ast.ProfessionalClaim837P)
	if !ok {
		t.Fatalf("got payload type %T, want *ast.ProfessionalClaim837P", payload)
	}

	if claimDoc.ReferenceID != "REF123" {
		t.Errorf("ReferenceID = %q, want REF123", claimDoc.ReferenceID)
	}
	if len(claimDoc.Hierarchy) != 1 || claimDoc.Hierarchy[0].Level != "20" {
		t.Fatalf("Hierarchy = %+v, want one level-20 node", claimDoc.Hierarchy)
	}
	if claimDoc.Submitter == nil || claimDoc.Submitter.Name != "Clearinghouse Inc" {
		t.Fatalf("Submitter = %+v, want Clearinghouse Inc", claimDoc.Submitter)
	}
	if claimDoc.Receiver == nil || claimDoc.Receiver.Name != "Acme Health Plan" {
		t.Fatalf("Receiver = %+v, want Acme Health Plan", claimDoc.Receiver)
	}

	if len(claimDoc.Claims) != 1 {
		t.Fatalf("got %d claims, want 1", len(claimDoc.Claims))
	}
	claim := claimDoc.Claims[0]
	if claim.FacilityCode != "11" {
		t.Errorf("FacilityCode = %q, want 11", claim.FacilityCode)
	}
	if claim.Subscriber == nil || claim.Subscriber.Name != "Doe" {
		t.Fatalf("Subscriber = %+v, want Name Doe", claim.Subscriber)
	}
	if len(claim.Diagnoses) != 2 || claim.Diagnoses[0].Code != "R591" || claim.Diagnoses[1].Code != "M25.5" {
		t.Fatalf("Diagnoses = %+v, want [R591 M25.5]", claim.Diagnoses)
	}
	if len(claim.ServiceLines) != 1 {
		t.Fatalf("got %d service lines, want 1", len(claim.ServiceLines))
	}
	line := claim.ServiceLines[0]
	if line.ProcedureCode != "99213" {
		t.Errorf("ProcedureCode = %q, want 99213", line.ProcedureCode)
	}
	if len(line.DiagnosisPointers) != 2 || line.DiagnosisPointers[0] != 0 || line.DiagnosisPointers[1] != 1 {
		t.Fatalf("DiagnosisPointers = %v, want [0 1]", line.DiagnosisPointers)
	}
}
