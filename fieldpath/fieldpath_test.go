package fieldpath

import (
	"testing"

	"github.com/edihealth/x12edi/ast"
	"github.com/shopspring/decimal"
)

func sampleTransaction() *ast.Transaction {
	return &ast.Transaction{
		Header: ast.TransactionHeader{SetCode: "835", ControlNumber: "0001"},
		Payload: &ast.PaymentAdvice835{
			FinancialInfo: ast.FinancialInfo835{
				TotalPaid: decimal.NewFromFloat(150.25),
			},
			Payer: &ast.Party{Name: "Acme Health Plan"},
			Claims: []*ast.Claim835{
				{ClaimID: "CLM1", TotalPaid: decimal.NewFromInt(100)},
				{ClaimID: "CLM2", TotalPaid: decimal.NewFromInt(50)},
			},
		},
	}
}

func TestResolveScalarField(t *testing.T) {
	txn := sampleTransaction()
	got := Resolve(txn, "financial_info.total_paid")
	d, ok := got.(decimal.Decimal)
	if !ok {
		t.Fatalf("got %T, want decimal.Decimal", got)
	}
	if !d.Equal(decimal.NewFromFloat(150.25)) {
		t.Errorf("got %s, want 150.25", d)
	}
}

func TestResolveHeaderPrefix(t *testing.T) {
	txn := sampleTransaction()
	got := Resolve(txn, "header.set_code")
	if got != "835" {
		t.Errorf("got %v, want 835", got)
	}
}

func TestResolveNestedPartyField(t *testing.T) {
	txn := sampleTransaction()
	got := Resolve(txn, "payer.name")
	if got != "Acme Health Plan" {
		t.Errorf("got %v, want Acme Health Plan", got)
	}
}

func TestResolveIndexedSequence(t *testing.T) {
	txn := sampleTransaction()
	got := Resolve(txn, "claims[1].claim_id")
	if got != "CLM2" {
		t.Errorf("got %v, want CLM2", got)
	}
}

func TestResolveOutOfRangeIndexIsNull(t *testing.T) {
	txn := sampleTransaction()
	if got := Resolve(txn, "claims[99].claim_id"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestResolveNegativeIndexIsNull(t *testing.T) {
	txn := sampleTransaction()
	if got := Resolve(txn, "claims[-1].claim_id"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestResolveMissingFieldShortCircuits(t *testing.T) {
	txn := sampleTransaction()
	if got := Resolve(txn, "payee.name"); got != nil {
		t.Errorf("got %v, want nil (payee is absent)", got)
	}
}

func TestResolveUnknownFieldIsNull(t *testing.T) {
	txn := sampleTransaction()
	if got := Resolve(txn, "not_a_real_field"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestResolveEmptyPathReturnsRoot(t *testing.T) {
	txn := sampleTransaction()
	if got := Resolve(txn, ""); got != any(txn) {
		t.Errorf("got %v, want the root itself", got)
	}
}
