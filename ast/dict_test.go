package ast

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaymentAdvice835ToDict(t *testing.T) {
	p := &PaymentAdvice835{
		TraceNumber: "TRACE1",
		Payer:       &Party{Name: "Acme Health Plan", ID: "PR1"},
		FinancialInfo: FinancialInfo835{
			TotalPaid:            decimal.NewFromInt(150),
			CreditDebitIndicator: "C",
			PaymentMethod:        "ACH",
		},
		Claims: []*Claim835{
			{
				ClaimID:     "CLM001",
				TotalCharge: decimal.NewFromInt(200),
				TotalPaid:   decimal.NewFromInt(150),
				Adjustments: []Adjustment{{GroupCode: "PR", ReasonCode: "1", Amount: decimal.NewFromInt(50)}},
			},
		},
	}

	dict := p.ToDict()
	if dict["set_code"] != "835" {
		t.Errorf("set_code = %v, want 835", dict["set_code"])
	}
	if dict["trace_number"] != "TRACE1" {
		t.Errorf("trace_number = %v, want TRACE1", dict["trace_number"])
	}
	payer, ok := dict["payer"].(map[string]any)
	if !ok || payer["name"] != "Acme Health Plan" {
		t.Fatalf("payer = %v, want a map with name Acme Health Plan", dict["payer"])
	}

	financial, ok := dict["financial_info"].(map[string]any)
	if !ok || financial["total_paid"] != "150" {
		t.Fatalf("financial_info.total_paid = %v, want \"150\"", financial["total_paid"])
	}

	claims, ok := dict["claims"].([]any)
	if !ok || len(claims) != 1 {
		t.Fatalf("claims = %v, want a single-element slice", dict["claims"])
	}
	claim, ok := claims[0].(map[string]any)
	if !ok || claim["claim_id"] != "CLM001" {
		t.Fatalf("claims[0] = %v, want claim_id CLM001", claims[0])
	}
	adjustments, ok := claim["adjustments"].([]any)
	if !ok || len(adjustments) != 1 {
		t.Fatalf("adjustments = %v, want a single-element slice", claim["adjustments"])
	}
}

func TestTransactionToDictOmitsPayloadWithoutToDict(t *testing.T) {
	txn := &Transaction{
		Header:  TransactionHeader{SetCode: "270", ControlNumber: "0001"},
		Payload: &EligibilityInquiry270{},
	}
	dict := txn.ToDict()
	header, ok := dict["header"].(map[string]any)
	if !ok || header["set_code"] != "270" {
		t.Fatalf("header = %v, want set_code 270", dict["header"])
	}
	if _, ok := dict["payload"]; ok {
		t.Error("expected no payload key when the payload type has no ToDict method")
	}
}

func TestDocumentToDictNesting(t *testing.T) {
	doc := sampleDoc()
	dict := doc.ToDict()
	interchanges, ok := dict["interchanges"].([]any)
	if !ok || len(interchanges) != 1 {
		t.Fatalf("interchanges = %v, want a single-element slice", dict["interchanges"])
	}
	ic, ok := interchanges[0].(map[string]any)
	if !ok || ic["control_number"] != "000000001" {
		t.Fatalf("interchange = %v, want control_number 000000001", interchanges[0])
	}
	groups, ok := ic["functional_groups"].([]any)
	if !ok || len(groups) != 1 {
		t.Fatalf("functional_groups = %v, want a single-element slice", ic["functional_groups"])
	}
}
