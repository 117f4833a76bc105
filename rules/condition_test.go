package rules

import (
	"testing"

	"github.com/edihealth/x12edi/ast"
)

func sampleEligibilityRoot() *ast.Transaction {
	return &ast.Transaction{
		Header: ast.TransactionHeader{SetCode: "271"},
		Payload: &ast.EligibilityResponse271{
			Benefits: []ast.BenefitInfo{
				{EligibilityCode: "1", CoverageLevel: "IND"},
			},
		},
	}
}

func leaf(path, op string, value any) *Condition {
	return &Condition{Op: CondLeaf, Leaf: &LeafCondition{Path: path, Operator: op, Value: value}}
}

func TestConditionLeafExists(t *testing.T) {
	root := sampleEligibilityRoot()
	if !leaf("benefits[0].eligibility_code", OpExists, nil).Eval(root) {
		t.Error("expected eligibility_code to exist")
	}
	if leaf("benefits[0].nonexistent", OpExists, nil).Eval(root) {
		t.Error("expected nonexistent field to not exist")
	}
}

func TestConditionLeafEq(t *testing.T) {
	root := sampleEligibilityRoot()
	if !leaf("benefits[0].coverage_level", OpEq, "IND").Eval(root) {
		t.Error("expected coverage_level == IND")
	}
	if leaf("benefits[0].coverage_level", OpEq, "FAM").Eval(root) {
		t.Error("expected coverage_level != FAM")
	}
}

func TestConditionAndOr(t *testing.T) {
	root := sampleEligibilityRoot()
	and := &Condition{Op: CondAnd, Operands: []*Condition{
		leaf("benefits[0].eligibility_code", OpEq, "1"),
		leaf("benefits[0].coverage_level", OpEq, "IND"),
	}}
	if !and.Eval(root) {
		t.Error("expected and() to be true")
	}

	or := &Condition{Op: CondOr, Operands: []*Condition{
		leaf("benefits[0].coverage_level", OpEq, "FAM"),
		leaf("benefits[0].coverage_level", OpEq, "IND"),
	}}
	if !or.Eval(root) {
		t.Error("expected or() to be true")
	}
}

func TestConditionIfThen(t *testing.T) {
	root := sampleEligibilityRoot()
	// If the premise is false, if_then is vacuously true.
	falsePremise := &Condition{
		Op:   CondIfThen,
		If:   leaf("benefits[0].coverage_level", OpEq, "FAM"),
		Then: leaf("benefits[0].eligibility_code", OpEq, "NEVER"),
	}
	if !falsePremise.Eval(root) {
		t.Error("expected if_then with a false premise to be vacuously true")
	}

	truePremise := &Condition{
		Op:   CondIfThen,
		If:   leaf("benefits[0].coverage_level", OpEq, "IND"),
		Then: leaf("benefits[0].eligibility_code", OpEq, "1"),
	}
	if !truePremise.Eval(root) {
		t.Error("expected if_then with a true premise and true consequent to be true")
	}
}

func TestConditionInNotIn(t *testing.T) {
	root := sampleEligibilityRoot()
	in := &Condition{Op: CondLeaf, Leaf: &LeafCondition{
		Path: "benefits[0].coverage_level", Operator: OpIn, Values: []any{"IND", "FAM"},
	}}
	if !in.Eval(root) {
		t.Error("expected coverage_level in [IND, FAM]")
	}
	notIn := &Condition{Op: CondLeaf, Leaf: &LeafCondition{
		Path: "benefits[0].coverage_level", Operator: OpNotIn, Values: []any{"FAM"},
	}}
	if !notIn.Eval(root) {
		t.Error("expected coverage_level not_in [FAM]")
	}
}

func TestConditionInScalarFallsBackToEq(t *testing.T) {
	root := sampleEligibilityRoot()
	in := &Condition{Op: CondLeaf, Leaf: &LeafCondition{
		Path: "benefits[0].coverage_level", Operator: OpIn, Value: "IND",
	}}
	if !in.Eval(root) {
		t.Error("expected in with a scalar Value and no Values to degrade to eq and match")
	}

	notIn := &Condition{Op: CondLeaf, Leaf: &LeafCondition{
		Path: "benefits[0].coverage_level", Operator: OpNotIn, Value: "FAM",
	}}
	if !notIn.Eval(root) {
		t.Error("expected not_in with a scalar Value to degrade to ne and match")
	}
}

func TestConditionGtLt(t *testing.T) {
	root := sampleEligibilityRoot()
	if !leaf("benefits[0].eligibility_code", OpGte, "1").Eval(root) {
		t.Error("expected eligibility_code >= 1")
	}
	if leaf("benefits[0].eligibility_code", OpLt, "1").Eval(root) {
		t.Error("expected eligibility_code not < 1")
	}
}
