// Package rules implements C7: the business-rule data model and the
// engine that evaluates field-level and cross-field validations against
// a parsed transaction, reporting findings through a diag.Handler
// (spec.md §4.7).
package rules

import (
	"github.com/edihealth/x12edi/diag"
	"github.com/shopspring/decimal"
)

// FieldValidator kind constants (spec.md §4.7 validator catalog).
const (
	KindRequired            = "required"
	KindConditionalRequired = "conditional_required"
	KindCurrencyFormat      = "currency_format"
	KindDateFormat          = "date_format"
	KindNPIFormat           = "npi_format"
	KindNPIChecksum         = "npi_checksum"
	KindTaxIDFormat         = "tax_id_format"
	KindRange               = "range"
	KindEnum                = "enum"
	KindRegex               = "regex"
)

// CrossFieldValidation kind constants.
const (
	KindBalanceCheck     = "balance_check"
	KindConsistencyCheck = "consistency_check"
	KindCalculationCheck = "calculation_check"
	KindLogicalCheck     = "logical_check"
)

// Relation constants for KindConsistencyCheck (spec.md §4.7).
const (
	RelEqual        = "equal"
	RelNotEqual     = "not_equal"
	RelGreaterThan  = "greater_than"
	RelLessThan     = "less_than"
	RelGreaterEqual = "greater_equal"
	RelLessEqual    = "less_equal"
)

// FieldValidator checks a single resolved field.
type FieldValidator struct {
	Path string
	Kind string

	// KindConditionalRequired
	When *Condition

	// KindRange, and KindCurrencyFormat's optional override of the
	// default ±999,999,999.99 bound.
	Min, Max decimal.Decimal
	HasMin   bool
	HasMax   bool

	// KindEnum
	EnumValues []string

	// KindRegex
	Pattern string
}

// CrossFieldValidation checks a relationship across several fields.
type CrossFieldValidation struct {
	Kind string

	// KindBalanceCheck: Left and Right must be equal within Tolerance.
	Left, Right *Calculation
	Tolerance   decimal.Decimal

	// KindConsistencyCheck: Field1 and Field2 compared under Relation
	// (empty Relation defaults to RelEqual).
	Field1, Field2 string
	Relation       string

	// KindCalculationCheck: Calculation's result must equal the value
	// at ResultPath within Tolerance.
	Calculation *Calculation
	ResultPath  string

	// KindLogicalCheck.
	Logical *Condition
}

// Rule is one named business rule, scoped to the transaction codes it
// applies to (empty TransactionCodes means "every transaction type").
type Rule struct {
	Name             string
	Category         string // "field" or "cross_field"
	TransactionCodes []string
	Severity         diag.Severity

	Field      *FieldValidator
	CrossField *CrossFieldValidation
}

func (r Rule) appliesTo(setCode string) bool {
	if len(r.TransactionCodes) == 0 {
		return true
	}
	for _, c := range r.TransactionCodes {
		if c == setCode {
			return true
		}
	}
	return false
}
