package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/diag"
	"github.com/edihealth/x12edi/fieldpath"
	"github.com/shopspring/decimal"
)

// defaultCurrencyMin/Max are the currency_format range bounds applied
// when a FieldValidator doesn't set its own (spec.md §4.7: "within
// [min_value, max_value] (defaults ±999,999,999.99)").
var (
	defaultCurrencyMax = decimal.RequireFromString("999999999.99")
	defaultCurrencyMin = defaultCurrencyMax.Neg()
)

// fieldValidationCode maps a FieldValidator kind to its §7 taxonomy
// code, e.g. "tax_id_format" -> "FIELD_VALIDATION_TAX_ID_FORMAT".
func fieldValidationCode(kind string) string {
	return "FIELD_VALIDATION_" + strings.ToUpper(kind)
}

// Engine evaluates a fixed rule set against transaction roots,
// reporting diagnostics through a diag.Handler. Severity overrides let
// a deployment raise or lower a built-in rule's severity without
// forking the catalog (spec.md §4.7 supplemented feature).
type Engine struct {
	rules     []Rule
	overrides map[string]diag.Severity
}

// NewEngine builds an Engine from rules, evaluated in order.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules, overrides: map[string]diag.Severity{}}
}

// WithSeverityOverride replaces the severity of every rule named name
// for subsequent Validate calls and returns the Engine for chaining.
func (e *Engine) WithSeverityOverride(name string, sev diag.Severity) *Engine {
	e.overrides[name] = sev
	return e
}

func (e *Engine) severityFor(r Rule) diag.Severity {
	if sev, ok := e.overrides[r.Name]; ok {
		return sev
	}
	return r.Severity
}

// Validate runs every rule scoped to setCode against root, recording a
// Diagnostic through h for each failure.
func (e *Engine) Validate(root any, setCode string, h diag.Handler) {
	for _, r := range e.rules {
		if !r.appliesTo(setCode) {
			continue
		}
		switch r.Category {
		case "field":
			e.evalField(root, r, h)
		case "cross_field":
			e.evalCrossField(root, r, h)
		}
	}
}

func (e *Engine) report(h diag.Handler, r Rule, code, path, message string, value any, extras map[string]any) {
	h.Record(diag.Diagnostic{
		Severity:     e.severityFor(r),
		Code:         code,
		Message:      message,
		Path:         path,
		Value:        value,
		RuleName:     r.Name,
		RuleCategory: r.Category,
		Extras:       extras,
	})
}

func (e *Engine) evalField(root any, r Rule, h diag.Handler) {
	fv := r.Field
	// A validator with no Path (an unbound Builtin catalog entry) is
	// skipped.
	if fv == nil || fv.Path == "" {
		return
	}
	val := fieldpath.Resolve(root, fv.Path)

	switch fv.Kind {
	case KindRequired:
		if isEmpty(val) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is required", fv.Path), val, nil)
		}
	case KindConditionalRequired:
		if fv.When.Eval(root) && isEmpty(val) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is required under the configured condition", fv.Path), val, nil)
		}
	case KindCurrencyFormat:
		if isEmpty(val) {
			return
		}
		d, ok := toDecimal(val)
		if !ok {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is not a valid currency amount", fv.Path), val, nil)
			return
		}
		if exp := -d.Exponent(); exp > 2 {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s has more than 2 decimal places", fv.Path), val,
				map[string]any{"exponent": d.Exponent()})
			return
		}
		min, max := defaultCurrencyMin, defaultCurrencyMax
		if fv.HasMin {
			min = fv.Min
		}
		if fv.HasMax {
			max = fv.Max
		}
		if d.LessThan(min) || d.GreaterThan(max) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is outside the allowed currency range", fv.Path), val,
				map[string]any{"min_value": min, "max_value": max})
		}
	case KindDateFormat:
		if isEmpty(val) {
			return
		}
		d, ok := val.(ast.DateField)
		if !ok || d.ISO == "" {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is not a recognizable date", fv.Path), val, nil)
		}
	case KindNPIFormat:
		if isEmpty(val) {
			return
		}
		if !npiFormatRe.MatchString(asString(val)) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is not a 10-digit NPI", fv.Path), val, nil)
		}
	case KindNPIChecksum:
		if isEmpty(val) {
			return
		}
		if !ValidNPIChecksum(asString(val)) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s fails the NPI Luhn check digit", fv.Path), val, nil)
		}
	case KindTaxIDFormat:
		if isEmpty(val) {
			return
		}
		if !taxIDRe.MatchString(asString(val)) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is not a recognizable tax ID", fv.Path), val, nil)
		}
	case KindRange:
		d, ok := toDecimal(val)
		if !ok {
			return
		}
		if fv.HasMin && d.LessThan(fv.Min) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is below the allowed minimum", fv.Path), val, nil)
		}
		if fv.HasMax && d.GreaterThan(fv.Max) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is above the allowed maximum", fv.Path), val, nil)
		}
	case KindEnum:
		if isEmpty(val) {
			return
		}
		s := asString(val)
		for _, allowed := range fv.EnumValues {
			if s == allowed {
				return
			}
		}
		e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s is not one of the allowed values", fv.Path), val, nil)
	case KindRegex:
		if isEmpty(val) {
			return
		}
		re, err := regexp.Compile(fv.Pattern)
		if err != nil {
			e.report(h, r, "FIELD_VALIDATION_ERROR", fv.Path, fmt.Sprintf("%s regex pattern %q is invalid: %v", fv.Path, fv.Pattern, err), val, nil)
			return
		}
		if !re.MatchString(asString(val)) {
			e.report(h, r, fieldValidationCode(fv.Kind), fv.Path, fmt.Sprintf("%s does not match the required pattern", fv.Path), val, nil)
		}
	}
}

func (e *Engine) evalCrossField(root any, r Rule, h diag.Handler) {
	cf := r.CrossField
	if cf == nil {
		return
	}
	switch cf.Kind {
	case KindBalanceCheck:
		left, ok1 := cf.Left.Eval(root)
		right, ok2 := cf.Right.Eval(root)
		if !ok1 || !ok2 {
			return
		}
		difference := left.Sub(right).Abs()
		if difference.GreaterThan(cf.Tolerance) {
			e.report(h, r, "BALANCE_MISMATCH", "", "balance check failed: amounts do not reconcile within tolerance", difference,
				map[string]any{"total_value": left, "sum_value": right, "difference": difference})
		}
	case KindConsistencyCheck:
		v1 := fieldpath.Resolve(root, cf.Field1)
		v2 := fieldpath.Resolve(root, cf.Field2)
		if !compareRelation(v1, v2, cf.Relation) {
			e.report(h, r, "CONSISTENCY_CHECK_FAILED", cf.Field2,
				fmt.Sprintf("%s and %s do not satisfy %s", cf.Field1, cf.Field2, relationOrDefault(cf.Relation)), v2,
				map[string]any{"field1": cf.Field1, "field2": cf.Field2, "value1": v1, "value2": v2})
		}
	case KindCalculationCheck:
		computed, ok := cf.Calculation.Eval(root)
		if !ok {
			return
		}
		actual, ok := toDecimal(fieldpath.Resolve(root, cf.ResultPath))
		if !ok {
			return
		}
		difference := computed.Sub(actual).Abs()
		if difference.GreaterThan(cf.Tolerance) {
			e.report(h, r, "CALCULATION_MISMATCH", cf.ResultPath, "calculation check failed: computed value does not match reported value", actual,
				map[string]any{"expected_value": computed, "actual_value": actual, "difference": difference})
		}
	case KindLogicalCheck:
		if !cf.Logical.Eval(root) {
			e.report(h, r, "LOGICAL_CHECK_FAILED", "", "logical condition failed", nil, nil)
		}
	}
}

// relationOrDefault returns relation, or RelEqual if it is empty.
func relationOrDefault(relation string) string {
	if relation == "" {
		return RelEqual
	}
	return relation
}

// compareRelation evaluates a and b under relation, reusing the same
// comparison primitives the logical-condition grammar uses for its
// ordering operators (spec.md §4.7 consistency_check).
func compareRelation(a, b any, relation string) bool {
	switch relationOrDefault(relation) {
	case RelEqual:
		return compareEqual(a, b)
	case RelNotEqual:
		return !compareEqual(a, b)
	case RelGreaterThan:
		return compareOrdered(a, b, OpGt)
	case RelLessThan:
		return compareOrdered(a, b, OpLt)
	case RelGreaterEqual:
		return compareOrdered(a, b, OpGte)
	case RelLessEqual:
		return compareOrdered(a, b, OpLte)
	default:
		return compareEqual(a, b)
	}
}

func asString(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}
