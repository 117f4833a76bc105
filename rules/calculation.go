package rules

import (
	"github.com/edihealth/x12edi/fieldpath"
	"github.com/shopspring/decimal"
)

// Calculation operator constants (spec.md §4.7 calculation grammar).
const (
	CalcSum      = "sum"
	CalcSubtract = "subtract"
	CalcMultiply = "multiply"
	CalcDivide   = "divide"
	CalcField    = "field"
	CalcConst    = "const"
)

// Calculation is a small arithmetic tree evaluated against a
// transaction root: sum/subtract/multiply/divide over operands that
// are themselves either nested calculations, a resolved field path, or
// a literal constant. All arithmetic uses decimal.Decimal so money
// never passes through a float.
type Calculation struct {
	Op        string
	Operands  []*Calculation
	FieldPath string
	Const     decimal.Decimal
}

// Eval resolves c against root. The second return value is false if
// a field operand fails to resolve to a decimal-compatible value
// (except under sum, which counts such an operand as zero), on
// divide-by-zero, or for an unknown Op; callers should treat a false
// result as "the calculation could not be evaluated", not as zero.
func (c *Calculation) Eval(root any) (decimal.Decimal, bool) {
	switch c.Op {
	case CalcConst:
		return c.Const, true
	case CalcField:
		val := fieldpath.Resolve(root, c.FieldPath)
		return toDecimal(val)
	case CalcSum:
		return c.foldSum(root), true
	case CalcSubtract:
		return c.foldSubtract(root)
	case CalcMultiply:
		return c.fold(root, decimal.NewFromInt(1), decimal.Decimal.Mul)
	case CalcDivide:
		return c.foldDivide(root)
	default:
		return decimal.Zero, false
	}
}

// foldSum sums every operand that resolves, treating an unresolved
// operand as zero rather than aborting the whole sum (spec.md §4.7:
// "sum: nulls treated as zero", unlike subtract/multiply/divide).
func (c *Calculation) foldSum(root any) decimal.Decimal {
	acc := decimal.Zero
	for _, op := range c.Operands {
		if v, ok := op.Eval(root); ok {
			acc = acc.Add(v)
		}
	}
	return acc
}

func (c *Calculation) fold(root any, start decimal.Decimal, combine func(decimal.Decimal, decimal.Decimal) decimal.Decimal) (decimal.Decimal, bool) {
	acc := start
	for _, op := range c.Operands {
		v, ok := op.Eval(root)
		if !ok {
			return decimal.Zero, false
		}
		acc = combine(acc, v)
	}
	return acc, true
}

// foldSubtract treats the first operand as the minuend and subtracts
// every subsequent operand from it.
func (c *Calculation) foldSubtract(root any) (decimal.Decimal, bool) {
	if len(c.Operands) == 0 {
		return decimal.Zero, false
	}
	acc, ok := c.Operands[0].Eval(root)
	if !ok {
		return decimal.Zero, false
	}
	for _, op := range c.Operands[1:] {
		v, ok := op.Eval(root)
		if !ok {
			return decimal.Zero, false
		}
		acc = acc.Sub(v)
	}
	return acc, true
}

func (c *Calculation) foldDivide(root any) (decimal.Decimal, bool) {
	if len(c.Operands) == 0 {
		return decimal.Zero, false
	}
	acc, ok := c.Operands[0].Eval(root)
	if !ok {
		return decimal.Zero, false
	}
	for _, op := range c.Operands[1:] {
		v, ok := op.Eval(root)
		if !ok {
			return decimal.Zero, false
		}
		if v.IsZero() {
			return decimal.Zero, false
		}
		acc = acc.Div(v)
	}
	return acc, true
}

func toDecimal(val any) (decimal.Decimal, bool) {
	switch v := val.(type) {
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
