package rules

import (
	"fmt"

	"github.com/edihealth/x12edi/fieldpath"
)

// Condition operator constants (spec.md §4.7 logical-condition grammar).
const (
	CondAnd    = "and"
	CondOr     = "or"
	CondIfThen = "if_then"
	CondLeaf   = "leaf"
)

// Leaf operator constants.
const (
	OpExists    = "exists"
	OpNotExists = "not_exists"
	OpEq        = "eq"
	OpNe        = "ne"
	OpGt        = "gt"
	OpLt        = "lt"
	OpGte       = "gte"
	OpLte       = "lte"
	OpIn        = "in"
	OpNotIn     = "not_in"
)

// Condition is a boolean expression tree: and/or combine nested
// conditions, if_then is implication (If false makes the whole node
// true, vacuously), and leaf is a single field comparison.
type Condition struct {
	Op       string
	Operands []*Condition // and, or
	If, Then *Condition   // if_then
	Leaf     *LeafCondition
}

// LeafCondition compares the value resolved at Path against Value (or
// Values, for in/not_in) using Operator.
type LeafCondition struct {
	Path     string
	Operator string
	Value    any
	Values   []any
}

// Eval evaluates c against root.
func (c *Condition) Eval(root any) bool {
	if c == nil {
		return true
	}
	switch c.Op {
	case CondAnd:
		for _, op := range c.Operands {
			if !op.Eval(root) {
				return false
			}
		}
		return true
	case CondOr:
		for _, op := range c.Operands {
			if op.Eval(root) {
				return true
			}
		}
		return len(c.Operands) == 0
	case CondIfThen:
		if !c.If.Eval(root) {
			return true
		}
		return c.Then.Eval(root)
	case CondLeaf:
		return c.Leaf.eval(root)
	default:
		return false
	}
}

func (l *LeafCondition) eval(root any) bool {
	val := fieldpath.Resolve(root, l.Path)
	switch l.Operator {
	case OpExists:
		return !isEmpty(val)
	case OpNotExists:
		return isEmpty(val)
	case OpEq:
		return compareEqual(val, l.Value)
	case OpNe:
		return !compareEqual(val, l.Value)
	case OpGt, OpLt, OpGte, OpLte:
		return compareOrdered(val, l.Value, l.Operator)
	case OpIn:
		return l.matchesSet(val)
	case OpNotIn:
		return !l.matchesSet(val)
	default:
		return false
	}
}

// matchesSet reports whether val matches l's Values list; when Values
// is empty and Value holds a scalar, in/not_in degrades to eq/ne
// (spec.md §9 Open Question: scalar fallback for the list operators).
func (l *LeafCondition) matchesSet(val any) bool {
	if len(l.Values) == 0 {
		return compareEqual(val, l.Value)
	}
	return containsAny(l.Values, val)
}

func isEmpty(val any) bool {
	if val == nil {
		return true
	}
	if s, ok := val.(string); ok {
		return s == ""
	}
	return false
}

func compareEqual(a, b any) bool {
	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Equal(db)
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func compareOrdered(a, b any, op string) bool {
	da, ok1 := toDecimal(a)
	db, ok2 := toDecimal(b)
	if !ok1 || !ok2 {
		return false
	}
	cmp := da.Cmp(db)
	switch op {
	case OpGt:
		return cmp > 0
	case OpLt:
		return cmp < 0
	case OpGte:
		return cmp >= 0
	case OpLte:
		return cmp <= 0
	default:
		return false
	}
}

// containsAny reports whether val matches one of values, falling back
// from decimal comparison to string comparison per value so a mixed
// list of numbers and scalars behaves predictably.
func containsAny(values []any, val any) bool {
	for _, v := range values {
		if compareEqual(val, v) {
			return true
		}
	}
	return false
}
