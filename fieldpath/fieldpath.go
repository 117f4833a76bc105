// Package fieldpath implements C6: resolving a dotted, optionally
// indexed path against an ast.Navigable tree without reflection
// (spec.md §4.6, §9 Design Notes). Resolution is hand-written per AST
// node type via ast.Navigable.Field, matching the tree speedata-einvoice
// builds by hand for its own schema rather than reaching for
// encoding/json-style struct tags.
package fieldpath

import (
	"strconv"
	"strings"

	"github.com/edihealth/x12edi/ast"
)

// Resolve walks path (grammar: segment('.'segment)*, each segment an
// optionally-indexed field name like "services[0]") against root and
// returns the resolved value, or nil if any step is missing, the wrong
// shape, or an index is negative or out of range. Resolution never
// panics on malformed input; it short-circuits to nil instead
// (spec.md §4.6 null-propagation rule).
func Resolve(root any, path string) any {
	if path == "" {
		return root
	}
	cur := root
	for _, raw := range strings.Split(path, ".") {
		if cur == nil {
			return nil
		}
		name, idx, hasIndex := parseSegment(raw)
		if name == "header" {
			if txn, ok := cur.(*ast.Transaction); ok {
				cur = &txn.Header
				if hasIndex {
					cur = indexInto(cur, idx)
				}
				continue
			}
		}
		nav, ok := cur.(ast.Navigable)
		if !ok {
			return nil
		}
		val, found := nav.Field(name)
		if !found {
			return nil
		}
		if hasIndex {
			val = indexInto(val, idx)
		}
		cur = val
	}
	return cur
}

// parseSegment splits "name" or "name[i]" into its field name and
// optional integer index. A malformed index (non-numeric, unterminated
// bracket) is treated as no index at all; resolution then fails at the
// Field lookup or type-assertion stage instead.
func parseSegment(seg string) (name string, index int, hasIndex bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 || !strings.HasSuffix(seg, "]") {
		return seg, 0, false
	}
	n, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil {
		return seg, 0, false
	}
	return seg[:open], n, true
}

// indexInto applies an [i] index to a resolved value. Only []any
// (the shape every Navigable.Field returns for repeating fields) is
// indexable; anything else, or an index outside [0,len), resolves to
// nil rather than panicking.
func indexInto(val any, idx int) any {
	slice, ok := val.([]any)
	if !ok {
		return nil
	}
	if idx < 0 || idx >= len(slice) {
		return nil
	}
	return slice[idx]
}
