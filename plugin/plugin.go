// Package plugin implements C5: a registry mapping transaction set
// codes to the parser responsible for them, with directory-based
// descriptor discovery and isolated scratch registries for validating
// a candidate plugin before it is wired into the live registry
// (spec.md §4.3, §9 Design Notes on extensibility).
//
// Go has no safe dynamic-loading story equivalent to the source
// system's runtime plugin import, so parser implementations are always
// statically linked into the binary (see txn.Builtins); what this
// package data-drives is which of those statically-known parsers is
// active for a code, and validates the XML descriptor a deployment
// ships alongside a parser package before trusting it.
package plugin

import (
	"fmt"
	"sync"

	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/diag"
	"github.com/edihealth/x12edi/tokenizer"
)

// TransactionParser is implemented by every transaction-specific
// parser (C4). ValidateEnvelope is called with the raw framed segment
// list before Parse, so a parser can reject a frame (wrong leading
// segment, missing required loop) without building a partial Payload.
type TransactionParser interface {
	SupportedCodes() []string
	ValidateEnvelope(segments []tokenizer.RawSegment) error
	Parse(segments []tokenizer.RawSegment) (ast.Payload, error)
}

// Descriptor describes one registered parser: the transaction codes it
// claims, the factory that builds a fresh parser instance per
// transaction (parsers are not assumed safe for concurrent reuse), and
// an optional schema reference that ValidateAgainstSchema loads as a
// segment manifest.
type Descriptor struct {
	Name            string
	Version         string
	SupportedCodes  []string
	PayloadTypeTag  string
	Factory         func() TransactionParser
	SchemaReference string // path to an XML segment manifest, or "" if none
}

// Registry maps transaction set codes to the Descriptor responsible
// for them. The zero value is not usable; construct with NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	byCode  map[string]Descriptor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byCode: map[string]Descriptor{}}
}

// Register wires d into r, one entry per supported code. Re-registering
// a code that already has an owner is allowed — the new descriptor
// wins — but is reported as PLUGIN_OVERRIDE so a deployment notices an
// unintended shadowing.
func (r *Registry) Register(d Descriptor, h diag.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, code := range d.SupportedCodes {
		if existing, ok := r.byCode[code]; ok && h != nil {
			h.Record(diag.Diagnostic{
				Severity: diag.WARNING,
				Code:     "PLUGIN_OVERRIDE",
				Message:  fmt.Sprintf("plugin %q replaces %q for transaction code %s", d.Name, existing.Name, code),
				Value:    code,
			})
		}
		r.byCode[code] = d
	}
}

// Lookup returns the Descriptor registered for code, if any.
func (r *Registry) Lookup(code string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byCode[code]
	return d, ok
}

// Codes returns every transaction code with a registered Descriptor.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byCode))
	for code := range r.byCode {
		out = append(out, code)
	}
	return out
}

// Scratch returns an isolated copy of r: registering into the copy
// never affects r, letting a caller validate a candidate descriptor
// (or an override) against the rest of the live catalog without any
// risk of it leaking into production lookups.
func (r *Registry) Scratch() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := NewRegistry()
	for code, d := range r.byCode {
		cp.byCode[code] = d
	}
	return cp
}

// NewParser builds a fresh parser instance for code, or (nil, false)
// if no descriptor is registered for it.
func (r *Registry) NewParser(code string) (TransactionParser, bool) {
	d, ok := r.Lookup(code)
	if !ok || d.Factory == nil {
		return nil, false
	}
	return d.Factory(), true
}

// ValidateAgainstSchema checks a candidate transaction frame's segment
// tags against the SchemaReference manifest declared by code's
// Descriptor, if any, returning the required tags that are missing.
// A Descriptor with no SchemaReference always reports no missing tags;
// this runs ahead of the parser's own ValidateEnvelope, per spec.md
// §4.3's schema-first validation ordering.
func (r *Registry) ValidateAgainstSchema(code string, segments []tokenizer.RawSegment) ([]string, error) {
	d, ok := r.Lookup(code)
	if !ok || d.SchemaReference == "" {
		return nil, nil
	}
	manifest, err := LoadSchemaManifest(d.SchemaReference)
	if err != nil {
		return nil, err
	}
	tags := make([]string, len(segments))
	for i, s := range segments {
		tags[i] = s.Tag()
	}
	return ValidateFrameAgainstSchema(manifest, tags), nil
}
