// Package edi is the root façade gluing the tokenizer, envelope
// assembler, plugin registry, transaction parsers, and business-rule
// engine into a single entry point: Parse a raw interchange buffer into
// a typed ast.Document, then Validate it against a configured rule set
// (spec.md §1 overview, §8 pipeline).
package edi

import (
	"fmt"

	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/diag"
	"github.com/edihealth/x12edi/envelope"
	"github.com/edihealth/x12edi/plugin"
	"github.com/edihealth/x12edi/rules"
	"github.com/edihealth/x12edi/tokenizer"
	"github.com/edihealth/x12edi/txn"
)

// Engine owns a plugin registry and a rule engine and exposes the full
// parse-then-validate pipeline. The zero value is not usable;
// construct with New.
type Engine struct {
	registry *plugin.Registry
	rules    *rules.Engine
	policy   string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithRegistry replaces the default plugin registry (which carries only
// the six built-in transaction parsers) with r.
func WithRegistry(r *plugin.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithAdditionalPlugin registers d alongside the built-ins; if it
// shadows a code a built-in already serves, d wins, and the
// PLUGIN_OVERRIDE finding goes to a throwaway handler and is not
// reported to the caller.
func WithAdditionalPlugin(d plugin.Descriptor) Option {
	return func(e *Engine) { e.registry.Register(d, diag.NewSilent()) }
}

// WithRuleEngine replaces the default (empty) rule engine with eng.
func WithRuleEngine(eng *rules.Engine) Option {
	return func(e *Engine) { e.rules = eng }
}

// WithSeverityOverride raises or lowers the severity of a named rule in
// the configured rule engine.
func WithSeverityOverride(name string, sev diag.Severity) Option {
	return func(e *Engine) { e.rules.WithSeverityOverride(name, sev) }
}

// ErrorPolicy selects how Parse and Validate's diag.Handler behaves.
const (
	PolicyCollect  = "collect"
	PolicySilent   = "silent"
	PolicyFailFast = "fail_fast"
)

// WithErrorPolicy selects the diag.Handler construction Parse/Validate
// use (spec.md §4.8: Collect, Silent, or Fail-fast).
func WithErrorPolicy(policy string) Option {
	return func(e *Engine) { e.policy = policy }
}

// New constructs an Engine with the six built-in transaction parsers
// registered and an empty rule engine, then applies opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: plugin.NewRegistry(),
		rules:    rules.NewEngine(nil),
		policy:   PolicyCollect,
	}
	for _, d := range txn.Builtins() {
		e.registry.Register(d, diag.NewSilent())
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's plugin registry, e.g. to Discover
// additional descriptors into it or to inspect Codes().
func (e *Engine) Registry() *plugin.Registry { return e.registry }

// Rules returns the engine's rule engine.
func (e *Engine) Rules() *rules.Engine { return e.rules }

func (e *Engine) newHandler() diag.Handler {
	switch e.policy {
	case PolicySilent:
		return diag.NewSilent()
	case PolicyFailFast:
		return diag.NewFailFast()
	default:
		return diag.NewCollect()
	}
}

// Parse tokenizes, frames, and assembles data into an ast.Document,
// dispatching each framed transaction to its registered parser. A
// transaction whose set code has no registered parser keeps its raw
// segments as ast.UntypedSegment and reports UNSUPPORTED_TRANSACTION
// rather than failing the whole document (spec.md §4.4 robustness rule
// 3). The returned error is non-nil only for the one fatal condition:
// no usable ISA header.
func (e *Engine) Parse(data []byte) (*ast.Document, diag.Handler, error) {
	h := e.newHandler()

	segments, _, err := tokenizer.Tokenize(data, h)
	if err != nil {
		return nil, h, err
	}

	framed := envelope.Assemble(segments, h)

	doc := &ast.Document{}
	for _, icFrame := range framed.Interchanges {
		ic := &ast.Interchange{
			ControlNumber:  icFrame.ControlNumber,
			SenderID:       icFrame.SenderID,
			ReceiverID:     icFrame.ReceiverID,
			Date:           icFrame.Date,
			Time:           icFrame.Time,
			UsageIndicator: icFrame.UsageIndicator,
		}
		for _, fgFrame := range icFrame.FunctionalGroups {
			fg := &ast.FunctionalGroup{
				ControlNumber:         fgFrame.ControlNumber,
				FunctionalIDCode:      fgFrame.FunctionalIDCode,
				ApplicationSenderCode: fgFrame.ApplicationSenderCode,
				Date:                  fgFrame.Date,
				Time:                  fgFrame.Time,
			}
			for _, txnFrame := range fgFrame.Transactions {
				fg.Transactions = append(fg.Transactions, e.buildTransaction(txnFrame, h))
			}
			ic.FunctionalGroups = append(ic.FunctionalGroups, fg)
		}
		doc.Interchanges = append(doc.Interchanges, ic)
	}

	return doc, h, nil
}

func (e *Engine) buildTransaction(frame envelope.TransactionFrame, h diag.Handler) *ast.Transaction {
	t := &ast.Transaction{Header: frame.Header}

	parser, ok := e.registry.NewParser(frame.Header.SetCode)
	if !ok {
		h.Record(diag.Diagnostic{
			Severity: diag.WARNING,
			Code:     "UNSUPPORTED_TRANSACTION",
			Message:  "no registered parser for this transaction set code; segments carried through untyped",
			Value:    frame.Header.SetCode,
		})
		t.UntypedSegments = toUntyped(frame.Segments)
		return t
	}

	if missing, err := e.registry.ValidateAgainstSchema(frame.Header.SetCode, frame.Segments); err != nil {
		h.Record(diag.Diagnostic{
			Severity: diag.WARNING,
			Code:     "SCHEMA_LOAD_FAILED",
			Message:  err.Error(),
			Value:    frame.Header.SetCode,
		})
	} else if len(missing) > 0 {
		h.Record(diag.Diagnostic{
			Severity: diag.ERROR,
			Code:     "SCHEMA_VALIDATION_FAILED",
			Message:  fmt.Sprintf("transaction frame is missing segments required by its schema: %v", missing),
			Value:    frame.Header.SetCode,
		})
		t.UntypedSegments = toUntyped(frame.Segments)
		return t
	}

	if err := parser.ValidateEnvelope(frame.Segments); err != nil {
		h.Record(diag.Diagnostic{
			Severity: diag.ERROR,
			Code:     "TRANSACTION_FRAME_INVALID",
			Message:  err.Error(),
			Value:    frame.Header.SetCode,
		})
		t.UntypedSegments = toUntyped(frame.Segments)
		return t
	}

	payload, err := parser.Parse(frame.Segments)
	if err != nil {
		h.Record(diag.Diagnostic{
			Severity: diag.ERROR,
			Code:     "TRANSACTION_PARSE_FAILED",
			Message:  err.Error(),
			Value:    frame.Header.SetCode,
		})
		t.UntypedSegments = toUntyped(frame.Segments)
		return t
	}

	t.Payload = payload
	return t
}

func toUntyped(segments []tokenizer.RawSegment) []ast.UntypedSegment {
	out := make([]ast.UntypedSegment, len(segments))
	for i, s := range segments {
		out[i] = ast.UntypedSegment{Tag: s.Tag(), Elements: s.Elements}
	}
	return out
}

// Validate runs the configured rule engine against every transaction in
// doc, reporting findings through h (typically the same Handler
// returned by Parse, so parse- and rule-level diagnostics share one
// ordered stream per spec.md §5).
func (e *Engine) Validate(doc *ast.Document, h diag.Handler) {
	for _, t := range doc.Transactions() {
		e.rules.Validate(t, t.Header.SetCode, h)
	}
}

// Snapshot reports the Engine's current configuration for
// introspection (e.g. an edicheck "plugins" subcommand or a support
// bundle), without exposing the mutable registry/rules themselves.
type Snapshot struct {
	RegisteredCodes []string
	ErrorPolicy     string
}

// Snapshot returns the Engine's current configuration.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		RegisteredCodes: e.registry.Codes(),
		ErrorPolicy:     e.policy,
	}
}
