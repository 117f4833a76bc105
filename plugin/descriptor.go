package plugin

import (
	"fmt"
	"io"
	"os"

	"github.com/edihealth/x12edi/diag"
	"github.com/speedata/cxpath"
)

// FactoryLookup resolves the statically-linked parser factory a
// discovered descriptor names; descriptor XML never carries executable
// code, only the name used to look one up (see package doc).
type FactoryLookup func(name string) (func() TransactionParser, bool)

// ArtifactDescriptor is the data read from a plugin descriptor XML
// document, before a live Factory has been attached.
type ArtifactDescriptor struct {
	Name            string
	Version         string
	SupportedCodes  []string
	PayloadTypeTag  string
	SchemaReference string
}

// ValidateArtifact reads and structurally validates a plugin descriptor
// XML document from r. A descriptor must declare a name, at least one
// transaction code, and a payload type tag; schema_reference is
// optional. Malformed XML is reported as PLUGIN_LOAD_FAILED and a
// missing required element as PLUGIN_INTERFACE_INVALID; both are also
// returned as an error.
func ValidateArtifact(r io.Reader, h diag.Handler) (ArtifactDescriptor, error) {
	ctx, err := cxpath.NewFromReader(r)
	if err != nil {
		h.Record(diag.Diagnostic{
			Severity: diag.ERROR,
			Code:     "PLUGIN_LOAD_FAILED",
			Message:  fmt.Sprintf("plugin descriptor is not well-formed XML: %v", err),
		})
		return ArtifactDescriptor{}, err
	}
	root := ctx.Root()

	d := ArtifactDescriptor{
		Name:            root.Eval("name").String(),
		Version:         root.Eval("version").String(),
		PayloadTypeTag:  root.Eval("payload_type_tag").String(),
		SchemaReference: root.Eval("schema_reference").String(),
	}
	for code := range root.Eval("transaction_codes").Each("code") {
		if c := code.String(); c != "" {
			d.SupportedCodes = append(d.SupportedCodes, c)
		}
	}

	if d.Name == "" || d.PayloadTypeTag == "" || len(d.SupportedCodes) == 0 {
		h.Record(diag.Diagnostic{
			Severity: diag.ERROR,
			Code:     "PLUGIN_INTERFACE_INVALID",
			Message:  "plugin descriptor is missing name, payload_type_tag, or transaction_codes",
			Value:    d.Name,
		})
		return d, fmt.Errorf("plugin: descriptor %q is missing required fields", d.Name)
	}
	return d, nil
}

// ValidateArtifactFile opens path and delegates to ValidateArtifact.
func ValidateArtifactFile(path string, h diag.Handler) (ArtifactDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		h.Record(diag.Diagnostic{
			Severity: diag.ERROR,
			Code:     "PLUGIN_LOAD_FAILED",
			Message:  fmt.Sprintf("cannot open plugin descriptor: %v", err),
			Value:    path,
		})
		return ArtifactDescriptor{}, err
	}
	defer f.Close()
	return ValidateArtifact(f, h)
}

// ResolveDescriptor attaches the statically-linked factory lookup
// names for a, turning it into a registerable Descriptor. It fails if
// lookup doesn't recognize the descriptor's name.
func ResolveDescriptor(a ArtifactDescriptor, lookup FactoryLookup, h diag.Handler) (Descriptor, bool) {
	factory, ok := lookup(a.Name)
	if !ok {
		h.Record(diag.Diagnostic{
			Severity: diag.ERROR,
			Code:     "PLUGIN_LOAD_FAILED",
			Message:  fmt.Sprintf("no statically-linked parser factory registered under name %q", a.Name),
			Value:    a.Name,
		})
		return Descriptor{}, false
	}
	return Descriptor{
		Name:            a.Name,
		Version:         a.Version,
		SupportedCodes:  a.SupportedCodes,
		PayloadTypeTag:  a.PayloadTypeTag,
		Factory:         factory,
		SchemaReference: a.SchemaReference,
	}, true
}
