package plugin

import (
	"io"

	"github.com/beevik/etree"
)

// WriteManifest renders r's registered descriptors as an XML catalog
// document (one <plugin> element per descriptor name, listing every
// code it serves), for operators
// who want a human-readable dump of what a running engine has wired in
// (e.g. an edicheck "plugins" subcommand). It mirrors the live registry
// state, not the on-disk descriptor files Discover reads from.
func WriteManifest(r *Registry, w io.Writer) error {
	doc := etree.NewDocument()
	root := doc.CreateElement("plugins")

	seen := map[string]bool{}
	for _, code := range r.Codes() {
		d, ok := r.Lookup(code)
		if !ok || seen[d.Name] {
			continue
		}
		seen[d.Name] = true

		p := root.CreateElement("plugin")
		p.CreateElement("name").CreateText(d.Name)
		p.CreateElement("version").CreateText(d.Version)
		p.CreateElement("payload_type_tag").CreateText(d.PayloadTypeTag)
		if d.SchemaReference != "" {
			p.CreateElement("schema_reference").CreateText(d.SchemaReference)
		}
		codes := p.CreateElement("transaction_codes")
		for _, c := range d.SupportedCodes {
			codes.CreateElement("code").CreateText(c)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
