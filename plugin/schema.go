package plugin

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/speedata/cxpath"
)

// SchemaManifest is the parsed form of a plugin's SchemaReference file:
// an XML document declaring which segment tags the transaction it
// parses requires, e.g.
//
//	<segments>
//	  <required tag="BPR"/>
//	  <required tag="CLP"/>
//	</segments>
//
// validate_envelope (spec.md §4.3) checks a candidate transaction frame
// against RequiredTags before the plugin's own ValidateEnvelope runs,
// so a schema author can assert envelope shape declaratively instead of
// every parser hand-rolling the same segment-presence check.
type SchemaManifest struct {
	RequiredTags []string
}

// LoadSchemaManifest reads and parses the XML file at path. It loads
// through etree first (the same tree type the registry's own
// WriteManifest produces) to confirm the document is well-formed, then
// re-serializes it for cxpath so the required/@tag extraction reuses
// the same XPath-navigation style as the rest of the descriptor-reading
// code in this package.
func LoadSchemaManifest(path string) (SchemaManifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return SchemaManifest{}, fmt.Errorf("plugin: schema manifest %q is not well-formed XML: %w", path, err)
	}
	serialized, err := doc.WriteToString()
	if err != nil {
		return SchemaManifest{}, fmt.Errorf("plugin: re-serializing schema manifest %q: %w", path, err)
	}

	ctx, err := cxpath.NewFromReader(strings.NewReader(serialized))
	if err != nil {
		return SchemaManifest{}, fmt.Errorf("plugin: schema manifest %q: %w", path, err)
	}

	var m SchemaManifest
	for req := range ctx.Root().Each("required") {
		if tag := req.Eval("@tag").String(); tag != "" {
			m.RequiredTags = append(m.RequiredTags, tag)
		}
	}
	return m, nil
}

// ValidateFrameAgainstSchema reports the required tags in m that are
// absent from tags (the tags present in a candidate transaction
// frame), in the order m declares them.
func ValidateFrameAgainstSchema(m SchemaManifest, tags []string) []string {
	present := make(map[string]bool, len(tags))
	for _, t := range tags {
		present[t] = true
	}
	var missing []string
	for _, req := range m.RequiredTags {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	return missing
}
