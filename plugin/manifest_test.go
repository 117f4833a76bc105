package plugin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/edihealth/x12edi/diag"
)

func TestWriteManifest(t *testing.T) {
	r := NewRegistry()
	h := diag.NewCollect()
	r.Register(Descriptor{
		Name:            "builtin-835",
		Version:         "1.0.0",
		SupportedCodes:  []string{"835"},
		PayloadTypeTag:  "PaymentAdvice835",
		SchemaReference: "schemas/835.xsd",
	}, h)

	var buf bytes.Buffer
	if err := WriteManifest(r, &buf); err != nil {
		t.Fatalf("WriteManifest returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<name>builtin-835</name>", "<code>835</code>", "schemas/835.xsd"} {
		if !strings.Contains(out, want) {
			t.Errorf("manifest output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteManifestDedupesSharedDescriptor(t *testing.T) {
	r := NewRegistry()
	h := diag.NewCollect()
	r.Register(Descriptor{Name: "multi", SupportedCodes: []string{"270", "271"}}, h)

	var buf bytes.Buffer
	if err := WriteManifest(r, &buf); err != nil {
		t.Fatalf("WriteManifest returned error: %v", err)
	}
	if n := strings.Count(buf.String(), "<plugin>"); n != 1 {
		t.Errorf("got %d <plugin> elements, want 1 (descriptor shared across two codes)", n)
	}
}
