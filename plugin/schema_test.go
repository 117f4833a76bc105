package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edihealth/x12edi/diag"
)

func writeSchemaFixture(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.xml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSchemaManifest(t *testing.T) {
	path := writeSchemaFixture(t, `<segments>
  <required tag="BPR"/>
  <required tag="CLP"/>
</segments>`)

	m, err := LoadSchemaManifest(path)
	if err != nil {
		t.Fatalf("LoadSchemaManifest returned error: %v", err)
	}
	if len(m.RequiredTags) != 2 || m.RequiredTags[0] != "BPR" || m.RequiredTags[1] != "CLP" {
		t.Fatalf("RequiredTags = %v, want [BPR CLP]", m.RequiredTags)
	}
}

func TestLoadSchemaManifestMalformedXML(t *testing.T) {
	path := writeSchemaFixture(t, "<segments><required tag=\"BPR\"")
	if _, err := LoadSchemaManifest(path); err == nil {
		t.Fatal("expected an error for malformed XML")
	}
}

func TestValidateFrameAgainstSchema(t *testing.T) {
	m := SchemaManifest{RequiredTags: []string{"BPR", "CLP", "TRN"}}

	missing := ValidateFrameAgainstSchema(m, []string{"ST", "BPR", "CLP", "SE"})
	if len(missing) != 1 || missing[0] != "TRN" {
		t.Fatalf("missing = %v, want [TRN]", missing)
	}

	if missing := ValidateFrameAgainstSchema(m, []string{"ST", "BPR", "CLP", "TRN", "SE"}); len(missing) != 0 {
		t.Fatalf("missing = %v, want none", missing)
	}
}

func TestRegistryValidateAgainstSchemaNoReference(t *testing.T) {
	r := NewRegistry()
	h := diag.NewCollect()
	r.Register(Descriptor{Name: "stub", SupportedCodes: []string{"835"}}, h)

	missing, err := r.ValidateAgainstSchema("835", nil)
	if err != nil {
		t.Fatalf("ValidateAgainstSchema returned error: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("missing = %v, want none for a descriptor with no SchemaReference", missing)
	}
}
