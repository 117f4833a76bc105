package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edihealth/x12edi/diag"
)

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
}

func testLookup(name string) (func() TransactionParser, bool) {
	if name == "builtin-835" {
		return func() TransactionParser { return stubParser{code: "835"} }, true
	}
	return nil, false
}

func TestDiscoverSkipsBadDescriptorsButKeepsGood(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "good.plugin.xml", validDescriptorXML)
	writeFixture(t, dir, "incomplete.plugin.xml", invalidDescriptorXML)
	writeFixture(t, dir, "malformed.plugin.xml", "<plugin><name>oops</name>")
	writeFixture(t, dir, "unresolvable.plugin.xml", `<plugin>
  <name>builtin-999</name>
  <version>1.0.0</version>
  <payload_type_tag>Unknown</payload_type_tag>
  <schema_reference>schemas/999.xsd</schema_reference>
  <transaction_codes><code>999</code></transaction_codes>
</plugin>`)
	writeFixture(t, dir, "ignored.txt", "not a plugin descriptor")

	h := diag.NewCollect()
	descriptors, err := Discover(dir, testLookup, h)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(descriptors) != 1 || descriptors[0].Name != "builtin-835" {
		t.Fatalf("got %+v, want exactly the builtin-835 descriptor", descriptors)
	}
}

func TestDiscoverAndRegister(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "good.plugin.xml", validDescriptorXML)

	r := NewRegistry()
	h := diag.NewCollect()
	if err := DiscoverAndRegister(r, dir, testLookup, h); err != nil {
		t.Fatalf("DiscoverAndRegister returned error: %v", err)
	}

	d, ok := r.Lookup("835")
	if !ok || d.Name != "builtin-835" {
		t.Fatalf("got %+v, %v, want builtin-835 registered under 835", d, ok)
	}
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	h := diag.NewCollect()
	descriptors, err := Discover(dir, testLookup, h)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(descriptors) != 0 {
		t.Fatalf("got %v, want none", descriptors)
	}
}
