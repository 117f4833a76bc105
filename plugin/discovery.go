package plugin

import (
	"log/slog"
	"path/filepath"

	"github.com/edihealth/x12edi/diag"
)

// Discover scans dir for "*.plugin.xml" descriptor files, validates
// each, resolves it against lookup, and returns the Descriptors ready
// to Register. A descriptor that fails validation or resolution is
// skipped (with its own diagnostic already recorded by
// ValidateArtifactFile/ResolveDescriptor) rather than aborting the
// whole scan — one bad descriptor file shouldn't take down every other
// plugin in the directory. The skip is also logged through log/slog,
// since a Diagnostic alone is easy to miss in a directory scan that
// might otherwise silently register nothing; NewSilent suppresses it.
func Discover(dir string, lookup FactoryLookup, h diag.Handler) ([]Descriptor, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.plugin.xml"))
	if err != nil {
		return nil, err
	}
	var out []Descriptor
	for _, path := range matches {
		artifact, err := ValidateArtifactFile(path, h)
		if err != nil {
			logSkip(h, path, err)
			continue
		}
		d, ok := ResolveDescriptor(artifact, lookup, h)
		if !ok {
			logSkip(h, path, nil)
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func logSkip(h diag.Handler, path string, err error) {
	if diag.Silent(h) {
		return
	}
	if err != nil {
		slog.Warn("skipping plugin descriptor", "path", path, "error", err)
		return
	}
	slog.Warn("skipping plugin descriptor: no matching factory", "path", path)
}

// DiscoverAndRegister is Discover followed by Register for every
// resolved descriptor, against r directly. Callers that want to vet a
// directory before committing it to the live registry should instead
// run DiscoverAndRegister against r.Scratch() and inspect diagnostics
// first.
func DiscoverAndRegister(r *Registry, dir string, lookup FactoryLookup, h diag.Handler) error {
	descriptors, err := Discover(dir, lookup, h)
	if err != nil {
		return err
	}
	for _, d := range descriptors {
		r.Register(d, h)
	}
	return nil
}
