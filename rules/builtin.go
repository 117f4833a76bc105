package rules

import (
	"regexp"

	"github.com/edihealth/x12edi/diag"
)

var npiFormatRe = regexp.MustCompile(`^\d{10}$`)

// taxIDRe accepts the EIN dashed form (NN-NNNNNNN), the SSN dashed form
// (NNN-NN-NNNN), or a bare 9-digit flat form; X12 carries tax IDs as a
// flat digit string in REF, but source documents and test fixtures
// commonly include one of the two dashed forms.
var taxIDRe = regexp.MustCompile(`^(\d{2}-\d{7}|\d{3}-\d{2}-\d{4}|\d{9})$`)

// ValidNPIChecksum reports whether npi is a 10-digit National Provider
// Identifier whose check digit satisfies the Luhn algorithm applied to
// the NPI prefixed with the constant "80840" (CMS's assigned ISO
// issuer identifier for NPI), per the NPI Final Rule check-digit
// definition.
func ValidNPIChecksum(npi string) bool {
	if !npiFormatRe.MatchString(npi) {
		return false
	}
	digits := "80840" + npi
	sum := 0
	// Luhn: starting from the rightmost digit, double every second
	// digit; the rightmost digit itself (the check digit) is never
	// doubled.
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// WithPath clones r, pointing its FieldValidator at path and scoping
// it to codes (empty codes keeps it applying to every transaction
// type). Used to instantiate a catalog rule like npi_checksum against
// a specific payload field, e.g. Builtin()[1].WithPath("provider.id", "276").
func (r Rule) WithPath(path string, codes ...string) Rule {
	if r.Field != nil {
		f := *r.Field
		f.Path = path
		r.Field = &f
	}
	r.TransactionCodes = codes
	return r
}

// Builtin returns the standard rule catalog: the NPI format/checksum
// pair and tax ID format. Catalog entries carry no field path, and the
// engine skips a field validator without one, so an entry takes effect
// only once bound to a field with WithPath. Callers compose this with
// domain-specific rules built from field paths only they know (e.g.
// an 835 balance_check), rather than this package guessing payload
// shapes it does not own.
func Builtin() []Rule {
	return []Rule{
		{
			Name:     "npi_format",
			Category: "field",
			Severity: diag.ERROR,
			Field:    &FieldValidator{Kind: KindNPIFormat},
		},
		{
			Name:     "npi_checksum",
			Category: "field",
			Severity: diag.WARNING,
			Field:    &FieldValidator{Kind: KindNPIChecksum},
		},
		{
			Name:     "tax_id_format",
			Category: "field",
			Severity: diag.ERROR,
			Field:    &FieldValidator{Kind: KindTaxIDFormat},
		},
	}
}
