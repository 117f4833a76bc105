package txn

import "github.com/edihealth/x12edi/plugin"

// Builtins returns the plugin.Descriptor for every transaction parser
// shipped with this module, ready to Register into a plugin.Registry.
func Builtins() []plugin.Descriptor {
	return []plugin.Descriptor{
		{
			Name:           "builtin-835",
			Version:        "1.0.0",
			SupportedCodes: []string{"835"},
			PayloadTypeTag: "PaymentAdvice835",
			Factory:        func() plugin.TransactionParser { return Parser835{} },
		},
		{
			Name:           "builtin-837p",
			Version:        "1.0.0",
			SupportedCodes: []string{"837"},
			PayloadTypeTag: "ProfessionalClaim837P",
			Factory:        func() plugin.TransactionParser { return Parser837P{} },
		},
		{
			Name:           "builtin-270",
			Version:        "1.0.0",
			SupportedCodes: []string{"270"},
			PayloadTypeTag: "EligibilityInquiry270",
			Factory:        func() plugin.TransactionParser { return Parser270{} },
		},
		{
			Name:           "builtin-271",
			Version:        "1.0.0",
			SupportedCodes: []string{"271"},
			PayloadTypeTag: "EligibilityResponse271",
			Factory:        func() plugin.TransactionParser { return Parser271{} },
		},
		{
			Name:           "builtin-276",
			Version:        "1.0.0",
			SupportedCodes: []string{"276"},
			PayloadTypeTag: "StatusInquiry276",
			Factory:        func() plugin.TransactionParser { return Parser276{} },
		},
		{
			Name:           "builtin-277",
			Version:        "1.0.0",
			SupportedCodes: []string{"277"},
			PayloadTypeTag: "StatusResponse277",
			Factory:        func() plugin.TransactionParser { return Parser277{} },
		},
	}
}

// FactoryLookup returns a plugin.FactoryLookup resolving the built-in
// parsers by the Name used in Builtins, for use with plugin.Discover
// when a descriptor XML file names one of these instead of a
// third-party parser.
func FactoryLookup() plugin.FactoryLookup {
	byName := map[string]func() plugin.TransactionParser{}
	for _, d := range Builtins() {
		byName[d.Name] = d.Factory
	}
	return func(name string) (func() plugin.TransactionParser, bool) {
		f, ok := byName[name]
		return f, ok
	}
}
