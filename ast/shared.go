package ast

// Party represents an N1 loop entity (payer, payee, patient, provider,
// ...). Qualifier carries the N101 entity identifier code so a
// transaction parser can tell which loop it built this from.
type Party struct {
	Qualifier   string // N101, e.g. "PR" payer, "PE" payee, "41" submitter
	Name        string // N102
	IDQualifier string // N103
	ID          string // N104
	Address     *Address
}

func (p *Party) Field(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	switch name {
	case "qualifier":
		return p.Qualifier, true
	case "name":
		return p.Name, true
	case "id_qualifier":
		return p.IDQualifier, true
	case "id":
		return p.ID, true
	case "address":
		if p.Address == nil {
			return nil, false
		}
		return p.Address, true
	default:
		return nil, false
	}
}

// Address is an N3/N4 pair attached to a Party.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
}

func (a *Address) Field(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	switch name {
	case "line1":
		return a.Line1, true
	case "line2":
		return a.Line2, true
	case "city":
		return a.City, true
	case "state":
		return a.State, true
	case "postal_code":
		return a.PostalCode, true
	default:
		return nil, false
	}
}

// Reference is a REF segment: qualifier plus value (trace numbers,
// payer control numbers, prior authorization numbers, ...).
type Reference struct {
	Qualifier string // REF01
	Value     string // REF02
}

func (r Reference) Field(name string) (any, bool) {
	switch name {
	case "qualifier":
		return r.Qualifier, true
	case "value":
		return r.Value, true
	default:
		return nil, false
	}
}

func referencesToAny(refs []Reference) []any {
	out := make([]any, len(refs))
	for i, r := range refs {
		out[i] = r
	}
	return out
}

// DateRef is a DTM/DTP segment: qualifier plus the normalized date.
type DateRef struct {
	Qualifier string
	Date      DateField
}

func (d DateRef) Field(name string) (any, bool) {
	switch name {
	case "qualifier":
		return d.Qualifier, true
	case "date":
		return d.Date, true
	default:
		return nil, false
	}
}

func datesToAny(dates []DateRef) []any {
	out := make([]any, len(dates))
	for i, d := range dates {
		out[i] = d
	}
	return out
}
