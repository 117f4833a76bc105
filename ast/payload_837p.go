package ast

// ProfessionalClaim837P is the 837P (Professional Claim) transaction
// payload. Claims are grouped under the hierarchical (HL) scaffolding
// declared by BHT; each Claim837P associates its HI (diagnosis) and
// SV1 (service line) segments by position between CLM boundaries
// (spec.md §4.4).
type ProfessionalClaim837P struct {
	TransactionType string // BHT02
	ReferenceID     string // BHT03
	CreationDate    DateField
	Hierarchy       []HLNode
	Submitter       *Party
	Receiver        *Party
	Claims          []*Claim837P
}

func (p *ProfessionalClaim837P) SetCode() string { return "837" }

func (p *ProfessionalClaim837P) Field(name string) (any, bool) {
	switch name {
	case "transaction_type":
		return p.TransactionType, true
	case "reference_id":
		return p.ReferenceID, true
	case "creation_date":
		return p.CreationDate, true
	case "hierarchy":
		return toAnySlice(p.Hierarchy), true
	case "submitter":
		if p.Submitter == nil {
			return nil, false
		}
		return p.Submitter, true
	case "receiver":
		if p.Receiver == nil {
			return nil, false
		}
		return p.Receiver, true
	case "claims":
		return toAnySlice(p.Claims), true
	default:
		return nil, false
	}
}

// HLNode is one HL segment: its own ID, its parent's ID (empty at the
// top of the hierarchy), and the level code (e.g. "20" billing
// provider, "22" subscriber, "23" patient).
type HLNode struct {
	ID       string // HL01
	ParentID string // HL02
	Level    string // HL03
}

func (h HLNode) Field(name string) (any, bool) {
	switch name {
	case "id":
		return h.ID, true
	case "parent_id":
		return h.ParentID, true
	case "level":
		return h.Level, true
	default:
		return nil, false
	}
}

// Claim837P is one CLM loop.
type Claim837P struct {
	ClaimID        string // CLM01
	TotalCharge    Money  // CLM02
	FacilityCode   string // CLM05-1
	Subscriber     *Party
	Diagnoses      []Diagnosis
	ServiceLines   []ServiceLine837P
}

func (c *Claim837P) Field(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	switch name {
	case "claim_id":
		return c.ClaimID, true
	case "total_charge":
		return c.TotalCharge, true
	case "facility_code":
		return c.FacilityCode, true
	case "subscriber":
		if c.Subscriber == nil {
			return nil, false
		}
		return c.Subscriber, true
	case "diagnoses":
		return toAnySlice(c.Diagnoses), true
	case "service_lines":
		return toAnySlice(c.ServiceLines), true
	default:
		return nil, false
	}
}

// Diagnosis is an HI segment repetition: qualifier (ABK, ABF, ...) and
// ICD code.
type Diagnosis struct {
	Qualifier string
	Code      string
}

func (d Diagnosis) Field(name string) (any, bool) {
	switch name {
	case "qualifier":
		return d.Qualifier, true
	case "code":
		return d.Code, true
	default:
		return nil, false
	}
}

// ServiceLine837P is an SV1 segment: procedure qualifier:code,
// charge, and units.
type ServiceLine837P struct {
	ProcedureQualifier string // SV101-1
	ProcedureCode      string // SV101-2
	Charge             Money  // SV102
	Units              Money  // SV104
	DiagnosisPointers  []int  // SV107, indices into Claim837P.Diagnoses
}

func (s ServiceLine837P) Field(name string) (any, bool) {
	switch name {
	case "procedure_qualifier":
		return s.ProcedureQualifier, true
	case "procedure_code":
		return s.ProcedureCode, true
	case "charge":
		return s.Charge, true
	case "units":
		return s.Units, true
	default:
		return nil, false
	}
}
