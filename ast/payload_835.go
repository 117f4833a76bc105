package ast

// PaymentAdvice835 is the Payment-Advice (835) transaction payload
// (spec.md §3): financial summary, payer/payee, and a repeating list
// of claims, each owning its own adjustments and service lines.
type PaymentAdvice835 struct {
	FinancialInfo     FinancialInfo835
	TraceNumber       string // TRN02, when present
	ProductionDate    DateField
	Payer             *Party
	Payee             *Party
	ReferenceNumbers  []Reference
	Dates             []DateRef
	Claims            []*Claim835
}

func (p *PaymentAdvice835) SetCode() string { return "835" }

func (p *PaymentAdvice835) Field(name string) (any, bool) {
	switch name {
	case "financial_info":
		return p.FinancialInfo, true
	case "trace_number":
		return p.TraceNumber, true
	case "production_date":
		return p.ProductionDate, true
	case "payer":
		if p.Payer == nil {
			return nil, false
		}
		return p.Payer, true
	case "payee":
		if p.Payee == nil {
			return nil, false
		}
		return p.Payee, true
	case "reference_numbers":
		return referencesToAny(p.ReferenceNumbers), true
	case "dates":
		return datesToAny(p.Dates), true
	case "claims":
		return toAnySlice(p.Claims), true
	default:
		return nil, false
	}
}

// FinancialInfo835 is the BPR segment: total paid, credit/debit
// indicator, payment method, and payment date.
type FinancialInfo835 struct {
	TotalPaid             Money  // BPR02
	CreditDebitIndicator  string // BPR03: C or D
	PaymentMethod         string // BPR04: ACH, CHK, ...
	PaymentFormat         string // BPR05, e.g. CCP
	PaymentDate           DateField
}

func (f FinancialInfo835) Field(name string) (any, bool) {
	switch name {
	case "total_paid":
		return f.TotalPaid, true
	case "credit_debit_indicator":
		return f.CreditDebitIndicator, true
	case "payment_method":
		return f.PaymentMethod, true
	case "payment_format":
		return f.PaymentFormat, true
	case "payment_date":
		return f.PaymentDate, true
	default:
		return nil, false
	}
}

// Claim835 is one CLP loop: claim identification, totals, and the
// adjustments/services nested within it (spec.md §3, §4.4).
type Claim835 struct {
	ClaimID               string // CLP01
	StatusCode            string // CLP02
	TotalCharge           Money  // CLP03
	TotalPaid             Money  // CLP04
	PatientResponsibility Money  // CLP05
	ClaimType             string // CLP06
	PayerControlNumber    string // CLP07
	FacilityCode          string // CLP08
	Patient               *Party
	Dates                 []DateRef
	Adjustments           []Adjustment
	Services              []Service835
}

func (c *Claim835) Field(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	switch name {
	case "claim_id":
		return c.ClaimID, true
	case "status_code":
		return c.StatusCode, true
	case "total_charge":
		return c.TotalCharge, true
	case "total_paid":
		return c.TotalPaid, true
	case "patient_responsibility":
		return c.PatientResponsibility, true
	case "claim_type":
		return c.ClaimType, true
	case "payer_control_number":
		return c.PayerControlNumber, true
	case "facility_code":
		return c.FacilityCode, true
	case "patient":
		if c.Patient == nil {
			return nil, false
		}
		return c.Patient, true
	case "dates":
		return datesToAny(c.Dates), true
	case "adjustments":
		return toAnySlice(c.Adjustments), true
	case "services":
		return toAnySlice(c.Services), true
	default:
		return nil, false
	}
}

// Adjustment is a CAS segment: group code, reason code, amount, and
// optional quantity.
type Adjustment struct {
	GroupCode  string // CAS01
	ReasonCode string // CAS02
	Amount     Money  // CAS03
	Quantity   Money  // CAS04, zero when absent
}

func (a Adjustment) Field(name string) (any, bool) {
	switch name {
	case "group_code":
		return a.GroupCode, true
	case "reason_code":
		return a.ReasonCode, true
	case "amount":
		return a.Amount, true
	case "quantity":
		return a.Quantity, true
	default:
		return nil, false
	}
}

// Service835 is an SVC segment: procedure qualifier:code, charge,
// paid amount, unit type, and units.
type Service835 struct {
	ProcedureQualifier string // SVC01-1
	ProcedureCode      string // SVC01-2
	Charge             Money  // SVC02
	Paid               Money  // SVC03
	UnitType           string // SVC05
	Units              Money  // SVC07
}

func (s Service835) Field(name string) (any, bool) {
	switch name {
	case "procedure_qualifier":
		return s.ProcedureQualifier, true
	case "procedure_code":
		return s.ProcedureCode, true
	case "charge":
		return s.Charge, true
	case "paid":
		return s.Paid, true
	case "unit_type":
		return s.UnitType, true
	case "units":
		return s.Units, true
	default:
		return nil, false
	}
}
