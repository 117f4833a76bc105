package ast

// EligibilityInquiry270 is the 270 transaction payload: an inquiry
// driven by BHT/HL hierarchy, a subscriber NM1 loop, and one or more
// EQ (eligibility/benefit inquiry) service-type requests.
type EligibilityInquiry270 struct {
	ReferenceID string // BHT03
	Date        DateField
	Hierarchy   []HLNode
	Subscriber  *Party
	Dependent   *Party
	Inquiries   []BenefitInquiry
	TraceNumber string // TRN02
}

func (p *EligibilityInquiry270) SetCode() string { return "270" }

func (p *EligibilityInquiry270) Field(name string) (any, bool) {
	switch name {
	case "reference_id":
		return p.ReferenceID, true
	case "date":
		return p.Date, true
	case "hierarchy":
		return toAnySlice(p.Hierarchy), true
	case "subscriber":
		if p.Subscriber == nil {
			return nil, false
		}
		return p.Subscriber, true
	case "dependent":
		if p.Dependent == nil {
			return nil, false
		}
		return p.Dependent, true
	case "inquiries":
		return toAnySlice(p.Inquiries), true
	case "trace_number":
		return p.TraceNumber, true
	default:
		return nil, false
	}
}

// BenefitInquiry is an EQ segment: the requested service type code.
type BenefitInquiry struct {
	ServiceTypeCode string // EQ01
}

func (b BenefitInquiry) Field(name string) (any, bool) {
	switch name {
	case "service_type_code":
		return b.ServiceTypeCode, true
	default:
		return nil, false
	}
}

// EligibilityResponse271 is the 271 transaction payload: the same
// hierarchy as 270 plus a repeating list of EB (eligibility/benefit
// information) responses.
type EligibilityResponse271 struct {
	ReferenceID string
	Date        DateField
	Hierarchy   []HLNode
	Subscriber  *Party
	Dependent   *Party
	Benefits    []BenefitInfo
	TraceNumber string
}

func (p *EligibilityResponse271) SetCode() string { return "271" }

func (p *EligibilityResponse271) Field(name string) (any, bool) {
	switch name {
	case "reference_id":
		return p.ReferenceID, true
	case "date":
		return p.Date, true
	case "hierarchy":
		return toAnySlice(p.Hierarchy), true
	case "subscriber":
		if p.Subscriber == nil {
			return nil, false
		}
		return p.Subscriber, true
	case "dependent":
		if p.Dependent == nil {
			return nil, false
		}
		return p.Dependent, true
	case "benefits":
		return toAnySlice(p.Benefits), true
	case "trace_number":
		return p.TraceNumber, true
	default:
		return nil, false
	}
}

// BenefitInfo is an EB segment: eligibility/benefit code, coverage
// level, service type, and an optional monetary amount (copay,
// deductible remaining, ...).
type BenefitInfo struct {
	EligibilityCode string // EB01
	CoverageLevel   string // EB02
	ServiceType     string // EB03
	PlanCoverage    string // EB05
	Amount          Money  // EB07, zero when absent
}

func (b BenefitInfo) Field(name string) (any, bool) {
	switch name {
	case "eligibility_code":
		return b.EligibilityCode, true
	case "coverage_level":
		return b.CoverageLevel, true
	case "service_type":
		return b.ServiceType, true
	case "plan_coverage":
		return b.PlanCoverage, true
	case "amount":
		return b.Amount, true
	default:
		return nil, false
	}
}
