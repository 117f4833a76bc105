package ast

// StatusInquiry276 is the 276 (Claim Status Inquiry) transaction
// payload: BHT/HL hierarchy, a TRN trace, and the claims being asked
// about.
type StatusInquiry276 struct {
	ReferenceID string
	Date        DateField
	TraceNumber string
	Hierarchy   []HLNode
	Provider    *Party
	Subscriber  *Party
	Claims      []StatusClaimRef
}

func (p *StatusInquiry276) SetCode() string { return "276" }

func (p *StatusInquiry276) Field(name string) (any, bool) {
	switch name {
	case "reference_id":
		return p.ReferenceID, true
	case "date":
		return p.Date, true
	case "trace_number":
		return p.TraceNumber, true
	case "hierarchy":
		return toAnySlice(p.Hierarchy), true
	case "provider":
		if p.Provider == nil {
			return nil, false
		}
		return p.Provider, true
	case "subscriber":
		if p.Subscriber == nil {
			return nil, false
		}
		return p.Subscriber, true
	case "claims":
		return toAnySlice(p.Claims), true
	default:
		return nil, false
	}
}

// StatusClaimRef identifies the claim a 276 is inquiring about, or a
// 277 is reporting on: the submitter's claim ID and the billed amount.
type StatusClaimRef struct {
	ClaimID string // REF*1K or similar
	Amount  Money
	Dates   []DateRef
}

func (c StatusClaimRef) Field(name string) (any, bool) {
	switch name {
	case "claim_id":
		return c.ClaimID, true
	case "amount":
		return c.Amount, true
	case "dates":
		return datesToAny(c.Dates), true
	default:
		return nil, false
	}
}

// StatusResponse277 is the 277 (Claim Status Response) transaction
// payload: the same hierarchy as 276, plus a status code/message per
// claim.
type StatusResponse277 struct {
	ReferenceID string
	Date        DateField
	TraceNumber string
	Hierarchy   []HLNode
	Provider    *Party
	Subscriber  *Party
	Statuses    []ClaimStatus
}

func (p *StatusResponse277) SetCode() string { return "277" }

func (p *StatusResponse277) Field(name string) (any, bool) {
	switch name {
	case "reference_id":
		return p.ReferenceID, true
	case "date":
		return p.Date, true
	case "trace_number":
		return p.TraceNumber, true
	case "hierarchy":
		return toAnySlice(p.Hierarchy), true
	case "provider":
		if p.Provider == nil {
			return nil, false
		}
		return p.Provider, true
	case "subscriber":
		if p.Subscriber == nil {
			return nil, false
		}
		return p.Subscriber, true
	case "statuses":
		return toAnySlice(p.Statuses), true
	default:
		return nil, false
	}
}

// ClaimStatus is an STC segment: category/status codes and the claim
// it describes.
type ClaimStatus struct {
	CategoryCode string // STC01-1
	StatusCode   string // STC01-2
	Claim        StatusClaimRef
}

func (c ClaimStatus) Field(name string) (any, bool) {
	switch name {
	case "category_code":
		return c.CategoryCode, true
	case "status_code":
		return c.StatusCode, true
	case "claim":
		return c.Claim, true
	default:
		return nil, false
	}
}
