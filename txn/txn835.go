package txn

import (
	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/tokenizer"
)

// Parser835 parses an 835 (Health Care Claim Payment/Advice)
// transaction frame: BPR financial summary, TRN trace, payer/payee N1
// loops, and a repeating CLP claim loop each carrying its own
// CAS adjustments and SVC service lines (spec.md §3).
type Parser835 struct{}

func (Parser835) SupportedCodes() []string { return []string{"835"} }

func (Parser835) ValidateEnvelope(segments []tokenizer.RawSegment) error {
	if err := validateFrameShape(segments); err != nil {
		return err
	}
	c := newCursor(segments)
	c.skipTo("BPR")
	if c.peekTag() != "BPR" {
		return errMissingSegment("BPR")
	}
	return nil
}

func (Parser835) Parse(segments []tokenizer.RawSegment) (ast.Payload, error) {
	c := newCursor(segments)
	p := &ast.PaymentAdvice835{}

	for !c.done() {
		switch c.peekTag() {
		case "ST":
			c.next()
		case "BPR":
			bpr := c.next()
			p.FinancialInfo = ast.FinancialInfo835{
				CreditDebitIndicator: bpr.Get(3),
				TotalPaid:            parseMoney(bpr.Get(2)),
				PaymentMethod:        bpr.Get(4),
				PaymentFormat:        bpr.Get(5),
				PaymentDate:          parseDate(bpr.Get(16)),
			}
		case "TRN":
			trn := c.next()
			p.TraceNumber = trn.Get(2)
		case "DTM":
			dtm := c.next()
			switch dtm.Get(1) {
			case "405":
				p.ProductionDate = parseDate(dtm.Get(2))
			default:
				p.Dates = append(p.Dates, ast.DateRef{Qualifier: dtm.Get(1), Date: parseDate(dtm.Get(2))})
			}
		case "N1":
			party := parseParty(c)
			switch party.Qualifier {
			case "PR":
				p.Payer = party
			case "PE":
				p.Payee = party
			}
		case "REF":
			ref := c.next()
			p.ReferenceNumbers = append(p.ReferenceNumbers, ast.Reference{Qualifier: ref.Get(1), Value: ref.Get(2)})
		case "CLP":
			p.Claims = append(p.Claims, parseClaim835(c))
		case "SE":
			c.next()
		default:
			c.next()
		}
	}

	return p, nil
}

func parseClaim835(c *cursor) *ast.Claim835 {
	clp := c.next()
	claim := &ast.Claim835{
		ClaimID:               clp.Get(1),
		StatusCode:            clp.Get(2),
		TotalCharge:           parseMoney(clp.Get(3)),
		TotalPaid:             parseMoney(clp.Get(4)),
		PatientResponsibility: parseMoney(clp.Get(5)),
		ClaimType:             clp.Get(6),
		PayerControlNumber:    clp.Get(7),
		FacilityCode:          clp.Get(8),
	}

	for !c.done() {
		switch c.peekTag() {
		case "NM1":
			nm1 := c.next()
			if nm1.Get(1) == "QC" {
				claim.Patient = &ast.Party{
					Qualifier:   nm1.Get(1),
					Name:        nm1.Get(3),
					IDQualifier: nm1.Get(8),
					ID:          nm1.Get(9),
				}
			}
		case "DTM":
			dtm := c.next()
			claim.Dates = append(claim.Dates, ast.DateRef{Qualifier: dtm.Get(1), Date: parseDate(dtm.Get(2))})
		case "CAS":
			cas := c.next()
			claim.Adjustments = append(claim.Adjustments, ast.Adjustment{
				GroupCode:  cas.Get(1),
				ReasonCode: cas.Get(2),
				Amount:     parseMoney(cas.Get(3)),
				Quantity:   parseMoney(cas.Get(4)),
			})
		case "SVC":
			svc := c.next()
			qualifier, code := splitComposite(svc.Get(1))
			claim.Services = append(claim.Services, ast.Service835{
				ProcedureQualifier: qualifier,
				ProcedureCode:      code,
				Charge:             parseMoney(svc.Get(2)),
				Paid:               parseMoney(svc.Get(3)),
				UnitType:           svc.Get(5),
				Units:              parseMoney(svc.Get(7)),
			})
		case "CLP", "SE":
			return claim
		default:
			c.next()
		}
	}
	return claim
}
