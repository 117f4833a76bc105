package txn

import (
	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/tokenizer"
)

// Parser270 parses a 270 (Eligibility, Coverage or Benefit Inquiry)
// transaction frame: BHT header, HL hierarchy, subscriber/dependent NM1
// loops, and a repeating EQ benefit inquiry.
type Parser270 struct{}

func (Parser270) SupportedCodes() []string { return []string{"270"} }

func (Parser270) ValidateEnvelope(segments []tokenizer.RawSegment) error {
	if err := validateFrameShape(segments); err != nil {
		return err
	}
	c := newCursor(segments)
	c.skipTo("BHT")
	if c.peekTag() != "BHT" {
		return errMissingSegment("BHT")
	}
	return nil
}

func (Parser270) Parse(segments []tokenizer.RawSegment) (ast.Payload, error) {
	c := newCursor(segments)
	p := &ast.EligibilityInquiry270{}

	for !c.done() {
		switch c.peekTag() {
		case "ST":
			c.next()
		case "BHT":
			bht := c.next()
			p.ReferenceID = bht.Get(3)
			p.Date = parseDate(bht.Get(4))
		case "HL":
			hl := c.next()
			p.Hierarchy = append(p.Hierarchy, ast.HLNode{ID: hl.Get(1), ParentID: hl.Get(2), Level: hl.Get(3)})
		case "TRN":
			trn := c.next()
			p.TraceNumber = trn.Get(2)
		case "NM1":
			nm1 := c.next()
			party := &ast.Party{
				Qualifier:   nm1.Get(1),
				Name:        nm1.Get(3),
				IDQualifier: nm1.Get(8),
				ID:          nm1.Get(9),
			}
			switch party.Qualifier {
			case "IL":
				p.Subscriber = party
			case "03":
				p.Dependent = party
			}
		case "EQ":
			eq := c.next()
			p.Inquiries = append(p.Inquiries, ast.BenefitInquiry{ServiceTypeCode: eq.Get(1)})
		case "SE":
			c.next()
		default:
			c.next()
		}
	}

	return p, nil
}

// Parser271 parses a 271 (Eligibility, Coverage or Benefit Information)
// transaction frame: the same BHT/HL/NM1 scaffolding as 270, plus a
// repeating EB benefit information segment.
type Parser271 struct{}

func (Parser271) SupportedCodes() []string { return []string{"271"} }

func (Parser271) ValidateEnvelope(segments []tokenizer.RawSegment) error {
	if err := validateFrameShape(segments); err != nil {
		return err
	}
	c := newCursor(segments)
	c.skipTo("BHT")
	if c.peekTag() != "BHT" {
		return errMissingSegment("BHT")
	}
	return nil
}

func (Parser271) Parse(segments []tokenizer.RawSegment) (ast.Payload, error) {
	c := newCursor(segments)
	p := &ast.EligibilityResponse271{}

	for !c.done() {
		switch c.peekTag() {
		case "ST":
			c.next()
		case "BHT":
			bht := c.next()
			p.ReferenceID = bht.Get(3)
			p.Date = parseDate(bht.Get(4))
		case "HL":
			hl := c.next()
			p.Hierarchy = append(p.Hierarchy, ast.HLNode{ID: hl.Get(1), ParentID: hl.Get(2), Level: hl.Get(3)})
		case "TRN":
			trn := c.next()
			p.TraceNumber = trn.Get(2)
		case "NM1":
			nm1 := c.next()
			party := &ast.Party{
				Qualifier:   nm1.Get(1),
				Name:        nm1.Get(3),
				IDQualifier: nm1.Get(8),
				ID:          nm1.Get(9),
			}
			switch party.Qualifier {
			case "IL":
				p.Subscriber = party
			case "03":
				p.Dependent = party
			}
		case "EB":
			eb := c.next()
			plan, _ := splitComposite(eb.Get(5))
			p.Benefits = append(p.Benefits, ast.BenefitInfo{
				EligibilityCode: eb.Get(1),
				CoverageLevel:   eb.Get(2),
				ServiceType:     eb.Get(3),
				PlanCoverage:    plan,
				Amount:          parseMoney(eb.Get(7)),
			})
		case "SE":
			c.next()
		default:
			c.next()
		}
	}

	return p, nil
}
