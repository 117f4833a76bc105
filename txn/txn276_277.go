package txn

import (
	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/tokenizer"
)

// Parser276 parses a 276 (Health Care Claim Status Request) transaction
// frame: BHT header, HL hierarchy, provider/subscriber NM1 loops, and a
// repeating claim reference (REF + AMT + DTP) per claim being asked
// about.
type Parser276 struct{}

func (Parser276) SupportedCodes() []string { return []string{"276"} }

func (Parser276) ValidateEnvelope(segments []tokenizer.RawSegment) error {
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

func (Parser276) Parse(segments []tokenizer.RawSegment) (ast.Payload, error) {
	c := newCursor(segments)
	p := &ast.StatusInquiry276{}

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
			case "1P", "85":
				p.Provider = party
			case "IL":
				p.Subscriber = party
			}
		case "REF":
			p.Claims = append(p.Claims, parseStatusClaimRef(c))
		case "SE":
			c.next()
		default:
			c.next()
		}
	}

	return p, nil
}

func parseStatusClaimRef(c *cursor) ast.StatusClaimRef {
	ref := c.next()
	claim := ast.StatusClaimRef{ClaimID: ref.Get(2)}

	for !c.done() {
		switch c.peekTag() {
		case "AMT":
			amt := c.next()
			claim.Amount = parseMoney(amt.Get(2))
		case "DTP":
			dtp := c.next()
			claim.Dates = append(claim.Dates, ast.DateRef{Qualifier: dtp.Get(1), Date: parseDate(dtp.Get(3))})
		default:
			return claim
		}
	}
	return claim
}

// Parser277 parses a 277 (Health Care Claim Status Response)
// transaction frame: the same BHT/HL/NM1 scaffolding as 276, plus a
// repeating STC claim status segment.
type Parser277 struct{}

func (Parser277) SupportedCodes() []string { return []string{"277"} }

func (Parser277) ValidateEnvelope(segments []tokenizer.RawSegment) error {
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

func (Parser277) Parse(segments []tokenizer.RawSegment) (ast.Payload, error) {
	c := newCursor(segments)
	p := &ast.StatusResponse277{}

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
			case "1P", "85":
				p.Provider = party
			case "IL":
				p.Subscriber = party
			}
		case "STC":
			p.Statuses = append(p.Statuses, parseClaimStatus(c))
		case "SE":
			c.next()
		default:
			c.next()
		}
	}

	return p, nil
}

func parseClaimStatus(c *cursor) ast.ClaimStatus {
	stc := c.next()
	category, status := splitComposite(stc.Get(1))
	cs := ast.ClaimStatus{CategoryCode: category, StatusCode: status}

	for !c.done() {
		switch c.peekTag() {
		case "REF":
			cs.Claim = parseStatusClaimRef(c)
		default:
			return cs
		}
	}
	return cs
}
