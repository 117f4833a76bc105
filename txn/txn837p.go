package txn

import (
	"strconv"
	"strings"

	"github.com/edihealth/x12edi/ast"
	"github.com/edihealth/x12edi/tokenizer"
)

// Parser837P parses an 837P (Health Care Claim: Professional)
// transaction frame: BHT header, HL hierarchy, submitter/receiver N1
// loops, and a repeating CLM claim loop carrying HI diagnoses and SV1
// service lines (spec.md §3).
type Parser837P struct{}

func (Parser837P) SupportedCodes() []string { return []string{"837"} }

func (Parser837P) ValidateEnvelope(segments []tokenizer.RawSegment) error {
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

func (Parser837P) Parse(segments []tokenizer.RawSegment) (ast.Payload, error) {
	c := newCursor(segments)
	p := &ast.ProfessionalClaim837P{}

	for !c.done() {
		switch c.peekTag() {
		case "ST":
			c.next()
		case "BHT":
			bht := c.next()
			p.TransactionType = bht.Get(2)
			p.ReferenceID = bht.Get(3)
			p.CreationDate = parseDate(bht.Get(4))
		case "HL":
			hl := c.next()
			p.Hierarchy = append(p.Hierarchy, ast.HLNode{
				ID:       hl.Get(1),
				ParentID: hl.Get(2),
				Level:    hl.Get(3),
			})
		case "N1":
			party := parseParty(c)
			switch party.Qualifier {
			case "41":
				p.Submitter = party
			case "40":
				p.Receiver = party
			}
		case "CLM":
			p.Claims = append(p.Claims, parseClaim837P(c))
		case "SE":
			c.next()
		default:
			c.next()
		}
	}

	return p, nil
}

func parseClaim837P(c *cursor) *ast.Claim837P {
	clm := c.next()
	claim := &ast.Claim837P{
		ClaimID:      clm.Get(1),
		TotalCharge:  parseMoney(clm.Get(2)),
		FacilityCode: firstOfComposite(clm.Get(5)),
	}

	for !c.done() {
		switch c.peekTag() {
		case "NM1":
			nm1 := c.next()
			if nm1.Get(1) == "IL" {
				claim.Subscriber = &ast.Party{
					Qualifier:   nm1.Get(1),
					Name:        nm1.Get(3),
					IDQualifier: nm1.Get(8),
					ID:          nm1.Get(9),
				}
			}
		case "HI":
			hi := c.next()
			for _, raw := range hi.Elements[1:] {
				if raw == "" {
					continue
				}
				qualifier, code := splitComposite(raw)
				claim.Diagnoses = append(claim.Diagnoses, ast.Diagnosis{Qualifier: qualifier, Code: code})
			}
		case "SV1":
			sv1 := c.next()
			qualifier, code := splitComposite(sv1.Get(1))
			claim.ServiceLines = append(claim.ServiceLines, ast.ServiceLine837P{
				ProcedureQualifier: qualifier,
				ProcedureCode:      code,
				Charge:             parseMoney(sv1.Get(2)),
				Units:              parseMoney(sv1.Get(4)),
				DiagnosisPointers:  parseDiagnosisPointers(sv1.Get(7)),
			})
		case "CLM", "SE":
			return claim
		default:
			c.next()
		}
	}
	return claim
}

// firstOfComposite returns the leading element of a composite like
// "11:B:1" (facility code:frequency:...).
func firstOfComposite(raw string) string {
	first, _ := splitComposite(raw)
	return first
}

// parseDiagnosisPointers parses a composite like "1>2>3" (or "1:2:3")
// of 1-based diagnosis pointers into 0-based indices.
func parseDiagnosisPointers(raw string) []int {
	if raw == "" {
		return nil
	}
	raw = strings.NewReplacer(">", ":").Replace(raw)
	parts := strings.Split(raw, ":")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, n-1)
	}
	return out
}
