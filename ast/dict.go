package ast

// ToDict produces the canonical dictionary projection of the document,
// stable and insertion-ordered, for use by downstream emitters
// (spec.md §4.5, §6). Decimal fields stringify without trailing zeros
// beyond the needed precision (decimal.Decimal.String() already does
// this); dates render as the normalized ISO form when available,
// falling back to the raw wire value otherwise.
func (d *Document) ToDict() map[string]any {
	interchanges := make([]any, len(d.Interchanges))
	for i, ic := range d.Interchanges {
		interchanges[i] = ic.ToDict()
	}
	return map[string]any{"interchanges": interchanges}
}

func (ic *Interchange) ToDict() map[string]any {
	groups := make([]any, len(ic.FunctionalGroups))
	for i, fg := range ic.FunctionalGroups {
		groups[i] = fg.ToDict()
	}
	return map[string]any{
		"control_number":    ic.ControlNumber,
		"sender_id":         ic.SenderID,
		"receiver_id":       ic.ReceiverID,
		"date":              ic.Date,
		"time":              ic.Time,
		"usage_indicator":   ic.UsageIndicator,
		"functional_groups": groups,
	}
}

func (fg *FunctionalGroup) ToDict() map[string]any {
	txns := make([]any, len(fg.Transactions))
	for i, t := range fg.Transactions {
		txns[i] = t.ToDict()
	}
	return map[string]any{
		"control_number":          fg.ControlNumber,
		"functional_id_code":      fg.FunctionalIDCode,
		"application_sender_code": fg.ApplicationSenderCode,
		"date":                    fg.Date,
		"time":                    fg.Time,
		"transactions":            txns,
	}
}

func (t *Transaction) ToDict() map[string]any {
	m := map[string]any{
		"header": map[string]any{
			"set_code":       t.Header.SetCode,
			"control_number": t.Header.ControlNumber,
		},
	}
	if dictable, ok := t.Payload.(interface{ ToDict() map[string]any }); ok {
		m["payload"] = dictable.ToDict()
	}
	return m
}

func dateDict(d DateField) string {
	if d.ISO != "" {
		return d.ISO
	}
	return d.Raw
}

func (p *PaymentAdvice835) ToDict() map[string]any {
	claims := make([]any, len(p.Claims))
	for i, c := range p.Claims {
		claims[i] = c.toDict()
	}
	m := map[string]any{
		"set_code": p.SetCode(),
		"financial_info": map[string]any{
			"total_paid":             p.FinancialInfo.TotalPaid.String(),
			"credit_debit_indicator": p.FinancialInfo.CreditDebitIndicator,
			"payment_method":         p.FinancialInfo.PaymentMethod,
			"payment_date":           dateDict(p.FinancialInfo.PaymentDate),
		},
		"trace_number":    p.TraceNumber,
		"production_date": dateDict(p.ProductionDate),
		"claims":          claims,
	}
	if p.Payer != nil {
		m["payer"] = map[string]any{"name": p.Payer.Name, "id": p.Payer.ID}
	}
	if p.Payee != nil {
		m["payee"] = map[string]any{"name": p.Payee.Name, "id": p.Payee.ID}
	}
	return m
}

func (c *Claim835) toDict() map[string]any {
	adjustments := make([]any, len(c.Adjustments))
	for i, a := range c.Adjustments {
		adjustments[i] = map[string]any{
			"group_code":  a.GroupCode,
			"reason_code": a.ReasonCode,
			"amount":      a.Amount.String(),
			"quantity":    a.Quantity.String(),
		}
	}
	services := make([]any, len(c.Services))
	for i, s := range c.Services {
		services[i] = map[string]any{
			"procedure_code": s.ProcedureCode,
			"charge":         s.Charge.String(),
			"paid":           s.Paid.String(),
			"units":          s.Units.String(),
		}
	}
	return map[string]any{
		"claim_id":               c.ClaimID,
		"status_code":            c.StatusCode,
		"total_charge":           c.TotalCharge.String(),
		"total_paid":             c.TotalPaid.String(),
		"patient_responsibility": c.PatientResponsibility.String(),
		"adjustments":            adjustments,
		"services":               services,
	}
}
