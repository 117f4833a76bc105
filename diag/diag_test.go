package diag

import "testing"

func TestCollectHandlerNeverAborts(t *testing.T) {
	h := NewCollect()
	if err := h.Record(Diagnostic{Severity: CRITICAL, Code: "X"}); err != nil {
		t.Fatalf("Record() = %v, want nil under Collect policy", err)
	}
	if len(h.Diagnostics()) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(h.Diagnostics()))
	}
}

func TestSilentIsDetectable(t *testing.T) {
	if !Silent(NewSilent()) {
		t.Error("Silent(NewSilent()) = false, want true")
	}
	if Silent(NewCollect()) {
		t.Error("Silent(NewCollect()) = true, want false")
	}
	if Silent(NewFailFast()) {
		t.Error("Silent(NewFailFast()) = true, want false")
	}
}

func TestFailFastAbortsOnFirstError(t *testing.T) {
	h := NewFailFast()
	if err := h.Record(Diagnostic{Severity: WARNING, Code: "W1"}); err != nil {
		t.Fatalf("Record(WARNING) = %v, want nil", err)
	}
	err := h.Record(Diagnostic{Severity: ERROR, Code: "E1"})
	if err == nil {
		t.Fatal("Record(ERROR) = nil, want a FatalError")
	}
	fatal, ok := err.(*FatalError)
	if !ok {
		t.Fatalf("expected a *FatalError, got %T", err)
	}
	if fatal.Diagnostic.Code != "E1" {
		t.Errorf("FatalError.Diagnostic.Code = %q, want E1", fatal.Diagnostic.Code)
	}

	// Subsequent Record calls keep returning the same fatal error.
	if err := h.Record(Diagnostic{Severity: INFO, Code: "I1"}); err == nil {
		t.Fatal("expected Record to keep returning an error once aborted")
	}
	if len(h.Diagnostics()) != 3 {
		t.Fatalf("got %d diagnostics, want 3 (all recorded despite the abort)", len(h.Diagnostics()))
	}
}

func TestSeverityAtLeastError(t *testing.T) {
	tests := []struct {
		sev  Severity
		want bool
	}{
		{INFO, false},
		{WARNING, false},
		{ERROR, true},
		{CRITICAL, true},
	}
	for _, tt := range tests {
		if got := tt.sev.AtLeastError(); got != tt.want {
			t.Errorf("%s.AtLeastError() = %v, want %v", tt.sev, got, tt.want)
		}
	}
}

func TestDiagnosticStringIncludesPath(t *testing.T) {
	d := Diagnostic{Severity: ERROR, Code: "RULE_VIOLATION", Message: "required", Path: "trace_number"}
	got := d.String()
	want := "[ERROR] RULE_VIOLATION: required (trace_number)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewSummary(t *testing.T) {
	s := NewSummary([]Diagnostic{
		{Severity: WARNING, Code: "W1", Message: "warn"},
		{Severity: ERROR, Code: "E1", Message: "fail"},
	})
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	if !s.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	if !s.HasCode("E1") {
		t.Error("HasCode(E1) = false, want true")
	}
	if s.HasCode("missing") {
		t.Error("HasCode(missing) = true, want false")
	}
}

func TestSummaryNoDiagnostics(t *testing.T) {
	s := NewSummary(nil)
	if s.HasErrors() {
		t.Error("HasErrors() = true, want false for an empty summary")
	}
	if s.Error() != "no diagnostics" {
		t.Errorf("Error() = %q, want %q", s.Error(), "no diagnostics")
	}
}
