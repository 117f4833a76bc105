package main

import (
	"fmt"
	"os"

	"github.com/edihealth/x12edi/diag"
	"golang.org/x/term"
)

// printDiagnostics prints h's findings to stderr, one per line,
// truncating each line with "..." to fit the terminal width when stdout
// is a terminal (falling back to 80 columns otherwise — CI logs, pipes).
func printDiagnostics(h diag.Handler) {
	diags := h.Diagnostics()
	if len(diags) == 0 {
		return
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	fmt.Fprintf(os.Stderr, "%d finding(s):\n", len(diags))
	for _, d := range diags {
		line := d.String()
		if len(line) > width-2 {
			line = line[:width-5] + "..."
		}
		fmt.Fprintf(os.Stderr, "  %s\n", line)
	}
}

func hasErrorOrAbove(h diag.Handler) bool {
	for _, d := range h.Diagnostics() {
		if d.Severity.AtLeastError() {
			return true
		}
	}
	return false
}
