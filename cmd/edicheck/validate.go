package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/edihealth/x12edi"
	"github.com/edihealth/x12edi/rules"
)

// Result is the JSON shape of a validate run.
type Result struct {
	File     string    `json:"file"`
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Finding is one diagnostic flattened for JSON output.
type Finding struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Rule     string `json:"rule,omitempty"`
}

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var format string
	var policy string
	fs.StringVar(&format, "format", "text", "Output format: text, json")
	fs.StringVar(&policy, "policy", "collect", "Error handling policy: collect, silent, fail_fast")
	fs.Usage = validateUsage
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		validateUsage()
		return exitError
	}
	filename := fs.Arg(0)

	data, err := os.ReadFile(filename)
	if err != nil {
		return reportFatal(filename, format, err)
	}

	engine := edi.New(
		edi.WithErrorPolicy(policy),
		edi.WithRuleEngine(rules.NewEngine(rules.Builtin())),
	)

	doc, handler, err := engine.Parse(data)
	if err != nil {
		return reportFatal(filename, format, err)
	}
	engine.Validate(doc, handler)

	result := Result{File: filename, Valid: !hasErrorOrAbove(handler)}
	for _, d := range handler.Diagnostics() {
		result.Findings = append(result.Findings, Finding{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Message:  d.Message,
			Path:     d.Path,
			Rule:     d.RuleName,
		})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	case "text":
		if result.Valid {
			fmt.Printf("OK: %s\n", filename)
		} else {
			fmt.Printf("FAILED: %s (%d finding(s))\n", filename, len(result.Findings))
		}
		printDiagnostics(handler)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (use 'text' or 'json')\n", format)
		return exitError
	}

	if !result.Valid {
		return exitViolations
	}
	return exitOK
}

func reportFatal(filename, format string, err error) int {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(Result{File: filename, Error: err.Error()})
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitError
}

func validateUsage() {
	fmt.Fprintf(os.Stderr, `Usage: edicheck validate [options] <file>

Parses an X12 interchange and runs business-rule validation against it.

Options:
  --format string   Output format: text, json (default "text")
  --policy string   Error handling policy: collect, silent, fail_fast (default "collect")
  --help            Show this help message

Exit codes:
  0  valid: no ERROR or CRITICAL findings
  1  findings at ERROR or CRITICAL severity were recorded
  2  could not parse at all (no ISA header, file not found, ...)
`)
}
