// Command edicheck parses and validates X12 health care EDI
// interchanges from the command line.
package main

import (
	"fmt"
	"os"
)

const (
	exitOK         = 0 // no findings at or above ERROR
	exitViolations = 1 // parsed, but findings at or above ERROR were recorded
	exitError      = 2 // could not parse at all (no ISA header, file not found, ...)
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		usage()
		return exitError
	}

	switch os.Args[1] {
	case "parse":
		return runParse(os.Args[2:])
	case "validate":
		return runValidate(os.Args[2:])
	case "plugins":
		return runPlugins(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", os.Args[1])
		usage()
		return exitError
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: edicheck <command> [options]

Commands:
  parse       Parse an interchange and print its document tree
  validate    Parse and run business-rule validation, reporting findings
  plugins     List the transaction parsers registered in the engine

Use "edicheck <command> --help" for more information about a command.
`)
}
