package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/edihealth/x12edi"
	"github.com/edihealth/x12edi/diag"
	"github.com/edihealth/x12edi/plugin"
	"github.com/edihealth/x12edi/txn"
)

func runPlugins(args []string) int {
	fs := flag.NewFlagSet("plugins", flag.ExitOnError)
	var discoverDir string
	fs.StringVar(&discoverDir, "discover", "", "Directory of *.plugin.xml descriptors to load before listing")
	fs.Usage = pluginsUsage
	_ = fs.Parse(args)

	engine := edi.New()

	if discoverDir != "" {
		h := diag.NewCollect()
		if err := plugin.DiscoverAndRegister(engine.Registry(), discoverDir, txn.FactoryLookup(), h); err != nil {
			fmt.Fprintf(os.Stderr, "Error discovering plugins: %v\n", err)
			return exitError
		}
		printDiagnostics(h)
	}

	if err := plugin.WriteManifest(engine.Registry(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Println()
	return exitOK
}

func pluginsUsage() {
	fmt.Fprintf(os.Stderr, `Usage: edicheck plugins [options]

Lists the transaction parsers registered in the engine as an XML manifest.

Options:
  --discover string   Directory of *.plugin.xml descriptors to load first
  --help              Show this help message
`)
}
