package main

import (
	"fmt"
	"os"

	"github.com/rc-tools/cost-ledger/pkg/runtime/terminal"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest/isilon"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest/slurm"
)

func main() {
	registry := ingest.NewRegistry()
	for sourceType, factory := range map[string]ingest.SourceFactory{
		"slurm":  slurm.NewFromProfile,
		"isilon": isilon.NewFromProfile,
	} {
		if err := registry.Register(sourceType, factory); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
