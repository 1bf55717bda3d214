package terminal

import (
	"io"
	"os"

	"github.com/rc-tools/cost-ledger/pkg/runtime/terminal/commands"
	"github.com/rc-tools/cost-ledger/pkg/runtime/terminal/report"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry ingest.Registry
	reporter *report.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry ingest.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: report.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "FOCUS billing export for research computing usage",
	}

	cmd.AddCommand(commands.NewExportCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewSourcesCmd(cli.registry))
	cmd.AddCommand(commands.NewRunsCmd(cli.reporter))

	return cmd
}
