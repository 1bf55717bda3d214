package commands

import (
	"fmt"

	"github.com/rc-tools/cost-ledger/pkg/runtime/terminal/report"
	"github.com/rc-tools/cost-ledger/pkg/services/archive"
	"github.com/rc-tools/cost-ledger/pkg/store/duckdb"
	"github.com/spf13/cobra"
)

type RunsCmd struct {
	dbPath   string
	reporter *report.Reporter
}

func NewRunsCmd(reporter *report.Reporter) *cobra.Command {
	rc := &RunsCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived billing runs",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.dbPath, "db", "", "Path to the ledger database")

	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func (rc *RunsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: rc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open ledger database: %w", err)
	}
	defer db.Close()

	svc, err := archive.NewService(db)
	if err != nil {
		return err
	}

	runs, err := svc.ListRuns(ctx)
	if err != nil {
		return err
	}

	return rc.reporter.Runs(runs)
}
