package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/rc-tools/cost-ledger/pkg/runtime/terminal/report"
	"github.com/rc-tools/cost-ledger/pkg/services/archive"
	"github.com/rc-tools/cost-ledger/pkg/services/billing"
	"github.com/rc-tools/cost-ledger/pkg/services/config"
	"github.com/rc-tools/cost-ledger/pkg/services/export"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest"
	"github.com/rc-tools/cost-ledger/pkg/store/duckdb"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	profilePath  string
	source       string
	ratesPath    string
	metadataPath string
	period       string
	format       string
	outPath      string
	archivePath  string
	registry     ingest.Registry
	reporter     *report.Reporter
}

func NewExportCmd(registry ingest.Registry, reporter *report.Reporter) *cobra.Command {
	ec := &ExportCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run one billing pass and write the FOCUS artifact",
		RunE:  ec.run,
	}

	// Define flags
	cmd.Flags().StringVar(&ec.profilePath, "profile", "", "Path to the source profiles file")
	cmd.Flags().StringVar(&ec.source, "source", "", "Source profile to bill (e.g., hpc)")
	cmd.Flags().StringVar(&ec.ratesPath, "rates", "", "Path to the rates file")
	cmd.Flags().StringVar(&ec.metadataPath, "metadata", "", "Path to the entity metadata file")
	cmd.Flags().StringVar(&ec.period, "period", "", "Billing period to export (YYYY-MM)")
	cmd.Flags().StringVar(&ec.format, "format", "csv", "Artifact format: csv or analysis")
	cmd.Flags().StringVar(&ec.outPath, "out", "", "Path of the artifact to write")
	cmd.Flags().StringVar(&ec.archivePath, "archive", "", "Optional ledger database to append the run to")

	// Mark required flags
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("rates")
	_ = cmd.MarkFlagRequired("metadata")
	_ = cmd.MarkFlagRequired("period")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	period, err := domain.ParsePeriod(ec.period)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(ec.format)
	if err != nil {
		return err
	}

	profiles, err := config.NewRegistry(ec.profilePath)
	if err != nil {
		return err
	}
	profile, err := profiles.GetProfile(ctx, ec.source)
	if err != nil {
		return err
	}

	rates, err := config.LoadRates(ec.ratesPath, profile.Service)
	if err != nil {
		return err
	}
	meta, err := config.LoadMetadata(ec.metadataPath)
	if err != nil {
		return err
	}

	source, err := ec.registry.Create(profile)
	if err != nil {
		return fmt.Errorf("failed to create source for profile %s: %w", ec.source, err)
	}

	result, err := billing.NewController().Run(ctx, billing.ExportRequest{
		Source:   source,
		Period:   period,
		Rates:    rates,
		Metadata: meta,
	})
	if err != nil {
		return err
	}

	out, err := os.Create(ec.outPath)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer out.Close()

	if err := export.Write(out, format, result, source.Name(), rates.ServiceName, time.Now().UTC()); err != nil {
		return err
	}

	var archived *domain.Run
	if ec.archivePath != "" {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: ec.archivePath})
		if err != nil {
			return fmt.Errorf("failed to open ledger database: %w", err)
		}
		defer db.Close()

		svc, err := archive.NewService(db)
		if err != nil {
			return err
		}
		archived, err = svc.ArchiveRun(ctx, source.Name(), rates.ServiceName, result)
		if err != nil {
			return err
		}
	}

	return ec.reporter.Summary(result, rates.Currency, ec.outPath, archived)
}
