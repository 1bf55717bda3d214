package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rc-tools/cost-ledger/pkg/adapters"
	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/rc-tools/cost-ledger/pkg/models/store"
	"github.com/rc-tools/cost-ledger/pkg/store/duckdb"
	runstore "github.com/rc-tools/cost-ledger/pkg/store/duckdb/run"
)

// ErrRunNotFound is returned for run IDs the archive has never seen.
var ErrRunNotFound = errors.New("run not found")

// Explorer reads archived billing runs for the report API and the CLI.
type Explorer interface {
	ListRuns(ctx context.Context) ([]domain.Run, error)
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	GetRunRecords(ctx context.Context, id string) ([]domain.FocusRecord, error)
}

// Service adds archiving on top of Explorer. The archive is append only:
// re-running a period adds a new run instead of touching earlier ones.
type Service interface {
	Explorer
	ArchiveRun(ctx context.Context, source, serviceName string, result *domain.RunResult) (*domain.Run, error)
}

type service struct {
	db    *sql.DB
	store runstore.Store
}

func NewService(db *sql.DB) (Service, error) {
	s, err := runstore.NewStore(db)
	if err != nil {
		return nil, err
	}
	return &service{db: db, store: s}, nil
}

func (s *service) ArchiveRun(ctx context.Context, source, serviceName string, result *domain.RunResult) (*domain.Run, error) {
	run := domain.Run{
		ID:          uuid.New().String(),
		Source:      source,
		ServiceName: serviceName,
		Period:      result.Period,
		GeneratedAt: time.Now().UTC(),
		Summary:     result.Summary,
	}

	records := make([]store.FocusRecord, 0, len(result.Details))
	for _, d := range result.Details {
		records = append(records, adapters.MapFocusRecordDomainToStore(run.ID, d.Record))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	ctxWithTx := duckdb.WithTransaction(ctx, tx)
	if err := s.store.Add(ctxWithTx, adapters.MapRunDomainToStore(run), records); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to archive run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}

	return &run, nil
}

func (s *service) ListRuns(ctx context.Context) ([]domain.Run, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	runs := make([]domain.Run, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, adapters.MapStoreRunToDomain(row))
	}
	return runs, nil
}

func (s *service) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row, err := s.store.Get(ctx, id)
	if errors.Is(err, runstore.ErrRunNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	run := adapters.MapStoreRunToDomain(*row)
	return &run, nil
}

func (s *service) GetRunRecords(ctx context.Context, id string) ([]domain.FocusRecord, error) {
	rows, err := s.store.GetRecords(ctx, id)
	if err != nil {
		return nil, err
	}

	records := make([]domain.FocusRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, adapters.MapStoreFocusRecordToDomain(row))
	}
	return records, nil
}
