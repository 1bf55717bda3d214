package run

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rc-tools/cost-ledger/pkg/models/store"
	"github.com/rc-tools/cost-ledger/pkg/store/duckdb"
)

var ErrRunNotFound = errors.New("run not found")

// Store persists billing runs and the focus records they emitted. Writes
// join a transaction from the context when one is present; reads always go
// through the bare connection.
type Store interface {
	Add(ctx context.Context, run store.Run, records []store.FocusRecord) error
	List(ctx context.Context) ([]store.Run, error)
	Get(ctx context.Context, id string) (*store.Run, error)
	GetRecords(ctx context.Context, id string) ([]store.FocusRecord, error)
}

type runStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &runStore{db: db}, nil
}

func (r *runStore) Add(ctx context.Context, run store.Run, records []store.FocusRecord) error {
	tx := duckdb.GetTransaction(ctx)

	unknown, err := json.Marshal(run.UnknownEntityKeys)
	if err != nil {
		return fmt.Errorf("marshal unknown entities: %w", err)
	}
	warnings, err := json.Marshal(run.Warnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	runQuery := `
		INSERT INTO billing_runs (
			id, source, service, period_start, period_end, generated_at,
			total_list_cost, total_billed_cost, total_subsidy_amount,
			processed_count, skipped_count, unknown_entities, warnings
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`
	runArgs := []interface{}{
		run.ID,
		run.Source,
		run.ServiceName,
		run.PeriodStart,
		run.PeriodEnd,
		run.GeneratedAt,
		run.TotalListCost,
		run.TotalBilledCost,
		run.TotalSubsidyAmount,
		run.ProcessedCount,
		run.SkippedCount,
		unknown,
		warnings,
	}

	if tx != nil {
		_, err = tx.ExecContext(ctx, runQuery, runArgs...)
	} else {
		_, err = r.db.ExecContext(ctx, runQuery, runArgs...)
	}
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	recordQuery := `
		INSERT INTO focus_records (
			run_id, billing_period_start, billing_period_end,
			charge_period_start, charge_period_end,
			list_cost, billed_cost,
			resource_id, resource_name, service_name, tags
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

	var stmt *sql.Stmt
	if tx != nil {
		stmt, err = tx.PrepareContext(ctx, recordQuery)
	} else {
		stmt, err = r.db.PrepareContext(ctx, recordQuery)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		tags, err := json.Marshal(record.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			run.ID,
			record.BillingPeriodStart,
			record.BillingPeriodEnd,
			record.ChargePeriodStart,
			record.ChargePeriodEnd,
			record.ListCost,
			record.BilledCost,
			record.ResourceID,
			record.ResourceName,
			record.ServiceName,
			tags,
		)
		if err != nil {
			return fmt.Errorf("insert record %s: %w", record.ResourceID, err)
		}
	}

	return nil
}

const runColumns = `
	id, source, service, period_start, period_end, generated_at,
	total_list_cost, total_billed_cost, total_subsidy_amount,
	processed_count, skipped_count, unknown_entities, warnings
`

func (r *runStore) List(ctx context.Context) ([]store.Run, error) {
	query := `SELECT ` + runColumns + ` FROM billing_runs ORDER BY generated_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]store.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *runStore) Get(ctx context.Context, id string) (*store.Run, error) {
	query := `SELECT ` + runColumns + ` FROM billing_runs WHERE id = ?`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

func (r *runStore) GetRecords(ctx context.Context, id string) ([]store.FocusRecord, error) {
	query := `
		SELECT run_id, billing_period_start, billing_period_end,
			charge_period_start, charge_period_end,
			list_cost, billed_cost,
			resource_id, resource_name, service_name, tags
		FROM focus_records
		WHERE run_id = ?
		ORDER BY resource_id
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]store.FocusRecord, 0)
	for rows.Next() {
		var (
			runID, resourceID, resourceName, serviceName string
			tagsRaw                                      []byte
			listCost, billedCost                         float64
			bpStart, bpEnd, cpStart, cpEnd               time.Time
		)
		if err := rows.Scan(&runID, &bpStart, &bpEnd, &cpStart, &cpEnd,
			&listCost, &billedCost, &resourceID, &resourceName, &serviceName, &tagsRaw); err != nil {
			return nil, err
		}

		tags := map[string]string{}
		if len(tagsRaw) > 0 {
			_ = json.Unmarshal(tagsRaw, &tags)
		}

		records = append(records, store.FocusRecord{
			RunID:              runID,
			BillingPeriodStart: bpStart,
			BillingPeriodEnd:   bpEnd,
			ChargePeriodStart:  cpStart,
			ChargePeriodEnd:    cpEnd,
			ListCost:           listCost,
			BilledCost:         billedCost,
			ResourceID:         resourceID,
			ResourceName:       resourceName,
			ServiceName:        serviceName,
			Tags:               tags,
		})
	}
	return records, rows.Err()
}

func scanRun(scan func(dest ...any) error) (store.Run, error) {
	var (
		run                  store.Run
		unknownRaw, warnsRaw []byte
	)
	err := scan(
		&run.ID, &run.Source, &run.ServiceName,
		&run.PeriodStart, &run.PeriodEnd, &run.GeneratedAt,
		&run.TotalListCost, &run.TotalBilledCost, &run.TotalSubsidyAmount,
		&run.ProcessedCount, &run.SkippedCount,
		&unknownRaw, &warnsRaw,
	)
	if err != nil {
		return store.Run{}, err
	}

	if len(unknownRaw) > 0 {
		_ = json.Unmarshal(unknownRaw, &run.UnknownEntityKeys)
	}
	if len(warnsRaw) > 0 {
		_ = json.Unmarshal(warnsRaw, &run.Warnings)
	}
	return run, nil
}
