package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb"
)

const RunTableSchema = `
	CREATE TABLE IF NOT EXISTS billing_runs (
		id VARCHAR NOT NULL PRIMARY KEY,
		source VARCHAR NOT NULL,
		service VARCHAR NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		generated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		total_list_cost DOUBLE,
		total_billed_cost DOUBLE,
		total_subsidy_amount DOUBLE,
		processed_count INTEGER,
		skipped_count INTEGER,
		unknown_entities JSON,
		warnings JSON
	);
`

const FocusRecordTableSchema = `
	CREATE TABLE IF NOT EXISTS focus_records (
		run_id VARCHAR NOT NULL,
		billing_period_start DATE NOT NULL,
		billing_period_end DATE NOT NULL,
		charge_period_start DATE NOT NULL,
		charge_period_end DATE NOT NULL,
		list_cost DOUBLE NOT NULL,
		billed_cost DOUBLE NOT NULL,
		resource_id VARCHAR NOT NULL,
		resource_name VARCHAR,
		service_name VARCHAR,
		tags JSON
	);
`

var bootQueries = []string{
	RunTableSchema,
	FocusRecordTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
